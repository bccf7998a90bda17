package sink_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lhsprint/cprintf/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedWritesAndNullTerminates(t *testing.T) {
	store := make([]byte, 6)
	b := sink.NewBounded(store)
	require.NoError(t, b.WriteBytes([]byte("hello")))
	assert.Equal(t, "hello\x00", string(store))
	assert.Equal(t, 5, b.ActualNeed())
	assert.False(t, b.Truncated())
}

func TestBoundedTruncatesAndCountsActualNeed(t *testing.T) {
	store := make([]byte, 4)
	b := sink.NewBounded(store)
	require.NoError(t, b.WriteBytes([]byte("hello world")))
	assert.Equal(t, "hel\x00", string(store))
	assert.Equal(t, 11, b.ActualNeed())
	assert.True(t, b.Truncated())
}

func TestBoundedZeroCapacityStillCounts(t *testing.T) {
	b := sink.NewBounded(nil)
	require.NoError(t, b.WriteBytes([]byte("abc")))
	assert.Equal(t, 3, b.ActualNeed())
	assert.True(t, b.Truncated())
}

func TestBoundedZeroBlanksStore(t *testing.T) {
	store := []byte("xxxxx\x00")
	b := sink.NewBounded(store)
	require.NoError(t, b.WriteBytes([]byte("abc")))
	b.Zero()
	for _, c := range store {
		assert.Equal(t, byte(0), c)
	}
}

func TestStreamingWritesThrough(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewStreaming(&buf)
	require.NoError(t, s.WriteBytes([]byte("hi")))
	assert.Equal(t, "hi", buf.String())
	assert.Equal(t, 2, s.ActualNeed())
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

func TestStreamingPropagatesWriteError(t *testing.T) {
	s := sink.NewStreaming(errWriter{})
	err := s.WriteBytes([]byte("hi"))
	assert.Error(t, err)
}
