package hexfloat_test

import (
	"testing"

	"github.com/lhsprint/cprintf/fpbits"
	"github.com/lhsprint/cprintf/hexfloat"
	"github.com/stretchr/testify/assert"
)

func TestRenderOnePointFive(t *testing.T) {
	// 1.5 = 0x1.8p+0
	info := fpbits.Decompose(1.5)
	r := hexfloat.Render(info, false, 0, false)
	assert.Equal(t, byte('1'), r.LeadingDigit)
	assert.True(t, r.HasDecimalPoint)
	assert.Equal(t, []byte{8}, r.Nibbles)
	assert.False(t, r.ExponentNegative)
	assert.Equal(t, 0, r.ExponentAbs)
}

func TestRenderExactPowerOfTwoNoFraction(t *testing.T) {
	// 4.0 = 0x1p+2, no significant fraction bits and no ALT_FORM.
	info := fpbits.Decompose(4.0)
	r := hexfloat.Render(info, false, 0, false)
	assert.Equal(t, byte('1'), r.LeadingDigit)
	assert.False(t, r.HasDecimalPoint)
	assert.Empty(t, r.Nibbles)
	assert.Equal(t, 2, r.ExponentAbs)
}

func TestRenderAltFormForcesDecimalPoint(t *testing.T) {
	info := fpbits.Decompose(4.0)
	r := hexfloat.Render(info, false, 0, true)
	assert.True(t, r.HasDecimalPoint)
	assert.Equal(t, []byte{}, r.Nibbles)
}

func TestRenderZero(t *testing.T) {
	info := fpbits.Decompose(0)
	r := hexfloat.Render(info, false, 0, false)
	assert.Equal(t, byte('0'), r.LeadingDigit)
	assert.Empty(t, r.Nibbles)
}

func TestRenderExplicitPrecisionTruncatesNotRounds(t *testing.T) {
	// 1.5's natural precision is 1 nibble (0x8); an explicit precision
	// of 0 truncates that nibble entirely rather than rounding it away.
	info := fpbits.Decompose(1.5)
	r := hexfloat.Render(info, true, 0, false)
	assert.Empty(t, r.Nibbles)
}

func TestRenderNegativeValueSignBit(t *testing.T) {
	info := fpbits.Decompose(-1.5)
	r := hexfloat.Render(info, false, 0, false)
	assert.True(t, r.Negative)
}
