package cprintf

import (
	"bytes"
	"io"
	"os"

	"github.com/lhsprint/cprintf/sink"
)

// Sprintf formats into a freshly allocated string. A fatal error in the
// taxonomy (malformed directive, invalid encoding, arithmetic overflow,
// null argument) aborts the call and returns it; there is no partial
// string on failure.
func (e *Engine) Sprintf(format string, args ...Arg) (string, error) {
	var buf bytes.Buffer
	if _, err := e.Fprintf(&buf, format, args...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Snprintf formats into buf, clipping at len(buf)-1 bytes and always
// leaving buf null-terminated when len(buf) > 0. The returned int is
// the byte count that would have been written with unbounded capacity
// (snprintf's actual_need), not the number actually stored — a result
// of len(buf) or more signals truncation, which is not itself an
// error. A negative return paired with a non-nil error signals one of
// the fatal taxonomy members, and buf is zeroed in that case.
func (e *Engine) Snprintf(buf []byte, format string, args ...Arg) (int, error) {
	b := sink.NewBounded(buf)
	if err := e.run(format, args, b); err != nil {
		b.Zero()
		e.logFatal(err)
		return -1, err
	}
	if b.Truncated() {
		e.logTruncation(b.ActualNeed(), len(buf))
	}
	return b.ActualNeed(), nil
}

// Fprintf streams formatted output to w and returns the number of bytes
// written. On a write error from w or a fatal taxonomy error from the
// format string itself it returns -1 and that error.
func (e *Engine) Fprintf(w io.Writer, format string, args ...Arg) (int, error) {
	s := sink.NewStreaming(w)
	if err := e.run(format, args, s); err != nil {
		if _, ok := err.(*FormatError); ok {
			e.logFatal(err)
		}
		return -1, err
	}
	return s.ActualNeed(), nil
}

// Printf streams formatted output to os.Stdout.
func (e *Engine) Printf(format string, args ...Arg) (int, error) {
	return e.Fprintf(os.Stdout, format, args...)
}
