package cprintf

import (
	"io"

	"github.com/rs/zerolog"
)

// NopLogger returns a disabled zerolog.Logger: the engine's default, so a
// caller that never configures diagnostics pays no logging allocation
// cost on the conversion hot path.
func NopLogger() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}

// logTruncation records a non-fatal bounded-sink truncation at Warn
// level: the call still succeeds, actual_need just exceeded capacity.
func (e *Engine) logTruncation(actualNeed, capacity int) {
	e.logger.Warn().
		Int("actual_need", actualNeed).
		Int("capacity", capacity).
		Msg("cprintf: buffer exhausted, output truncated")
}

// logFatal records one of the fatal taxonomy errors at Error level
// immediately before the call returns its -1/error result.
func (e *Engine) logFatal(err error) {
	fe, ok := err.(*FormatError)
	if !ok {
		e.logger.Error().Err(err).Msg("cprintf: format call failed")
		return
	}
	e.logger.Error().
		Err(fe.Err).
		Str("directive", fe.Directive).
		Int("start", fe.Start).
		Int("end", fe.End).
		Msg("cprintf: format call failed")
}
