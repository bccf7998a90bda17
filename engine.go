package cprintf

import (
	"bytes"
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/lhsprint/cprintf/compose"
	"github.com/lhsprint/cprintf/directive"
	"github.com/lhsprint/cprintf/dragon4"
	"github.com/lhsprint/cprintf/fpbits"
	"github.com/lhsprint/cprintf/hexfloat"
	"github.com/lhsprint/cprintf/intfmt"
	"github.com/lhsprint/cprintf/render"
	"github.com/lhsprint/cprintf/sink"
	"github.com/lhsprint/cprintf/utf"
	"github.com/rs/zerolog"
)

// Engine drives one directive loop over a format string: parse, pull the
// matching typed argument, render it, and push the result through a
// sink. Policy and logger are read-only for the engine's lifetime, so
// concurrent calls against distinct sinks are safe.
type Engine struct {
	policy *Policy
	logger zerolog.Logger
}

// NewEngine builds an Engine with the given policy and diagnostics
// logger. A nil policy falls back to DefaultPolicy().
func NewEngine(policy *Policy, logger zerolog.Logger) *Engine {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Engine{policy: policy, logger: logger}
}

// NewDefaultEngine builds an Engine with the reference behavior and a
// disabled logger.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultPolicy(), NopLogger())
}

// run is the core directive loop: it copies literal format-string bytes
// verbatim and dispatches every `%...` directive to its renderer,
// writing the resulting bytes through snk in strict format-string
// order.
func (e *Engine) run(format string, args []Arg, snk sink.Sink) error {
	if !utf8.ValidString(format) {
		return newFormatError(ErrInvalidEncoding, "", 0, len(format))
	}

	cursor := newArgCursor(args)
	pos := 0
	for pos < len(format) {
		if format[pos] != '%' {
			start := pos
			for pos < len(format) && format[pos] != '%' {
				pos++
			}
			if err := snk.WriteBytes([]byte(format[start:pos])); err != nil {
				return err
			}
			continue
		}

		pullArg := func() (int, bool) { return cursor.pullInt() }
		d, next, perr := directive.Parse(format, pos, pullArg)
		if perr != nil {
			end := next
			if end > len(format) {
				end = len(format)
			}
			return newFormatError(ErrMalformedDirective, format[pos:end], pos, end)
		}

		payload, err := e.renderDirective(format, d, cursor, snk)
		if err != nil {
			return err
		}
		if payload != nil {
			if werr := snk.WriteBytes(payload); werr != nil {
				return werr
			}
		}
		pos = next
	}
	return nil
}

// renderDirective pulls the argument(s) one parsed directive requires
// and renders it to its final padded byte form. A %n directive writes
// its side effect and returns a nil payload, since it emits no bytes of
// its own.
func (e *Engine) renderDirective(format string, d directive.Directive, cursor *argCursor, snk sink.Sink) ([]byte, error) {
	substr := format[d.Start:d.End]
	fail := func(err error) ([]byte, error) {
		return nil, newFormatError(err, substr, d.Start, d.End)
	}

	switch d.Kind {
	case directive.KindPercent:
		return []byte{'%'}, nil

	case directive.KindD:
		a, ok := cursor.next()
		if !ok || a.Kind != ArgInt {
			return fail(ErrMalformedDirective)
		}
		v, _ := a.Int()
		return e.renderSigned(d, v), nil

	case directive.KindU, directive.KindO, directive.KindX, directive.KindXUpper:
		a, ok := cursor.next()
		if !ok || a.Kind != ArgUint {
			return fail(ErrMalformedDirective)
		}
		v, _ := a.Uint()
		return e.renderUnsigned(d, v), nil

	case directive.KindF, directive.KindFUpper, directive.KindE, directive.KindEUpper,
		directive.KindG, directive.KindGUpper, directive.KindA, directive.KindAUpper:
		a, ok := cursor.next()
		if !ok || a.Kind != ArgFloat {
			return fail(ErrMalformedDirective)
		}
		v, _ := a.Float()
		return e.renderFloatValue(d, v), nil

	case directive.KindC:
		a, ok := cursor.next()
		if !ok || a.Kind != ArgRune {
			return fail(ErrMalformedDirective)
		}
		r, _ := a.Rune()
		payload, err := renderChar(d, r)
		if err != nil {
			return fail(err)
		}
		return payload, nil

	case directive.KindS:
		a, ok := cursor.next()
		if !ok {
			return fail(ErrMalformedDirective)
		}
		switch a.Kind {
		case ArgString:
			if d.Length == directive.LengthL {
				return fail(ErrMalformedDirective)
			}
			s, _ := a.String()
			payload, err := renderString(d, s)
			if err != nil {
				return fail(err)
			}
			return payload, nil
		case ArgWideString:
			if d.Length != directive.LengthL {
				return fail(ErrMalformedDirective)
			}
			w, _ := a.WideString()
			payload, err := renderWideString(d, w)
			if err != nil {
				return fail(err)
			}
			return payload, nil
		default:
			return fail(ErrMalformedDirective)
		}

	case directive.KindP:
		a, ok := cursor.next()
		if !ok || a.Kind != ArgPointer {
			return fail(ErrMalformedDirective)
		}
		p, _ := a.Pointer()
		return e.renderPointer(d, p), nil

	case directive.KindN:
		if !e.policy.EnablePercentN {
			return fail(ErrMalformedDirective)
		}
		a, ok := cursor.next()
		if !ok || a.Kind != ArgCount {
			return fail(ErrMalformedDirective)
		}
		dest, _ := a.CountDest()
		if dest == nil {
			return fail(ErrNullArgument)
		}
		*dest = snk.ActualNeed()
		return nil, nil

	default:
		return fail(ErrMalformedDirective)
	}
}

// The reference implementation's length modifiers (hh/h/l/ll/j/z/t)
// exist because C's va_arg reads an untyped slot and must be told how
// many bytes to reinterpret. Arg is already typed by its constructor
// (IntArg, UintArg, ...), so the caller's value is never reinterpreted
// at a narrower width here: the length modifier is still validated by
// the directive parser's accepted-length table, but it no longer
// drives a truncation step once the argument is a genuine int64/uint64
// rather than a raw memory read.

func baseFor(k directive.Kind) intfmt.Base {
	switch k {
	case directive.KindO:
		return intfmt.Base8
	case directive.KindX, directive.KindXUpper:
		return intfmt.Base16
	default:
		return intfmt.Base10
	}
}

func widthOf(d directive.Directive) int {
	if d.WidthKind == directive.AdjustFixed {
		return d.Width
	}
	return 0
}

func hasPrecision(d directive.Directive) bool {
	return d.PrecisionKind == directive.AdjustFixed
}

// renderSigned renders d/i: the magnitude is computed by widening to
// uint64 via two's-complement negation (uint64(^tv)+1) rather than a
// direct signed negation, so the minimum representable value — whose
// naive negation overflows in the signed domain — still renders
// correctly.
func (e *Engine) renderSigned(d directive.Directive, v int64) []byte {
	negative := v < 0
	var magnitude uint64
	if negative {
		magnitude = uint64(^v) + 1
	} else {
		magnitude = uint64(v)
	}
	spec := intfmt.Spec{
		Base:                               intfmt.Base10,
		Signedness:                         intfmt.Signed,
		Magnitude:                          magnitude,
		Negative:                           negative,
		Precision:                          d.Precision,
		HasPrecision:                       hasPrecision(d),
		Width:                              widthOf(d),
		LeftJustify:                        d.Has(directive.FlagLeftJustify),
		ZeroPad:                            d.Has(directive.FlagZeroPad),
		ForceSign:                          d.Has(directive.FlagForceSign),
		SignSpace:                          d.Has(directive.FlagSignSpace),
		SuppressZeroPadOnExplicitPrecision: e.policy.SuppressZeroPadOnExplicitPrecision,
	}
	return intfmt.Render(spec)
}

func (e *Engine) renderUnsigned(d directive.Directive, v uint64) []byte {
	spec := intfmt.Spec{
		Base:                               baseFor(d.Kind),
		Signedness:                         intfmt.Unsigned,
		Uppercase:                          d.Kind == directive.KindXUpper,
		Magnitude:                          v,
		Precision:                          d.Precision,
		HasPrecision:                       hasPrecision(d),
		Width:                              widthOf(d),
		LeftJustify:                        d.Has(directive.FlagLeftJustify),
		ZeroPad:                            d.Has(directive.FlagZeroPad),
		ForceSign:                          d.Has(directive.FlagForceSign),
		SignSpace:                          d.Has(directive.FlagSignSpace),
		AltForm:                            d.Has(directive.FlagAltForm),
		ElideAltPrefixOnZero:               e.policy.ElideAltPrefixOnZeroValueZeroPrecision,
		SuppressZeroPadOnExplicitPrecision: e.policy.SuppressZeroPadOnExplicitPrecision,
	}
	return intfmt.Render(spec)
}

func (e *Engine) renderPointer(d directive.Directive, p uintptr) []byte {
	spec := intfmt.Spec{
		Base:                               intfmt.Base16,
		Signedness:                         intfmt.Unsigned,
		Magnitude:                          uint64(p),
		Precision:                          1,
		Width:                              widthOf(d),
		LeftJustify:                        d.Has(directive.FlagLeftJustify),
		ZeroPad:                            d.Has(directive.FlagZeroPad),
		AltForm:                            true,
		SuppressZeroPadOnExplicitPrecision: e.policy.SuppressZeroPadOnExplicitPrecision,
	}
	return intfmt.Render(spec)
}

// renderChar renders a single decoded scalar, so its width accounting is
// always one character, regardless of how many UTF-8 bytes the scalar
// widens to.
func renderChar(d directive.Directive, r rune) ([]byte, error) {
	var scratch [8]byte
	n, err := utf.EncodeScalar(uint64(r), scratch[:])
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	body := scratch[:n]
	req := compose.Request{PureWidth: 1, Width: widthOf(d), LeftJustify: d.Has(directive.FlagLeftJustify)}
	return compose.Compose(req, func(dst []byte) []byte { return append(dst, body...) }), nil
}

// truncateUTF8Chars walks s one character at a time via
// utf.ValidateUTF8, stopping at limit characters (when hasLimit is set)
// or the end of the string. It returns the consumed byte prefix and how
// many characters it holds, so callers never slice mid-character.
func truncateUTF8Chars(s string, limit int, hasLimit bool) (string, int, error) {
	b := []byte(s)
	i, count := 0, 0
	for i < len(b) {
		if hasLimit && count >= limit {
			break
		}
		n, err := utf.ValidateUTF8(b[i:])
		if err != nil {
			return "", 0, err
		}
		i += n
		count++
	}
	return string(b[:i]), count, nil
}

// renderString truncates by character count, not byte count: a `.N`
// precision keeps the first N decoded characters, matching the
// reference's character-walking truncation rather than slicing through
// a multibyte character's continuation bytes. Width accounting
// (PureWidth) is likewise the character count, not len(body).
func renderString(d directive.Directive, s string) ([]byte, error) {
	body, charCount, err := truncateUTF8Chars(s, d.Precision, hasPrecision(d))
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	req := compose.Request{PureWidth: charCount, Width: widthOf(d), LeftJustify: d.Has(directive.FlagLeftJustify)}
	return compose.Compose(req, func(dst []byte) []byte { return append(dst, body...) }), nil
}

// errWideStringPrecisionReached stops WalkUTF16 once precision decoded
// characters have been emitted; it is never surfaced to the caller.
var errWideStringPrecisionReached = errors.New("cprintf: wide string precision reached")

// renderWideString limits by decoded character count, not UTF-16 code
// unit count: a `.N` precision on a supplementary-plane character must
// not split its surrogate pair, and must count the pair as the one
// character it decodes to.
func renderWideString(d directive.Directive, w []uint16) ([]byte, error) {
	hasLimit := hasPrecision(d)
	precision := d.Precision
	var body []byte
	var scratch [8]byte
	charCount := 0
	_, err := utf.WalkUTF16(w, len(w), func(cp rune) error {
		if hasLimit && charCount >= precision {
			return errWideStringPrecisionReached
		}
		n, eerr := utf.EncodeScalar(uint64(cp), scratch[:])
		if eerr != nil {
			return eerr
		}
		body = append(body, scratch[:n]...)
		charCount++
		return nil
	})
	if err != nil && err != errWideStringPrecisionReached {
		return nil, ErrInvalidEncoding
	}
	req := compose.Request{PureWidth: charCount, Width: widthOf(d), LeftJustify: d.Has(directive.FlagLeftJustify)}
	return compose.Compose(req, func(dst []byte) []byte { return append(dst, body...) }), nil
}

func isUpperFloatKind(k directive.Kind) bool {
	switch k {
	case directive.KindFUpper, directive.KindEUpper, directive.KindGUpper, directive.KindAUpper:
		return true
	}
	return false
}

func signFor(negative bool, d directive.Directive) compose.Sign {
	switch {
	case negative:
		return compose.SignMinus
	case d.Has(directive.FlagForceSign):
		return compose.SignPlus
	case d.Has(directive.FlagSignSpace):
		return compose.SignSpace
	default:
		return compose.SignNone
	}
}

func composeBody(d directive.Directive, body []byte, sign compose.Sign) []byte {
	req := compose.Request{
		PureWidth:   len(body),
		Width:       widthOf(d),
		LeftJustify: d.Has(directive.FlagLeftJustify),
		ZeroPad:     d.Has(directive.FlagZeroPad),
		Sign:        sign,
	}
	return compose.Compose(req, func(dst []byte) []byte { return append(dst, body...) })
}

// composeSpecialText renders the nan/inf literal payloads: never
// zero-padded regardless of the '0' flag, matching the reference's
// treatment of non-numeric float payloads.
func composeSpecialText(d directive.Directive, text string, sign compose.Sign) []byte {
	req := compose.Request{
		PureWidth:   len(text),
		Width:       widthOf(d),
		LeftJustify: d.Has(directive.FlagLeftJustify),
		Sign:        sign,
	}
	return compose.Compose(req, func(dst []byte) []byte { return append(dst, text...) })
}

func toASCIIDigits(digits []byte) []byte {
	out := make([]byte, len(digits))
	for i, v := range digits {
		out[i] = v + '0'
	}
	return out
}

func formatFixedBody(fx render.Fixed, d directive.Directive) []byte {
	var body []byte
	body = append(body, toASCIIDigits(fx.IntegerPart)...)
	if len(fx.FractionalPart) > 0 || d.Has(directive.FlagAltForm) {
		body = append(body, '.')
		body = append(body, toASCIIDigits(fx.FractionalPart)...)
	}
	return body
}

func formatExponent(exp int) []byte {
	sign := byte('+')
	if exp < 0 {
		sign = '-'
		exp = -exp
	}
	digits := strconv.Itoa(exp)
	if len(digits) < 2 {
		digits = "0" + digits
	}
	out := make([]byte, 0, len(digits)+1)
	out = append(out, sign)
	out = append(out, digits...)
	return out
}

func formatScientificBody(sci render.Scientific, d directive.Directive, uppercase bool) []byte {
	var body []byte
	body = append(body, sci.LeadDigit+'0')
	if len(sci.FractionalPart) > 0 || d.Has(directive.FlagAltForm) {
		body = append(body, '.')
		body = append(body, toASCIIDigits(sci.FractionalPart)...)
	}
	echar := byte('e')
	if uppercase {
		echar = 'E'
	}
	body = append(body, echar)
	body = append(body, formatExponent(sci.Exponent)...)
	return body
}

func hexNibbleChar(v byte, upper bool) byte {
	if v < 10 {
		return '0' + v
	}
	if upper {
		return 'A' + (v - 10)
	}
	return 'a' + (v - 10)
}

func formatHexFloatBody(res hexfloat.Result, uppercase bool) []byte {
	var body []byte
	if uppercase {
		body = append(body, '0', 'X')
	} else {
		body = append(body, '0', 'x')
	}
	body = append(body, res.LeadingDigit)
	if res.HasDecimalPoint {
		body = append(body, '.')
		for _, nibble := range res.Nibbles {
			body = append(body, hexNibbleChar(nibble, uppercase))
		}
	}
	if uppercase {
		body = append(body, 'P')
	} else {
		body = append(body, 'p')
	}
	exp := res.ExponentAbs
	if res.ExponentNegative {
		body = append(body, '-')
	} else {
		body = append(body, '+')
	}
	body = append(body, strconv.Itoa(exp)...)
	return body
}

// renderZeroFloat renders the ±0 payload for f/F, e/E, and g/G: Dragon4
// has no digit stream to generate for an exact zero, so these three
// shapes are assembled directly.
func renderZeroFloat(d directive.Directive, sign compose.Sign, uppercase bool) []byte {
	switch d.Kind {
	case directive.KindF, directive.KindFUpper:
		var body []byte
		body = append(body, '0')
		if d.Precision > 0 {
			body = append(body, '.')
			body = append(body, bytes.Repeat([]byte{'0'}, d.Precision)...)
		} else if d.Has(directive.FlagAltForm) {
			body = append(body, '.')
		}
		return composeBody(d, body, sign)

	case directive.KindE, directive.KindEUpper:
		var body []byte
		body = append(body, '0')
		if d.Precision > 0 {
			body = append(body, '.')
			body = append(body, bytes.Repeat([]byte{'0'}, d.Precision)...)
		} else if d.Has(directive.FlagAltForm) {
			body = append(body, '.')
		}
		echar := byte('e')
		if uppercase {
			echar = 'E'
		}
		body = append(body, echar, '+', '0', '0')
		return composeBody(d, body, sign)

	default: // KindG, KindGUpper
		precision := d.Precision
		if precision < 1 {
			precision = 1
		}
		sig := precision - 1
		var body []byte
		body = append(body, '0')
		if d.Has(directive.FlagAltForm) {
			body = append(body, '.')
			body = append(body, bytes.Repeat([]byte{'0'}, sig)...)
		}
		return composeBody(d, body, sign)
	}
}

// renderFloatValue dispatches one of the eight float conversions by
// IEEE-754 classification: NaN and ±∞ render their literal payloads,
// a/A always goes through the hex-float renderer (which has its own
// zero special case and needs no Dragon4 state), and the remaining
// f/F/e/E/g/G conversions on a true zero are assembled directly since
// Dragon4 only generates digits for Normal/Subnormal values.
func (e *Engine) renderFloatValue(d directive.Directive, v float64) []byte {
	info := fpbits.Decompose(v)
	uppercase := isUpperFloatKind(d.Kind)
	sign := signFor(info.Negative, d)

	switch info.Classification {
	case fpbits.NaN:
		text := "nan"
		if uppercase {
			text = "NAN"
		}
		return composeSpecialText(d, text, compose.SignNone)
	case fpbits.Infinite:
		text := "inf"
		if uppercase {
			text = "INF"
		}
		return composeSpecialText(d, text, sign)
	}

	if d.Kind == directive.KindA || d.Kind == directive.KindAUpper {
		res := hexfloat.Render(info, hasPrecision(d), d.Precision, d.Has(directive.FlagAltForm))
		return composeBody(d, formatHexFloatBody(res, uppercase), sign)
	}

	if info.Classification == fpbits.Zero {
		return renderZeroFloat(d, sign, uppercase)
	}

	g := dragon4.New(info)
	first := g.Next()
	switch d.Kind {
	case directive.KindF, directive.KindFUpper:
		fx := render.RenderFixed(g, first, d.Precision)
		return composeBody(d, formatFixedBody(fx, d), sign)
	case directive.KindE, directive.KindEUpper:
		sci := render.RenderScientific(g, first, d.Precision)
		return composeBody(d, formatScientificBody(sci, d, uppercase), sign)
	default: // KindG, KindGUpper
		gen := render.RenderGeneral(g, first, d.Precision, d.Has(directive.FlagAltForm))
		if gen.UseScientific {
			return composeBody(d, formatScientificBody(gen.Scientific, d, uppercase), sign)
		}
		return composeBody(d, formatFixedBody(gen.Fixed, d), sign)
	}
}
