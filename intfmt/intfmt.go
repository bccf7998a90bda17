// Package intfmt converts an integer value and its directive-level
// flags into digits and composer parameters for d/i/u/o/x/X.
package intfmt

import (
	"github.com/lhsprint/cprintf/compose"
)

// Base is the numeric base a conversion renders in.
type Base uint8

const (
	Base10 Base = 10
	Base8  Base = 8
	Base16 Base = 16
)

const lowerDigits = "0123456789abcdef"
const upperDigits = "0123456789ABCDEF"

// Signedness distinguishes d/i (signed) from u/o/x/X (unsigned).
type Signedness bool

const (
	Signed   Signedness = true
	Unsigned Signedness = false
)

// Spec is the resolved set of inputs needed to render one integer directive.
type Spec struct {
	Base       Base
	Signedness Signedness
	Uppercase  bool // for x vs X

	// Magnitude is the absolute value to render. Callers computing it
	// from a signed value must widen to the unsigned domain before
	// negating, so that the minimum representable value (whose negation
	// overflows in the signed domain) renders correctly: e.g.
	// uint64(-int64(math.MinInt64)) is well-defined, the equivalent
	// int64 negation is not.
	Magnitude uint64
	Negative  bool // only meaningful when Signedness == Signed

	Precision    int  // used only when HasPrecision is set; otherwise 1
	HasPrecision bool

	Width       int
	LeftJustify bool
	ZeroPad     bool
	ForceSign   bool
	SignSpace   bool
	AltForm     bool // '#' flag; only affects o/x/X

	// ElideAltPrefixOnZero mirrors the reference's
	// PRINTF_DISBALE_FLAG_COMPLEX_FOR_INTEGER_VALUE_ZERO_WITH_PRECISION_ZERO:
	// when true, a zero value rendered with precision 0 drops the x/X
	// prefix even if AltForm is set. The o prefix is never dropped.
	ElideAltPrefixOnZero bool

	// SuppressZeroPadOnExplicitPrecision mirrors the reference's GNU-
	// aligned fixup: the '0' flag is ignored whenever a precision was
	// explicitly supplied.
	SuppressZeroPadOnExplicitPrecision bool
}

// digitsOf returns value's digits in the given base, most significant
// first, using the zero digit "0" for a zero value (one digit, matching
// the reference's "consider zero as one digit" comment).
func digitsOf(value uint64, base Base, upper bool) string {
	alphabet := lowerDigits
	if upper {
		alphabet = upperDigits
	}
	if value == 0 {
		return "0"
	}
	var buf [64]byte
	i := len(buf)
	b := uint64(base)
	for value > 0 {
		i--
		buf[i] = alphabet[value%b]
		value /= b
	}
	return string(buf[i:])
}

// Render produces the full padded field for Spec.
func Render(s Spec) []byte {
	digits := digitsOf(s.Magnitude, s.Base, s.Uppercase)

	precision := 1
	if s.HasPrecision {
		precision = s.Precision
	}

	zeroNoDigit := precision == 0 && s.Magnitude == 0

	digitsAmount := len(digits)
	precisionPaddingZero := 0
	if !zeroNoDigit && precision > digitsAmount {
		precisionPaddingZero = precision - digitsAmount
	}

	leastDigitsAmount := 0
	if !zeroNoDigit {
		leastDigitsAmount = digitsAmount + precisionPaddingZero
	}

	sign := compose.SignNone
	if s.Signedness == Signed {
		switch {
		case s.Negative:
			sign = compose.SignMinus
		case s.ForceSign:
			sign = compose.SignPlus
		case s.SignSpace:
			sign = compose.SignSpace
		}
	}

	prefix := compose.PrefixNone
	useAlt := s.AltForm
	if useAlt && zeroNoDigit && s.ElideAltPrefixOnZero && s.Base != Base8 {
		useAlt = false
	}
	if useAlt {
		switch s.Base {
		case Base8:
			prefix = compose.Prefix0
		case Base16:
			if s.Uppercase {
				prefix = compose.Prefix0X
			} else {
				prefix = compose.Prefix0x
			}
		}
	}

	zeroPad := s.ZeroPad
	if s.HasPrecision && s.SuppressZeroPadOnExplicitPrecision {
		zeroPad = false
	}

	payload := func(dst []byte) []byte {
		if zeroNoDigit {
			return dst
		}
		for i := 0; i < precisionPaddingZero; i++ {
			dst = append(dst, '0')
		}
		return append(dst, digits...)
	}

	req := compose.Request{
		PureWidth:     leastDigitsAmount,
		Width:         s.Width,
		LeftJustify:   s.LeftJustify,
		ZeroPad:       zeroPad,
		ForceSign:     false, // sign already resolved above
		SignSpace:     false,
		AltForm:       useAlt,
		Sign:          sign,
		ComplexPrefix: prefix,
	}
	return compose.Compose(req, payload)
}
