// Package render formats a Dragon4 digit stream into the f/F, e/E, and
// g/G conversions: it windows the exact digit stream to the requested
// precision and applies round-half-up at the cutoff, since Dragon4
// itself only guarantees the minimal free-format digit set.
package render

import "github.com/lhsprint/cprintf/dragon4"

// Window is a contiguous run of decimal digits covering exponents
// [HighExp, HighExp-len(Digits)+1], most significant first, already
// rounded to that width.
type Window struct {
	Digits  []byte // decimal digit values 0-9
	HighExp int
}

// extract pulls decimal digits for every exponent from highExp down to
// lowExp inclusive, rounding the result to that width with a
// round-half-up decision based on the next digit beyond lowExp. If
// rounding carries out of the top digit, the window's HighExp
// increases by one and a new leading 1 digit is prepended, mirroring
// the reference's in-place carry propagation.
func extract(g *dragon4.Generator, first dragon4.Digit, highExp, lowExp int) Window {
	count := highExp - lowExp + 1
	digits := make([]byte, count)

	current := first
	for i := 0; i < count; i++ {
		targetExp := highExp - i
		if current.Exponent > targetExp && !current.Last {
			current = g.Next()
		}
		if current.Exponent == targetExp {
			digits[i] = current.Value
		} else {
			digits[i] = 0
		}
	}

	// Peek one more digit (at lowExp-1) purely to decide rounding.
	roundUp := false
	if current.Exponent > lowExp-1 && !current.Last {
		current = g.Next()
	}
	if current.Exponent == lowExp-1 && current.Value >= 5 {
		roundUp = true
	}

	if !roundUp {
		return Window{Digits: digits, HighExp: highExp}
	}

	carry := true
	for i := len(digits) - 1; i >= 0 && carry; i-- {
		if digits[i] >= 9 {
			digits[i] = 0
		} else {
			digits[i]++
			carry = false
		}
	}
	if carry {
		out := make([]byte, len(digits)+1)
		out[0] = 1
		copy(out[1:], digits)
		return Window{Digits: out, HighExp: highExp + 1}
	}
	return Window{Digits: digits, HighExp: highExp}
}

// Fixed computes the %f/%F payload: an integer part (at least one
// digit) and a fractional part of exactly precision digits.
type Fixed struct {
	IntegerPart    []byte // at least one digit, no leading zeros beyond a lone "0"
	FractionalPart []byte // exactly precision digits
}

// RenderFixed extracts the digit window for %f/%F given the Dragon4
// generator's first produced digit and the requested precision.
func RenderFixed(g *dragon4.Generator, first dragon4.Digit, precision int) Fixed {
	highExp := first.Exponent
	if highExp < 0 {
		highExp = 0
	}
	lowExp := -precision
	w := extract(g, first, highExp, lowExp)

	intLen := w.HighExp + 1 // number of integer digits (positions HighExp..0)
	if intLen < 1 {
		intLen = 1
	}
	var intPart, fracPart []byte
	if intLen >= len(w.Digits) {
		intPart = append([]byte(nil), w.Digits...)
		fracPart = make([]byte, precision)
	} else {
		intPart = append([]byte(nil), w.Digits[:intLen]...)
		fracPart = append([]byte(nil), w.Digits[intLen:]...)
	}
	if len(intPart) == 0 {
		intPart = []byte{0}
	}
	return Fixed{IntegerPart: intPart, FractionalPart: fracPart}
}

// Scientific computes the %e/%E payload: one leading digit, a
// fractional part of exactly precision digits, and the decimal
// exponent of the leading digit.
type Scientific struct {
	LeadDigit      byte
	FractionalPart []byte
	Exponent       int
}

// RenderScientific extracts the digit window for %e/%E.
func RenderScientific(g *dragon4.Generator, first dragon4.Digit, precision int) Scientific {
	highExp := first.Exponent
	lowExp := highExp - precision
	w := extract(g, first, highExp, lowExp)
	return Scientific{
		LeadDigit:      w.Digits[0],
		FractionalPart: append([]byte(nil), w.Digits[1:precision+1]...),
		Exponent:       w.HighExp,
	}
}

// stripTrailingZeros removes trailing zero digits from fraction,
// returning the trimmed slice (never shorter than 0).
func stripTrailingZeros(fraction []byte) []byte {
	n := len(fraction)
	for n > 0 && fraction[n-1] == 0 {
		n--
	}
	return fraction[:n]
}

// General computes the %g/%G payload: %e style when the decimal
// exponent is < -4 or >= precision, %f style otherwise, with
// precision reinterpreted as significant digits (minimum 1) and
// trailing fractional zeros stripped unless keepTrailingZeros (the
// ALT_FORM flag) is set.
type General struct {
	UseScientific bool
	Fixed         Fixed
	Scientific    Scientific
}

// RenderGeneral computes the %g/%G payload. precision is the
// directive's precision value, already defaulted to 6 if unspecified;
// a precision below 1 is raised to 1 here (the conversion's own rule,
// distinct from f/e's "0 precision is valid as-is").
func RenderGeneral(g *dragon4.Generator, first dragon4.Digit, precision int, keepTrailingZeros bool) General {
	if precision < 1 {
		precision = 1
	}
	sig := precision - 1
	useSci := first.Exponent < -4 || first.Exponent >= precision

	if useSci {
		sci := RenderScientific(g, first, sig)
		if !keepTrailingZeros {
			sci.FractionalPart = stripTrailingZeros(sci.FractionalPart)
		}
		return General{UseScientific: true, Scientific: sci}
	}

	fracPrecision := precision - 1 - first.Exponent
	if fracPrecision < 0 {
		fracPrecision = 0
	}
	fx := RenderFixed(g, first, fracPrecision)
	if !keepTrailingZeros {
		fx.FractionalPart = stripTrailingZeros(fx.FractionalPart)
	}
	return General{UseScientific: false, Fixed: fx}
}
