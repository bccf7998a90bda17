// Package hexfloat renders the %a/%A hex-float conversion: an exact
// base-2 representation of the value's significand as a single
// leading hex digit, a fractional part in hex nibbles, and a decimal
// power-of-two exponent.
package hexfloat

import "github.com/lhsprint/cprintf/fpbits"

// Result is the decomposed %a/%A payload, ready for the composer.
type Result struct {
	Negative         bool
	LeadingDigit     byte // '0' or '1'
	HasDecimalPoint  bool
	Nibbles          []byte // hex digit values 0-15, in display order
	ExponentNegative bool
	ExponentAbs      int
}

// bitAt reports bit index `i` of the conceptual 53-entry significand
// array: index 0 is the implicit leading bit (1 for normal, 0 for
// subnormal), indices 1..52 are the explicit significand bits,
// most-significant first. Indices outside [0,52] read as false.
func bitAt(info fpbits.Info, i int) bool {
	if i == 0 {
		return info.ImplicitLeadingOne()
	}
	if i < 1 || i > fpbits.SignificandBits() {
		return false
	}
	shift := fpbits.SignificandBits() - i // i=1 -> shift 51 (MSB)
	return (info.Significand>>uint(shift))&1 != 0
}

// Render builds the %a/%A payload for a Normal, Subnormal, or Zero
// value. hasPrecision/precision mirror the directive's `.precision`;
// when unset, precision is the minimum number of hex nibbles needed to
// show every significant bit exactly, with no rounding applied — a
// shorter explicit precision truncates rather than rounds, matching
// the reference.
func Render(info fpbits.Info, hasPrecision bool, precision int, altForm bool) Result {
	if info.Classification == fpbits.Zero {
		p := precision
		if !hasPrecision {
			p = 0
		}
		nibbles := make([]byte, p)
		return Result{
			Negative:        info.Negative,
			LeadingDigit:    '0',
			HasDecimalPoint: altForm && p > 0,
			Nibbles:         nibbles,
		}
	}

	const count = 53 // implicit bit + 52 explicit bits
	firstNonZero := 0
	for firstNonZero < count && !bitAt(info, firstNonZero) {
		firstNonZero++
	}
	lastNonZero := firstNonZero
	for i := count - 1; i > firstNonZero; i-- {
		if bitAt(info, i) {
			lastNonZero = i
			break
		}
	}

	bias := fpbits.ExponentBias()
	temp := bias + firstNonZero
	rawExponent := info.RawExponent
	if info.Classification == fpbits.Subnormal {
		rawExponent = 1 // subnormals share the minimum normal exponent
	}
	exponentNegative := rawExponent < temp
	exponentAbs := rawExponent - temp
	if exponentNegative {
		exponentAbs = temp - rawExponent
	}

	hasDecimalPoint := firstNonZero+1 <= lastNonZero || altForm

	naturalPrecision := 0
	if hasDecimalPoint {
		for i := firstNonZero + 1; i <= lastNonZero; i += 4 {
			naturalPrecision++
		}
	}

	p := naturalPrecision
	if hasPrecision {
		p = precision
	}

	nibbles := make([]byte, p)
	for k := 0; k < p; k++ {
		base := firstNonZero + 1 + 4*k
		if base > lastNonZero {
			nibbles[k] = 0
			continue
		}
		var v byte
		if bitAt(info, base) {
			v += 8
		}
		if base+1 <= lastNonZero && bitAt(info, base+1) {
			v += 4
		}
		if base+2 <= lastNonZero && bitAt(info, base+2) {
			v += 2
		}
		if base+3 <= lastNonZero && bitAt(info, base+3) {
			v += 1
		}
		nibbles[k] = v
	}

	leading := byte('0')
	if bitAt(info, firstNonZero) {
		leading = '1'
	}

	return Result{
		Negative:         info.Negative,
		LeadingDigit:     leading,
		HasDecimalPoint:  hasDecimalPoint,
		Nibbles:          nibbles,
		ExponentNegative: exponentNegative,
		ExponentAbs:      exponentAbs,
	}
}
