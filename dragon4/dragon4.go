// Package dragon4 generates the exact decimal digits of a binary64
// value one at a time, free-format (Steele & White's Dragon4): each
// digit is correct until the accumulated rounding error crosses the
// gap to an adjacent representable float, at which point the
// generator reports completion.
package dragon4

import (
	"github.com/lhsprint/cprintf/bignum"
	"github.com/lhsprint/cprintf/fpbits"
)

// Generator produces successive decimal digits of a normal or
// subnormal binary64 value's mantissa, most significant first.
type Generator struct {
	remain, scale, nearbyDown, nearbyUp, base *bignum.Int
	exponent                                  int
}

// New builds a digit generator for info, which must classify as Normal
// or Subnormal (Zero/Infinite/NaN are handled by their own literal
// renderers upstream and never reach here).
func New(info fpbits.Info) *Generator {
	significandBits := fpbits.SignificandBits()
	implicitOne := info.ImplicitLeadingOne()

	eMinusP := info.UnbiasedExponent() - significandBits

	nearbyDownDecreaseExponent := implicitOne && info.Significand == 0 && info.RawExponent > 1

	var bitLength int
	if eMinusP >= 0 {
		bitLength = significandBits + 1 + eMinusP
	} else {
		pMinusE := -eMinusP
		need := significandBits
		if implicitOne {
			need++
		}
		if need > pMinusE+1 {
			bitLength = significandBits
			if implicitOne {
				bitLength++
			}
		} else {
			bitLength = pMinusE + 1
		}
	}
	if nearbyDownDecreaseExponent {
		bitLength++
	}
	// Headroom for the scale-by-two comparisons and the repeated
	// multiply-by-base steps in the fixup loops below; generous on
	// purpose rather than tracking the reference's branch-specific
	// tally, since a few extra zero limbs cost nothing.
	bitLength += 9

	length := limbsFor(bitLength)

	remain := bignum.New(length)
	scale := bignum.New(length)
	nearbyDown := bignum.New(length)
	nearbyUp := bignum.New(length)
	base := bignum.New(length)

	base.SetBit(1, true)
	base.SetBit(3, true) // 1010(2) == 10

	offset := 0
	if eMinusP >= 0 {
		offset = eMinusP
	}
	for i := 0; i < significandBits; i++ {
		bit := (info.Significand>>uint(i))&1 != 0
		remain.SetBit(offset+i, bit)
	}
	if implicitOne {
		remain.SetBit(offset+significandBits, true)
	}

	if eMinusP >= 0 {
		scale.SetBit(0, true)
		nearbyDown.SetBit(eMinusP, true)
		nearbyUp.SetBit(eMinusP, true)
	} else {
		scale.SetBit(-eMinusP, true)
		nearbyDown.SetBit(0, true)
		nearbyUp.SetBit(0, true)
	}

	g := &Generator{remain: remain, scale: scale, nearbyDown: nearbyDown, nearbyUp: nearbyUp, base: base}
	g.simpleFixup(nearbyDownDecreaseExponent)
	return g
}

func limbsFor(bits int) int {
	n := (bits + bignum.LimbBits - 1) / bignum.LimbBits
	if n < 1 {
		n = 1
	}
	return n
}

// simpleFixup normalizes (remain, scale, nearbyDown, nearbyUp) so that
// scale holds base^exponent for the smallest exponent with
// remain/scale in [0, base), per Steele & White's "fixup" step, then
// records the resulting estimate in g.exponent.
func (g *Generator) simpleFixup(nearbyDownDecreaseExponent bool) {
	length := g.remain.Len()

	if nearbyDownDecreaseExponent {
		g.nearbyUp = g.nearbyUp.Shift(1)
		g.remain = g.remain.Shift(1)
		g.scale = g.scale.Shift(1)
	}

	exponent := 0
	for {
		scaleOverBase := bignum.New(length)
		scaleOverBase.Div(g.scale, g.base)
		if g.remain.Compare(scaleOverBase) < 0 {
			exponent--
			g.remain.QuickMulU32(10)
			g.nearbyDown.QuickMulU32(10)
			g.nearbyUp.QuickMulU32(10)
		} else {
			break
		}
	}

	for {
		twiceRemain := bignum.New(length)
		twiceRemain.Add(g.remain, g.remain)
		numerator := bignum.New(length)
		numerator.Add(twiceRemain, g.nearbyUp)

		twiceScale := bignum.New(length)
		twiceScale.Add(g.scale, g.scale)

		if numerator.Compare(twiceScale) >= 0 {
			scaled := bignum.New(length)
			scaled.Mul(g.scale, g.base)
			g.scale = scaled
			exponent++
		} else {
			break
		}
	}

	g.exponent = exponent
}

// Digit is one generated decimal digit plus its positional exponent:
// the digit represents Value * 10^Exponent.
type Digit struct {
	Value    byte
	Exponent int
	Last     bool // true once this is the final correct digit
}

// Next produces the next digit. Callers must stop calling Next once a
// Digit with Last == true has been returned; behavior past that point
// is unspecified (the reference has none either, since its callers
// never re-invoke past completion).
func (g *Generator) Next() Digit {
	length := g.remain.Len()
	g.exponent--

	g.remain.QuickMulU32(10)
	current, _ := bignum.QuickDivModU32(g.remain, g.scale)

	g.nearbyDown.QuickMulU32(10)
	g.nearbyUp.QuickMulU32(10)

	remainTimesTwo := g.remain.Shift(1)
	low := remainTimesTwo.Compare(g.nearbyDown) < 0

	scaleTimesTwo := g.scale.Shift(1)
	var high bool
	if scaleTimesTwo.Compare(g.nearbyUp) < 0 {
		high = true
	} else {
		diff := bignum.New(length)
		diff.Sub(scaleTimesTwo, g.nearbyUp)
		high = remainTimesTwo.Compare(diff) > 0
	}

	if !low && !high {
		return Digit{Value: byte(current), Exponent: g.exponent, Last: false}
	}

	var value uint32
	switch {
	case low && !high:
		value = current
	case high && !low:
		value = current + 1
	default:
		// low && high: a true tie between "round down" and "round up"
		// boundary. The reference always rounds down here; this
		// generator rounds to even instead, the IEEE-754-conventional
		// tie-break, to match this package's documented rounding policy.
		switch remainTimesTwo.Compare(g.scale) {
		case -1:
			value = current
		case 1:
			value = current + 1
		default:
			if current%2 == 0 {
				value = current
			} else {
				value = current + 1
			}
		}
	}
	return Digit{Value: byte(value), Exponent: g.exponent, Last: true}
}

// PeekExponent returns the exponent that the next call to Next will
// assign to its digit, without consuming a digit.
func (g *Generator) PeekExponent() int { return g.exponent - 1 }
