// Package fpbits decomposes an IEEE-754 binary64 value into sign,
// classification, raw exponent, and significand, the way the reference
// implementation's fp_info/fp64_info union did with bitfields — done
// here with math.Float64bits and shifts, since Go has no bitfields.
package fpbits

import "math"

const (
	significandBits = 52
	exponentBits    = 11
	exponentBias    = 1023
	exponentRawMax  = (1 << exponentBits) - 1
	significandMask = (uint64(1) << significandBits) - 1
)

// Classification is the IEEE-754 value category.
type Classification int

const (
	Zero Classification = iota
	Subnormal
	Normal
	Infinite
	NaN
)

// Info is the decomposed form of a binary64 value.
type Info struct {
	Negative       bool
	Classification Classification
	RawExponent    int    // biased exponent field, 0..2047
	Significand    uint64 // 52-bit fraction, no implicit leading bit
}

// Decompose extracts sign, classification, raw exponent, and
// significand from v.
func Decompose(v float64) Info {
	bits := math.Float64bits(v)
	info := Info{
		Negative:    bits>>63 != 0,
		RawExponent: int((bits >> significandBits) & exponentRawMax),
		Significand: bits & significandMask,
	}
	switch {
	case info.RawExponent == exponentRawMax:
		if info.Significand == 0 {
			info.Classification = Infinite
		} else {
			info.Classification = NaN
		}
	case info.RawExponent == 0:
		if info.Significand == 0 {
			info.Classification = Zero
		} else {
			info.Classification = Subnormal
		}
	default:
		info.Classification = Normal
	}
	return info
}

// UnbiasedExponent returns the value's binary exponent such that
// value == significand_with_implicit_bit * 2^(UnbiasedExponent -
// significandBits), matching the convention normal/subnormal callers
// need for base conversion: normal values carry an implicit leading 1,
// subnormals do not.
func (info Info) UnbiasedExponent() int {
	if info.Classification == Subnormal {
		return 1 - exponentBias
	}
	return info.RawExponent - exponentBias
}

// SignificandBits returns the bit count of the significand field (52
// for binary64), the same value the reference's
// floating_point_info_query_significand_bit reported as its size.
func SignificandBits() int { return significandBits }

// ExponentBias returns binary64's exponent bias (1023).
func ExponentBias() int { return exponentBias }

// ImplicitLeadingOne reports whether the value's significand carries
// an implicit (unstored) leading 1 bit, true for normal values, false
// for subnormal and zero.
func (info Info) ImplicitLeadingOne() bool {
	return info.Classification == Normal
}
