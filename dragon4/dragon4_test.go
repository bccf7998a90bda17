package dragon4_test

import (
	"testing"

	"github.com/lhsprint/cprintf/dragon4"
	"github.com/lhsprint/cprintf/fpbits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectDigits(g *dragon4.Generator, max int) []dragon4.Digit {
	var out []dragon4.Digit
	for i := 0; i < max; i++ {
		d := g.Next()
		out = append(out, d)
		if d.Last {
			break
		}
	}
	return out
}

func reconstruct(digits []dragon4.Digit) float64 {
	sum := 0.0
	for _, d := range digits {
		place := 1.0
		exp := d.Exponent
		for exp > 0 {
			place *= 10
			exp--
		}
		for exp < 0 {
			place /= 10
			exp++
		}
		sum += float64(d.Value) * place
	}
	return sum
}

func TestGeneratorOnePointFive(t *testing.T) {
	info := fpbits.Decompose(1.5)
	require.Equal(t, fpbits.Normal, info.Classification)
	g := dragon4.New(info)

	digits := collectDigits(g, 8)
	require.NotEmpty(t, digits)
	assert.Equal(t, byte(1), digits[0].Value)
	assert.Equal(t, 0, digits[0].Exponent)

	got := reconstruct(digits)
	assert.InDelta(t, 1.5, got, 1e-9)
}

func TestGeneratorPowerOfTwoBoundary(t *testing.T) {
	info := fpbits.Decompose(8.0)
	g := dragon4.New(info)
	digits := collectDigits(g, 8)
	require.NotEmpty(t, digits)
	got := reconstruct(digits)
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestGeneratorSubnormal(t *testing.T) {
	info := fpbits.Decompose(0x1p-1070) // well within the subnormal range
	require.Equal(t, fpbits.Subnormal, info.Classification)
	g := dragon4.New(info)
	digits := collectDigits(g, 40)
	require.NotEmpty(t, digits)
}

func TestPeekExponentMatchesNextDigitExponent(t *testing.T) {
	info := fpbits.Decompose(123.0)
	g := dragon4.New(info)
	peeked := g.PeekExponent()
	d := g.Next()
	assert.Equal(t, peeked, d.Exponent)
}
