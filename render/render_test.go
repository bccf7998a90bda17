package render_test

import (
	"testing"

	"github.com/lhsprint/cprintf/dragon4"
	"github.com/lhsprint/cprintf/fpbits"
	"github.com/lhsprint/cprintf/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(v float64) (*dragon4.Generator, dragon4.Digit) {
	info := fpbits.Decompose(v)
	g := dragon4.New(info)
	first := g.Next()
	return g, first
}

func TestRenderFixedOnePointFiveTwoDigits(t *testing.T) {
	g, first := newGenerator(1.5)
	fx := render.RenderFixed(g, first, 2)
	assert.Equal(t, []byte{1}, fx.IntegerPart)
	assert.Equal(t, []byte{5, 0}, fx.FractionalPart)
}

func TestRenderFixedRoundsUp(t *testing.T) {
	// 0.5 rounded to 0 fractional digits rounds up to "1".
	g, first := newGenerator(0.5)
	fx := render.RenderFixed(g, first, 0)
	assert.Equal(t, []byte{1}, fx.IntegerPart)
	assert.Empty(t, fx.FractionalPart)
}

func TestRenderScientificOnePointFive(t *testing.T) {
	g, first := newGenerator(1.5)
	sci := render.RenderScientific(g, first, 1)
	assert.Equal(t, byte(1), sci.LeadDigit)
	assert.Equal(t, []byte{5}, sci.FractionalPart)
	assert.Equal(t, 0, sci.Exponent)
}

func TestRenderScientificCarryIntoNewLeadDigit(t *testing.T) {
	// 9.96 rounded to 1 fractional digit in scientific form should carry
	// into a new leading digit: 9.96 ~ 1.0e+01 at that precision.
	g, first := newGenerator(9.96)
	sci := render.RenderScientific(g, first, 1)
	require.Equal(t, byte(1), sci.LeadDigit)
	assert.Equal(t, 1, sci.Exponent)
}

func TestRenderGeneralUsesFixedForModestExponent(t *testing.T) {
	g, first := newGenerator(123.456)
	gen := render.RenderGeneral(g, first, 6, false)
	assert.False(t, gen.UseScientific)
}

func TestRenderGeneralUsesScientificForLargeExponent(t *testing.T) {
	g, first := newGenerator(123456789.0)
	gen := render.RenderGeneral(g, first, 6, false)
	assert.True(t, gen.UseScientific)
}

func TestRenderGeneralStripsTrailingZerosByDefault(t *testing.T) {
	g, first := newGenerator(1.5)
	gen := render.RenderGeneral(g, first, 6, false)
	assert.False(t, gen.UseScientific)
	assert.Equal(t, []byte{5}, gen.Fixed.FractionalPart)
}

func TestRenderGeneralKeepsTrailingZerosWithAltForm(t *testing.T) {
	g, first := newGenerator(1.5)
	gen := render.RenderGeneral(g, first, 6, true)
	assert.Len(t, gen.Fixed.FractionalPart, 5)
}
