package directive_test

import (
	"testing"

	"github.com/lhsprint/cprintf/directive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleInt(t *testing.T) {
	d, end, err := directive.Parse("%d", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, end)
	assert.Equal(t, directive.KindD, d.Kind)
	assert.Equal(t, directive.AdjustUnspecified, d.WidthKind)
	assert.Equal(t, 1, d.Precision) // default for integer kinds
}

func TestParseFlagsWidthPrecision(t *testing.T) {
	d, end, err := directive.Parse("%-012.3f", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, end)
	assert.True(t, d.Has(directive.FlagLeftJustify))
	assert.False(t, d.Has(directive.FlagZeroPad)) // suppressed by left-justify fixup
	assert.Equal(t, directive.AdjustFixed, d.WidthKind)
	assert.Equal(t, 12, d.Width)
	assert.Equal(t, 3, d.Precision)
}

func TestParseLeadingZeroIsFlagNotWidth(t *testing.T) {
	d, _, err := directive.Parse("%012d", 0, nil)
	require.NoError(t, err)
	assert.True(t, d.Has(directive.FlagZeroPad))
	assert.Equal(t, 12, d.Width)
}

func TestParseDotAloneIsPrecisionZero(t *testing.T) {
	d, _, err := directive.Parse("%.d", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, directive.AdjustFixed, d.PrecisionKind)
	assert.Equal(t, 0, d.Precision)
}

func TestParseStarWidthAndPrecisionPullSeparateFields(t *testing.T) {
	calls := 0
	vals := []int{7, 3}
	pull := func() (int, bool) {
		v := vals[calls]
		calls++
		return v, true
	}
	d, _, err := directive.Parse("%*.*d", 0, pull)
	require.NoError(t, err)
	assert.Equal(t, 7, d.Width)
	assert.Equal(t, 3, d.Precision)
}

func TestParseHexUppercase(t *testing.T) {
	d, _, err := directive.Parse("%#X", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, directive.KindXUpper, d.Kind)
	assert.True(t, d.Has(directive.FlagAltForm))
}

func TestParseLengthModifierMismatchFails(t *testing.T) {
	_, _, err := directive.Parse("%Ld", 0, nil)
	assert.Error(t, err)
}

func TestParseUnrecognizedConversionFails(t *testing.T) {
	_, _, err := directive.Parse("%q", 0, nil)
	assert.Error(t, err)
}

func TestParsePercentLiteral(t *testing.T) {
	d, end, err := directive.Parse("%%", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, directive.KindPercent, d.Kind)
	assert.Equal(t, 2, end)
}

func TestParseFloatLengthL(t *testing.T) {
	d, _, err := directive.Parse("%Lf", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, directive.LengthBigL, d.Length)
}
