package compose_test

import (
	"testing"

	"github.com/lhsprint/cprintf/compose"
	"github.com/stretchr/testify/assert"
)

func digits(s string) compose.PayloadFunc {
	return func(dst []byte) []byte { return append(dst, s...) }
}

func TestComposeNoPadding(t *testing.T) {
	out := compose.Compose(compose.Request{PureWidth: 3, Width: 3}, digits("123"))
	assert.Equal(t, "123", string(out))
}

func TestComposeZeroPad(t *testing.T) {
	out := compose.Compose(compose.Request{
		PureWidth: 3, Width: 6, ZeroPad: true,
	}, digits("123"))
	assert.Equal(t, "000123", string(out))
}

func TestComposeZeroPadWithSign(t *testing.T) {
	out := compose.Compose(compose.Request{
		PureWidth: 3, Width: 6, ZeroPad: true, Sign: compose.SignMinus,
	}, digits("123"))
	assert.Equal(t, "-00123", string(out))
}

func TestComposeLeftJustify(t *testing.T) {
	out := compose.Compose(compose.Request{
		PureWidth: 3, Width: 6, LeftJustify: true,
	}, digits("123"))
	assert.Equal(t, "123   ", string(out))
}

func TestComposeRightJustifySpaces(t *testing.T) {
	out := compose.Compose(compose.Request{PureWidth: 3, Width: 6}, digits("123"))
	assert.Equal(t, "   123", string(out))
}

func TestComposeForceSign(t *testing.T) {
	out := compose.Compose(compose.Request{
		PureWidth: 3, Width: 5, ForceSign: true,
	}, digits("123"))
	assert.Equal(t, " +123", string(out))
}

func TestComposeSignSpace(t *testing.T) {
	out := compose.Compose(compose.Request{
		PureWidth: 3, Width: 4, SignSpace: true,
	}, digits("123"))
	assert.Equal(t, " 123", string(out))
}

func TestComposeAltFormHexPrefixZeroPad(t *testing.T) {
	out := compose.Compose(compose.Request{
		PureWidth: 2, Width: 8, ZeroPad: true,
		AltForm: true, ComplexPrefix: compose.Prefix0x,
	}, digits("ab"))
	assert.Equal(t, "0x0000ab", string(out))
}

func TestComposeAltFormOctalPrefixLeftJustify(t *testing.T) {
	out := compose.Compose(compose.Request{
		PureWidth: 3, Width: 6, LeftJustify: true,
		AltForm: true, ComplexPrefix: compose.Prefix0,
	}, digits("123"))
	assert.Equal(t, "0123  ", string(out))
}

func TestComposeExplicitSignOverridesFlags(t *testing.T) {
	out := compose.Compose(compose.Request{
		PureWidth: 3, Width: 5, ForceSign: true, Sign: compose.SignMinus,
	}, digits("123"))
	assert.Equal(t, " -123", string(out))
}

func TestComposeWidthSmallerThanPayload(t *testing.T) {
	out := compose.Compose(compose.Request{PureWidth: 5, Width: 2}, digits("12345"))
	assert.Equal(t, "12345", string(out))
}
