// Package compose implements the flag/width composer shared by every
// numeric and string specifier: given an unpadded payload length, an
// optional sign character, and an optional complex prefix, it emits
// the padded field honoring the five directive flags.
package compose

// Sign is the sign character prefix a payload may carry.
type Sign byte

const (
	SignNone Sign = iota
	SignSpace
	SignPlus
	SignMinus
)

func (s Sign) char() (byte, bool) {
	switch s {
	case SignMinus:
		return '-', true
	case SignPlus:
		return '+', true
	case SignSpace:
		return ' ', true
	}
	return 0, false
}

// ComplexPrefix is the `#`-flag-triggered prefix.
type ComplexPrefix byte

const (
	PrefixNone ComplexPrefix = iota
	Prefix0
	Prefix0x
	Prefix0X
)

func (p ComplexPrefix) bytes() []byte {
	switch p {
	case Prefix0:
		return []byte{'0'}
	case Prefix0x:
		return []byte{'0', 'x'}
	case Prefix0X:
		return []byte{'0', 'X'}
	}
	return nil
}

// Request describes one composer invocation.
type Request struct {
	// PureWidth is the unpadded payload's character count, considering
	// precision and any ALT_FORM decimal point but not flags/width.
	PureWidth int

	Width int // the directive's resolved field width (0 if unspecified)

	LeftJustify bool
	ZeroPad     bool
	ForceSign   bool
	SignSpace   bool
	AltForm     bool

	Sign          Sign
	ComplexPrefix ComplexPrefix // only applied when AltForm is set
}

// PayloadFunc renders the unpadded payload (pureWidth characters) to dst.
type PayloadFunc func(dst []byte) []byte

// Compose renders the full padded field per 4.5's policy: sign and
// complex prefix precede zero-padding; zero-padding is used only when
// ZeroPad is set and LeftJustify is not; otherwise leading spaces (or,
// with LeftJustify, trailing spaces) fill out to Width.
func Compose(req Request, payload PayloadFunc) []byte {
	sign := req.Sign
	if sign == SignNone {
		if req.ForceSign {
			sign = SignPlus
		} else if req.SignSpace {
			sign = SignSpace
		}
	}

	leastWidth := req.PureWidth
	if _, ok := sign.char(); ok {
		leastWidth++
	}

	usingPrefix := req.AltForm && req.ComplexPrefix != PrefixNone
	var prefixBytes []byte
	if usingPrefix {
		prefixBytes = req.ComplexPrefix.bytes()
		leastWidth += len(prefixBytes)
	}

	insertAmount := 0
	if leastWidth < req.Width {
		insertAmount = req.Width - leastWidth
	}

	var out []byte
	emitSignAndPrefix := func() {
		if c, ok := sign.char(); ok {
			out = append(out, c)
		}
		out = append(out, prefixBytes...)
	}

	switch {
	case insertAmount == 0:
		emitSignAndPrefix()
		out = payload(out)
	case req.ZeroPad && !req.LeftJustify:
		emitSignAndPrefix()
		for i := 0; i < insertAmount; i++ {
			out = append(out, '0')
		}
		out = payload(out)
	case req.LeftJustify:
		emitSignAndPrefix()
		out = payload(out)
		for i := 0; i < insertAmount; i++ {
			out = append(out, ' ')
		}
	default:
		for i := 0; i < insertAmount; i++ {
			out = append(out, ' ')
		}
		emitSignAndPrefix()
		out = payload(out)
	}
	return out
}
