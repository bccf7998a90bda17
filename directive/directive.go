// Package directive parses a single `%[flags][width][.precision][length]conv`
// format directive into a Directive record. The reference implementation
// scans each directive in reverse, from the conversion byte back toward
// the `%`; this port performs the equivalent left-to-right recursive
// descent (flags, then width, then precision, then length, then
// conversion) since that is the idiomatic shape for a Go scanner and
// produces byte-identical results — the difference is purely which end
// of the directive the implementation starts from.
package directive

import (
	"fmt"
	"strings"
)

// Kind identifies the conversion requested by a directive.
type Kind byte

const (
	KindInvalid Kind = iota
	KindD            // d, i
	KindU
	KindO
	KindX
	KindXUpper
	KindF
	KindFUpper
	KindE
	KindEUpper
	KindG
	KindGUpper
	KindA
	KindAUpper
	KindC
	KindS
	KindP
	KindN
	KindPercent
)

// IsInteger reports whether k is one of the integer conversions.
func (k Kind) IsInteger() bool {
	switch k {
	case KindD, KindU, KindO, KindX, KindXUpper:
		return true
	}
	return false
}

// IsFloat reports whether k is one of the floating-point conversions.
func (k Kind) IsFloat() bool {
	switch k {
	case KindF, KindFUpper, KindE, KindEUpper, KindG, KindGUpper, KindA, KindAUpper:
		return true
	}
	return false
}

// Flag is a bitmask of the five directive flags.
type Flag uint8

const (
	FlagNone        Flag = 0
	FlagLeftJustify Flag = 1 << iota
	FlagForceSign
	FlagSignSpace
	FlagAltForm
	FlagZeroPad
)

// AdjustKind classifies how a width or precision field was specified.
type AdjustKind byte

const (
	AdjustUnspecified AdjustKind = iota
	AdjustFixed
	AdjustFromArgs
)

// Length is the accepted length-modifier set.
type Length byte

const (
	LengthNone Length = iota
	LengthHH
	LengthH
	LengthL
	LengthLL
	LengthJ
	LengthZ
	LengthT
	LengthBigL // L, float-only
)

// Directive is the parsed record for one `%...conv` occurrence.
type Directive struct {
	Kind   Kind
	Flags  Flag
	Length Length

	WidthKind AdjustKind
	Width     int // valid when WidthKind == AdjustFixed

	PrecisionKind AdjustKind
	Precision     int // valid when PrecisionKind == AdjustFixed

	Start, End int // byte offsets of the whole directive in the source
}

// Has reports whether f is set in d.Flags.
func (d Directive) Has(f Flag) bool { return d.Flags&f != 0 }

// DefaultPrecision returns the kind-dependent default precision applied
// when PrecisionKind == AdjustUnspecified: 1 for integer kinds and p,
// 6 for float kinds, a very large sentinel for s (no limit), and 0 for
// c, n, and %.
func (d Directive) DefaultPrecision() int {
	switch {
	case d.Kind.IsInteger() || d.Kind == KindP:
		return 1
	case d.Kind.IsFloat():
		return 6
	case d.Kind == KindS:
		return int(^uint(0) >> 1) // "no limit", mirrors SIZE_MAX in the reference
	default:
		return 0
	}
}

// ParseError reports a malformed directive, with the offending byte
// range for diagnostics.
type ParseError struct {
	Message    string
	Start, End int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("directive: %s at [%d:%d]", e.Message, e.Start, e.End)
}

var kindByte = map[byte]Kind{
	'd': KindD, 'i': KindD,
	'u': KindU,
	'o': KindO,
	'x': KindX,
	'X': KindXUpper,
	'f': KindF, 'F': KindFUpper,
	'e': KindE, 'E': KindEUpper,
	'g': KindG, 'G': KindGUpper,
	'a': KindA, 'A': KindAUpper,
	'c': KindC,
	's': KindS,
	'p': KindP,
	'n': KindN,
	'%': KindPercent,
}

// lengthsForKind lists the length modifiers §6's catalogue accepts for
// a given conversion kind.
func lengthsForKind(k Kind) map[string]Length {
	integerLengths := map[string]Length{
		"hh": LengthHH, "h": LengthH, "": LengthNone,
		"l": LengthL, "ll": LengthLL, "j": LengthJ, "z": LengthZ, "t": LengthT,
	}
	switch {
	case k.IsInteger() || k == KindN:
		return integerLengths
	case k.IsFloat():
		return map[string]Length{"": LengthNone, "l": LengthL, "L": LengthBigL}
	case k == KindC:
		return map[string]Length{"": LengthNone, "l": LengthL}
	case k == KindS:
		return map[string]Length{"": LengthNone, "l": LengthL}
	case k == KindP, k == KindPercent:
		return map[string]Length{"": LengthNone}
	}
	return nil
}

// Parse scans one directive starting at format[start], where
// format[start] == '%', and returns the parsed Directive plus the
// offset just past the conversion byte. pullArg is invoked, in format
// order, once per `*` (width or precision) to resolve it from the
// argument list; it must return (value, true) on success.
func Parse(format string, start int, pullArg func() (int, bool)) (Directive, int, error) {
	if start >= len(format) || format[start] != '%' {
		return Directive{}, start, &ParseError{Message: "directive must start with '%'", Start: start, End: start}
	}
	pos := start + 1
	d := Directive{Start: start}

	// 1. flags: any of - + ' ' # 0, any order, any count.
	for pos < len(format) {
		switch format[pos] {
		case '-':
			d.Flags |= FlagLeftJustify
		case '+':
			d.Flags |= FlagForceSign
		case ' ':
			d.Flags |= FlagSignSpace
		case '#':
			d.Flags |= FlagAltForm
		case '0':
			d.Flags |= FlagZeroPad
		default:
			goto widthField
		}
		pos++
	}

widthField:
	// 2. width: '*' (pull from args) or decimal digits.
	if pos < len(format) && format[pos] == '*' {
		pos++
		if pullArg == nil {
			return Directive{}, pos, &ParseError{Message: "width '*' requires an argument puller", Start: start, End: pos}
		}
		v, ok := pullArg()
		if !ok {
			return Directive{}, pos, &ParseError{Message: "missing width argument", Start: start, End: pos}
		}
		if v < 0 {
			d.Flags |= FlagLeftJustify
			v = -v
		}
		d.WidthKind = AdjustFixed
		d.Width = v
	} else if pos < len(format) && isDigit(format[pos]) {
		digitsStart := pos
		for pos < len(format) && isDigit(format[pos]) {
			pos++
		}
		d.WidthKind = AdjustFixed
		d.Width = atoiPositive(format[digitsStart:pos])
	}

	// 3. .precision: '.' alone (precision=0), '.*' (pull from args), or
	// '.' followed by decimal digits.
	if pos < len(format) && format[pos] == '.' {
		pos++
		switch {
		case pos < len(format) && format[pos] == '*':
			pos++
			if pullArg == nil {
				return Directive{}, pos, &ParseError{Message: "precision '*' requires an argument puller", Start: start, End: pos}
			}
			v, ok := pullArg()
			if !ok {
				return Directive{}, pos, &ParseError{Message: "missing precision argument", Start: start, End: pos}
			}
			d.PrecisionKind = AdjustFixed
			if v < 0 {
				// A negative pulled precision is treated as "no precision", per C99.
				d.PrecisionKind = AdjustUnspecified
			} else {
				d.Precision = v
			}
		case pos < len(format) && isDigit(format[pos]):
			digitsStart := pos
			for pos < len(format) && isDigit(format[pos]) {
				pos++
			}
			d.PrecisionKind = AdjustFixed
			d.Precision = atoiPositive(format[digitsStart:pos])
		default:
			d.PrecisionKind = AdjustFixed
			d.Precision = 0
		}
	}

	// 4. length modifier: 0-2 bytes before the conversion.
	lengthStart := pos
	for pos < len(format) && strings.IndexByte("hlLjzt", format[pos]) >= 0 {
		pos++
		if pos-lengthStart >= 2 {
			break
		}
	}
	lengthStr := format[lengthStart:pos]

	// 5. conversion byte.
	if pos >= len(format) {
		return Directive{}, pos, &ParseError{Message: "unterminated directive", Start: start, End: pos}
	}
	kind, ok := kindByte[format[pos]]
	if !ok {
		return Directive{}, pos + 1, &ParseError{Message: "unrecognized conversion byte", Start: start, End: pos + 1}
	}
	pos++
	d.Kind = kind
	d.End = pos

	allowed := lengthsForKind(kind)
	length, ok := allowed[lengthStr]
	if !ok {
		return Directive{}, d.End, &ParseError{Message: fmt.Sprintf("length modifier %q not valid for conversion", lengthStr), Start: start, End: d.End}
	}
	d.Length = length

	if d.PrecisionKind == AdjustUnspecified {
		d.Precision = d.DefaultPrecision()
	}

	if d.Has(FlagLeftJustify) {
		d.Flags &^= FlagZeroPad // fixup: LEFT_JUSTIFY suppresses ZERO_PAD
	}

	return d, d.End, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func atoiPositive(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
