package highlight

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/iw2rmb/hexed/rangeset"
)

// ErrBadPattern reports find input that cannot be turned into bytes.
var ErrBadPattern = errors.New("bad find pattern")

// PatternMode selects how find input is decoded.
type PatternMode uint8

const (
	PatternASCII PatternMode = iota
	PatternHex
	PatternBits
)

func (m PatternMode) String() string {
	switch m {
	case PatternHex:
		return "hex"
	case PatternBits:
		return "bits"
	default:
		return "ascii"
	}
}

// ParsePattern decodes input according to mode. Whitespace is ignored in hex
// and bits input; odd-length hex and partial bytes of bits are left-padded
// with zeros.
func ParsePattern(mode PatternMode, input string) ([]byte, error) {
	switch mode {
	case PatternHex:
		s := strings.Join(strings.Fields(input), "")
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		if s == "" {
			return nil, fmt.Errorf("%w: empty hex input", ErrBadPattern)
		}
		if len(s)%2 != 0 {
			s = "0" + s
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadPattern, err)
		}
		return b, nil

	case PatternBits:
		s := strings.Join(strings.Fields(input), "")
		if s == "" {
			return nil, fmt.Errorf("%w: empty bit string", ErrBadPattern)
		}
		if pad := len(s) % 8; pad != 0 {
			s = strings.Repeat("0", 8-pad) + s
		}
		out := make([]byte, len(s)/8)
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '0':
			case '1':
				out[i/8] |= 1 << (7 - i%8)
			default:
				return nil, fmt.Errorf("%w: %q is not a bit", ErrBadPattern, s[i])
			}
		}
		return out, nil

	default:
		if input == "" {
			return nil, fmt.Errorf("%w: empty input", ErrBadPattern)
		}
		return []byte(input), nil
	}
}

// ParseQuery decodes find input with an optional "ascii:", "hex:" or "bits:"
// prefix. Unprefixed input is ASCII.
func ParseQuery(input string) ([]byte, PatternMode, error) {
	mode := PatternASCII
	for _, m := range []PatternMode{PatternASCII, PatternHex, PatternBits} {
		if rest, ok := strings.CutPrefix(input, m.String()+":"); ok {
			mode, input = m, rest
			break
		}
	}
	b, err := ParsePattern(mode, input)
	return b, mode, err
}

// Find marks every occurrence of a byte pattern, overlapping ones included.
type Find struct {
	pattern []byte
	style   StyleSpan
}

func NewFind(theme Theme) *Find {
	return &Find{style: theme.span(KindMatch)}
}

// SetPattern replaces the pattern. An empty pattern disables the highlighter.
func (f *Find) SetPattern(p []byte) { f.pattern = bytes.Clone(p) }

func (f *Find) Pattern() []byte { return f.pattern }

func (f *Find) Annotate(iv rangeset.Interval, ctx Context) ([]Span, error) {
	n := int64(len(f.pattern))
	if n == 0 || ctx.Data == nil {
		return nil, nil
	}

	// Widen by n-1 on both sides so matches straddling the window edges are
	// still found.
	start := max(0, iv.Start-(n-1))
	end := min(ctx.Data.Size(), iv.End+(n-1))
	if end-start < n {
		return nil, nil
	}
	data, err := ctx.Data.Read(start, end-start)
	if err != nil {
		return nil, err
	}

	var spans []Span
	for i := 0; i+int(n) <= len(data); {
		j := bytes.Index(data[i:], f.pattern)
		if j < 0 {
			break
		}
		at := start + int64(i+j)
		spans = append(spans, Span{Interval: rangeset.Interval{Start: at, End: at + n}, StyleSpan: f.style})
		i += j + 1
	}
	return spans, nil
}
