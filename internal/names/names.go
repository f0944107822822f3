// Package names converts between POSIX byte-string filenames and the
// UTF-16 names stored in HFS+ catalog keys.
//
// HFS+ stores names pre-decomposed with a variant of Unicode Normalization
// Form D: per Apple Q&A QA1173, code points in U+2000 through U+2FFF and
// U+F900 through U+FAFF are not decomposed, and code points above U+FFFF
// pass through untouched and undergo no combining-class reordering. The
// reordering applied to eligible marks is a single adjacent-pair bubble
// pass, not a full canonical sort. Catalog keys compare byte-exact, so any
// deviation from this normalization makes lookups miss existing on-disk
// records; the quirks here are therefore load-bearing and must not be
// "fixed" toward standard NFD.
package names

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

// ToPosix decodes a UTF-16 volume name to a UTF-8 string. Unpaired
// surrogates fail with types.ErrEncoding rather than being replaced, since
// a silently altered name could never round-trip to the same catalog key.
func ToPosix(u types.Unistr255) (string, error) {
	units := u.Units()
	var sb strings.Builder
	sb.Grow(len(units))
	for i := 0; i < len(units); i++ {
		c := rune(units[i])
		if !utf16.IsSurrogate(c) {
			sb.WriteRune(c)
			continue
		}
		if c < 0xDC00 && i+1 < len(units) {
			c2 := rune(units[i+1])
			if c2 >= 0xDC00 && c2 < 0xE000 {
				sb.WriteRune(utf16.DecodeRune(c, c2))
				i++
				continue
			}
		}
		return "", fmt.Errorf("unpaired surrogate 0x%04X at unit %d: %w", units[i], i, types.ErrEncoding)
	}
	return sb.String(), nil
}

// ToPosixSegment is ToPosix in display form: every '/' in the decoded name
// becomes ':'. HFS+ permits '/' in names; POSIX reserves it as the path
// separator.
func ToPosixSegment(u types.Unistr255) (string, error) {
	s, err := ToPosix(u)
	if err != nil {
		return "", err
	}
	return strings.Map(func(r rune) rune {
		if r == '/' {
			return ':'
		}
		return r
	}, s), nil
}

// FromPosix converts a POSIX path segment to the volume's UTF-16 name
// form: restricted NFD decomposition, the partial combining-mark reorder,
// ':' mapped back to '/', then UTF-16 encoding. Fails with
// types.ErrEncoding on invalid UTF-8 input or when the converted name
// exceeds types.NameMax code units.
func FromPosix(name string) (types.Unistr255, error) {
	var out types.Unistr255
	buf, err := decompose(name)
	if err != nil {
		return out, err
	}
	reorderCombining(buf)
	for i, r := range buf {
		if r == ':' {
			buf[i] = '/'
		}
	}
	units := utf16.Encode(buf)
	if len(units) > types.NameMax {
		return out, fmt.Errorf("name %q: %d UTF-16 units exceeds %d: %w",
			name, len(units), types.NameMax, types.ErrEncoding)
	}
	out.Length = uint16(len(units))
	copy(out.Unicode[:], units)
	return out, nil
}

// eligible reports whether a code point participates in HFS+ decomposition
// and reordering: the BMP minus the U+2000..U+2FFF and U+F900..U+FAFF
// exclusion bands.
func eligible(r rune) bool {
	if r < 0 || r > 0xFFFF {
		return false
	}
	if r >= 0x2000 && r <= 0x2FFF {
		return false
	}
	if r >= 0xF900 && r <= 0xFAFF {
		return false
	}
	return true
}

// combiningClass returns the Unicode canonical combining class of r.
func combiningClass(r rune) uint8 {
	return norm.NFD.PropertiesString(string(r)).CCC()
}

// Hangul syllables decompose arithmetically rather than through the
// normalization tables.
const (
	hangulBase rune = 0xAC00
	hangulLast rune = 0xD7A3
	jamoLBase  rune = 0x1100
	jamoVBase  rune = 0x1161
	jamoTBase  rune = 0x11A7
	jamoTCount      = 28
	jamoNCount      = 588
)

func decomposeHangul(buf []rune, r rune) []rune {
	s := r - hangulBase
	buf = append(buf, jamoLBase+s/jamoNCount, jamoVBase+(s%jamoNCount)/jamoTCount)
	if t := s % jamoTCount; t != 0 {
		buf = append(buf, jamoTBase+t)
	}
	return buf
}

// decompose expands each eligible code point to its full canonical
// decomposition; everything else passes through unchanged.
func decompose(name string) ([]rune, error) {
	buf := make([]rune, 0, len(name))
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("invalid UTF-8 at byte %d: %w", i, types.ErrEncoding)
		}
		if eligible(r) {
			if r >= hangulBase && r <= hangulLast {
				buf = decomposeHangul(buf, r)
				i += size
				continue
			}
			if d := norm.NFD.PropertiesString(string(r)).Decomposition(); d != nil {
				for j := 0; j < len(d); {
					dr, ds := utf8.DecodeRune(d[j:])
					buf = append(buf, dr)
					j += ds
				}
				i += size
				continue
			}
		}
		buf = append(buf, r)
		i += size
	}
	return buf, nil
}

// reorderCombining applies the volume format's adjacent-swap pass: two
// consecutive marks exchange places when the first has a strictly higher
// combining class, the second is a combining mark, and both sit in the
// eligible range. Contiguous eligible runs end up ordered, but unlike
// standard NFD a mark never moves across an ineligible code point;
// on-disk keys depend on exactly this behavior.
func reorderCombining(buf []rune) {
	if len(buf) <= 1 {
		return
	}

	rclass := combiningClass(buf[1])
	if eligible(buf[0]) && eligible(buf[1]) && rclass != 0 && combiningClass(buf[0]) > rclass {
		buf[0], buf[1] = buf[1], buf[0]
	}

	for i := 1; i < len(buf)-1; {
		rclass = combiningClass(buf[i+1])
		switch {
		case rclass == 0 || !eligible(buf[i+1]):
			i += 2
		case eligible(buf[i]) && combiningClass(buf[i]) > rclass:
			buf[i], buf[i+1] = buf[i+1], buf[i]
			i--
		default:
			i++
		}
	}
}
