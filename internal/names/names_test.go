package names

import (
	"errors"
	"strings"
	"testing"

	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

func mustFromPosix(t *testing.T, name string) types.Unistr255 {
	t.Helper()
	u, err := FromPosix(name)
	if err != nil {
		t.Fatalf("FromPosix(%q) failed: %v", name, err)
	}
	return u
}

func unistr(units ...uint16) types.Unistr255 {
	var u types.Unistr255
	u.Length = uint16(len(units))
	copy(u.Unicode[:], units)
	return u
}

func TestFromPosixDecomposition(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []uint16
	}{
		{"ascii", "file.txt", []uint16{'f', 'i', 'l', 'e', '.', 't', 'x', 't'}},
		{"precomposed a acute", "á", []uint16{'a', 0x0301}},
		{"already decomposed", "á", []uint16{'a', 0x0301}},
		{"colon becomes slash", "a:b", []uint16{'a', '/', 'b'}},
		// U+2126 OHM SIGN sits in the U+2000..U+2FFF exclusion band and
		// must not decompose to U+03A9.
		{"exclusion band 2xxx", "Ω", []uint16{0x2126}},
		// U+F900 is a CJK compatibility ideograph with a singleton
		// decomposition that the volume format does not apply.
		{"exclusion band f9xx", "豈", []uint16{0xF900}},
		// Supplementary plane code points pass through as surrogate pairs.
		{"supplementary plane", "\U0001F600", []uint16{0xD83D, 0xDE00}},
		// Hangul syllables decompose to conjoining jamo.
		{"hangul syllable", "한", []uint16{0x1112, 0x1161, 0x11AB}},
		{"hangul no trailing jamo", "가", []uint16{0x1100, 0x1161}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustFromPosix(t, tc.input)
			want := unistr(tc.expected...)
			if got != want {
				t.Errorf("FromPosix(%q) units = %v, want %v", tc.input, got.Units(), want.Units())
			}
		})
	}
}

func TestFromPosixCombiningReorder(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []uint16
	}{
		// U+0301 (class 230) written before U+0323 (class 220) swaps.
		{"adjacent pair swaps", "q̣́", []uint16{'q', 0x0323, 0x0301}},
		{"already ordered pair stays", "q̣́", []uint16{'q', 0x0323, 0x0301}},
		// Swap applies at the very start of the name too.
		{"leading marks swap", "̣́", []uint16{0x0323, 0x0301}},
		// U+20D0 is a combining mark inside the exclusion band, so neither
		// side of it reorders.
		{"excluded mark blocks swap", "q́⃐", []uint16{'q', 0x0301, 0x20D0}},
		// Standard NFD would pull U+0323 in front of both class-230 marks;
		// here it never crosses the ineligible U+20D0.
		{"no reorder across excluded mark", "q̣́⃐", []uint16{'q', 0x0301, 0x20D0, 0x0323}},
		// Classes 230,220,232 settle to 220,230,232 within the run.
		{"triple run ordered", "q̣́̕", []uint16{'q', 0x0323, 0x0301, 0x0315}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustFromPosix(t, tc.input)
			want := unistr(tc.expected...)
			if got != want {
				t.Errorf("FromPosix(%q) units = %v, want %v", tc.input, got.Units(), want.Units())
			}
		})
	}
}

func TestFromPosixErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"invalid utf8", "bad\xffname"},
		{"truncated utf8", "trunc\xC3"},
		{"over length limit", strings.Repeat("a", types.NameMax+1)},
		// 128 precomposed letters decompose to 256 units, past the limit.
		{"over limit after decomposition", strings.Repeat("á", 128)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromPosix(tc.input)
			if !errors.Is(err, types.ErrEncoding) {
				t.Errorf("FromPosix(%q) error = %v, want ErrEncoding", tc.input, err)
			}
		})
	}
}

func TestToPosix(t *testing.T) {
	u := unistr('a', '/', 'b')
	got, err := ToPosix(u)
	if err != nil {
		t.Fatalf("ToPosix failed: %v", err)
	}
	if got != "a/b" {
		t.Errorf("ToPosix = %q, want %q", got, "a/b")
	}

	seg, err := ToPosixSegment(u)
	if err != nil {
		t.Fatalf("ToPosixSegment failed: %v", err)
	}
	if seg != "a:b" {
		t.Errorf("ToPosixSegment = %q, want %q", seg, "a:b")
	}
}

func TestToPosixSurrogates(t *testing.T) {
	pair := unistr(0xD83D, 0xDE00)
	got, err := ToPosix(pair)
	if err != nil {
		t.Fatalf("ToPosix(pair) failed: %v", err)
	}
	if got != "\U0001F600" {
		t.Errorf("ToPosix(pair) = %q, want %q", got, "\U0001F600")
	}

	for name, u := range map[string]types.Unistr255{
		"lone high":      unistr('a', 0xD83D),
		"lone low":       unistr(0xDE00, 'a'),
		"reversed order": unistr(0xDE00, 0xD83D),
	} {
		if _, err := ToPosix(u); !errors.Is(err, types.ErrEncoding) {
			t.Errorf("ToPosix(%s) error = %v, want ErrEncoding", name, err)
		}
	}
}

func TestSeparatorRoundTrip(t *testing.T) {
	// A name containing ':' maps to '/' on disk and back to ':' in
	// display form.
	u := mustFromPosix(t, "Report: Q3")
	seg, err := ToPosixSegment(u)
	if err != nil {
		t.Fatalf("ToPosixSegment failed: %v", err)
	}
	if seg != "Report: Q3" {
		t.Errorf("round trip = %q, want %q", seg, "Report: Q3")
	}

	raw, err := ToPosix(u)
	if err != nil {
		t.Fatalf("ToPosix failed: %v", err)
	}
	if raw != "Report/ Q3" {
		t.Errorf("on-disk form = %q, want %q", raw, "Report/ Q3")
	}
}
