package vaxis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
)

// Method selects how grapheme display widths are measured.
type Method uint8

const (
	// MethodWcwidth measures like the classic wcwidth(3): per-rune widths
	// summed, matching terminals without grapheme support.
	MethodWcwidth Method = iota
	// MethodUnicode measures whole grapheme clusters, matching terminals
	// with mode 2027 or explicit-width support.
	MethodUnicode
	// MethodNoZWJ measures like MethodUnicode after stripping zero-width
	// joiners, matching terminals that render ZWJ sequences split apart.
	MethodNoZWJ
)

// gwidth returns the display width of the grapheme cluster s in cells under
// the given measuring method. The result is never negative: zero-width
// combining marks and variation selectors contribute 0, wide East-Asian and
// emoji presentation sequences contribute 2.
func gwidth(s string, method Method) int {
	switch method {
	case MethodUnicode:
		return uniseg.StringWidth(s)
	case MethodNoZWJ:
		return gwidth(strings.ReplaceAll(s, "\u200d", ""), MethodUnicode)
	default:
		total := 0
		for _, r := range s {
			if w := uniwidth.RuneWidth(r); w > 0 {
				total += w
			}
		}
		return total
	}
}

// graphemes iterates the grapheme clusters of b, yielding the (start, length)
// byte span of each cluster.
type graphemes struct {
	src   []byte
	start int
	n     int
	state int
}

// newGraphemes returns an iterator over the grapheme clusters of b.
func newGraphemes(b []byte) *graphemes {
	return &graphemes{src: b, state: -1}
}

// next advances to the next cluster. It returns false when the input is
// exhausted.
func (g *graphemes) next() bool {
	g.start += g.n
	if g.start >= len(g.src) {
		return false
	}
	cluster, _, _, state := uniseg.FirstGraphemeCluster(g.src[g.start:], g.state)
	g.state = state
	g.n = len(cluster)
	return g.n > 0
}

// span returns the byte span of the current cluster.
func (g *graphemes) span() (start, length int) {
	return g.start, g.n
}

// bytes returns the current cluster.
func (g *graphemes) bytes() []byte {
	return g.src[g.start : g.start+g.n]
}

// isVariationSelector reports whether r is in the Unicode variation selector
// blocks (U+FE00..U+FE0F, U+E0100..U+E01EF).
func isVariationSelector(r rune) bool {
	return (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0xE0100 && r <= 0xE01EF)
}

// asciiPrefixLen returns the length of the leading run of printable ASCII
// (0x20..0x7E) in b. The run is shortened by one byte when the byte following
// it begins a combining mark, a variation selector, or an incomplete UTF-8
// sequence, so a caller slicing at the returned boundary cannot split a
// grapheme cluster.
func asciiPrefixLen(b []byte) int {
	n := 0
	for n < len(b) && b[n] >= 0x20 && b[n] <= 0x7e {
		n++
	}
	if n == 0 || n == len(b) {
		return n
	}
	rest := b[n:]
	if !utf8.FullRune(rest) {
		return n - 1
	}
	r, _ := utf8.DecodeRune(rest)
	if unicode.In(r, unicode.Mn, unicode.Me) || isVariationSelector(r) {
		return n - 1
	}
	return n
}

// graphemeCacheSize is the capacity of the interning ring buffer for event
// text.
const graphemeCacheSize = 16 * 1024

// graphemeCache interns grapheme bytes for ephemeral event text. Slices
// handed out remain valid until the write cursor wraps past them; events must
// copy their text to retain it.
type graphemeCache struct {
	buf [graphemeCacheSize]byte
	w   int
}

// put copies b into the ring and returns the interned slice. Writes wrap to
// the start of the ring when they would overflow.
func (g *graphemeCache) put(b []byte) []byte {
	if len(b) > len(g.buf) {
		b = b[:len(g.buf)]
	}
	if g.w+len(b) > len(g.buf) {
		g.w = 0
	}
	n := copy(g.buf[g.w:], b)
	out := g.buf[g.w : g.w+n : g.w+n]
	g.w += n
	return out
}
