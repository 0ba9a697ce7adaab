package vaxis

import (
	"bytes"
	"testing"
)

func TestGwidthASCII(t *testing.T) {
	for _, method := range []Method{MethodWcwidth, MethodUnicode, MethodNoZWJ} {
		if w := gwidth("a", method); w != 1 {
			t.Errorf("method %d: expected width 1, got %d", method, w)
		}
	}
}

func TestGwidthWide(t *testing.T) {
	for _, method := range []Method{MethodWcwidth, MethodUnicode, MethodNoZWJ} {
		if w := gwidth("世", method); w != 2 {
			t.Errorf("method %d: expected width 2 for CJK, got %d", method, w)
		}
	}
}

func TestGwidthZWJSequence(t *testing.T) {
	// Woman + ZWJ + rocket. Unicode mode sees one wide cluster; noZWJ mode
	// strips the joiner and measures two wide glyphs.
	s := "👩‍🚀"
	if w := gwidth(s, MethodUnicode); w != 2 {
		t.Errorf("unicode: expected 2, got %d", w)
	}
	if w := gwidth(s, MethodNoZWJ); w != 4 {
		t.Errorf("nozwj: expected 4, got %d", w)
	}
}

func TestGwidthCombining(t *testing.T) {
	// Combining marks contribute nothing.
	if w := gwidth("á", MethodUnicode); w != 1 {
		t.Errorf("expected 1, got %d", w)
	}
	if w := gwidth("á", MethodWcwidth); w != 1 {
		t.Errorf("wcwidth: expected 1, got %d", w)
	}
}

func TestGwidthNonNegative(t *testing.T) {
	inputs := []string{"", "\x00", "‍", "a", "界", "👍"}
	for _, s := range inputs {
		for _, method := range []Method{MethodWcwidth, MethodUnicode, MethodNoZWJ} {
			if w := gwidth(s, method); w < 0 {
				t.Errorf("gwidth(%q, %d) = %d", s, method, w)
			}
		}
	}
}

func TestGwidthSubadditive(t *testing.T) {
	pairs := [][2]string{
		{"ab", "cd"},
		{"世", "界"},
		{"a", "\u0301"},
		{"👩", "‍🚀"},
	}
	for _, pair := range pairs {
		joined := gwidth(pair[0]+pair[1], MethodUnicode)
		parts := gwidth(pair[0], MethodUnicode) + gwidth(pair[1], MethodUnicode)
		if joined > parts {
			t.Errorf("gwidth(%q + %q): joined %d > parts %d", pair[0], pair[1], joined, parts)
		}
	}
}

func TestGraphemeIterator(t *testing.T) {
	g := newGraphemes([]byte("a世b"))
	var clusters []string
	for g.next() {
		clusters = append(clusters, string(g.bytes()))
	}
	want := []string{"a", "世", "b"}
	if len(clusters) != len(want) {
		t.Fatalf("expected %d clusters, got %d", len(want), len(clusters))
	}
	for i := range want {
		if clusters[i] != want[i] {
			t.Errorf("cluster %d: expected %q, got %q", i, want[i], clusters[i])
		}
	}
}

func TestGraphemeIteratorSpans(t *testing.T) {
	src := []byte("x👩‍🚀y")
	g := newGraphemes(src)
	end := 0
	for g.next() {
		start, length := g.span()
		if start != end {
			t.Errorf("cluster starts at %d, expected %d", start, end)
		}
		end = start + length
	}
	if end != len(src) {
		t.Errorf("iterator covered %d of %d bytes", end, len(src))
	}
}

func TestASCIIPrefixLen(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"abc", 3},
		{"abc\x1b", 3},
		{"\x1babc", 0},
		{"ab\u0301", 1},      // combining mark joins the 'b'
		{"ab\ufe0f", 1},      // variation selector joins the 'b'
		{"ab\xf0", 1},        // incomplete UTF-8 tail
		{"ab界", 2},          // ordinary wide rune does not shorten
		{"\u0301", 0},
	}
	for _, tt := range tests {
		if got := asciiPrefixLen([]byte(tt.input)); got != tt.want {
			t.Errorf("asciiPrefixLen(%q) = %d, expected %d", tt.input, got, tt.want)
		}
	}
}

func TestGraphemeCache(t *testing.T) {
	var cache graphemeCache

	a := cache.put([]byte("hello"))
	if string(a) != "hello" {
		t.Errorf("expected \"hello\", got %q", a)
	}

	b := cache.put([]byte("world"))
	if string(b) != "world" {
		t.Errorf("expected \"world\", got %q", b)
	}
	if string(a) != "hello" {
		t.Errorf("earlier slice clobbered prematurely: %q", a)
	}
}

func TestGraphemeCacheWraps(t *testing.T) {
	var cache graphemeCache
	chunk := bytes.Repeat([]byte("x"), 1000)

	// Fill past the end of the ring; the write cursor must wrap rather
	// than overflow.
	for i := 0; i < 2*graphemeCacheSize/len(chunk); i++ {
		out := cache.put(chunk)
		if len(out) != len(chunk) {
			t.Fatalf("iteration %d: expected %d bytes, got %d", i, len(chunk), len(out))
		}
	}
}
