package vaxis

import "testing"

func TestColorZeroValueIsDefault(t *testing.T) {
	var c Color
	if c.Kind != ColorKindDefault {
		t.Errorf("zero color should be the terminal default, got %v", c.Kind)
	}
	if c.fgSeq(false) != "\x1b[39m" {
		t.Errorf("unexpected default fg sequence %q", c.fgSeq(false))
	}
	if c.bgSeq(false) != "\x1b[49m" {
		t.Errorf("unexpected default bg sequence %q", c.bgSeq(false))
	}
}

func TestColorIndexedForms(t *testing.T) {
	tests := []struct {
		index uint8
		fg    string
		bg    string
	}{
		{0, "\x1b[30m", "\x1b[40m"},
		{7, "\x1b[37m", "\x1b[47m"},
		{8, "\x1b[90m", "\x1b[100m"},
		{15, "\x1b[97m", "\x1b[107m"},
		{100, "\x1b[38:5:100m", "\x1b[48:5:100m"},
	}
	for _, tt := range tests {
		c := IndexColor(tt.index)
		if got := c.fgSeq(false); got != tt.fg {
			t.Errorf("index %d fg: expected %q, got %q", tt.index, tt.fg, got)
		}
		if got := c.bgSeq(false); got != tt.bg {
			t.Errorf("index %d bg: expected %q, got %q", tt.index, tt.bg, got)
		}
	}

	if got := IndexColor(100).fgSeq(true); got != "\x1b[38;5;100m" {
		t.Errorf("legacy indexed fg: got %q", got)
	}
}

func TestColorDownsample(t *testing.T) {
	// Pure red maps to the palette's red region, not to a gray.
	c := RGBColor(255, 0, 0).downsample()
	if c.Kind != ColorKindIndexed {
		t.Fatalf("expected indexed result, got %v", c.Kind)
	}
	entry := DefaultPalette[c.Index]
	if entry.R < 150 || entry.G > 100 || entry.B > 100 {
		t.Errorf("downsampled red landed on %+v (index %d)", entry, c.Index)
	}

	// Non-RGB colors pass through untouched.
	if got := IndexColor(3).downsample(); got != IndexColor(3) {
		t.Errorf("indexed color changed: %+v", got)
	}
	var def Color
	if got := def.downsample(); got != def {
		t.Errorf("default color changed: %+v", got)
	}
}

func TestColorExactPaletteRoundTrip(t *testing.T) {
	// An RGB value that exactly matches a palette entry maps to it.
	entry := DefaultPalette[33]
	c := RGBColor(entry.R, entry.G, entry.B).downsample()
	got := DefaultPalette[c.Index]
	if got != entry {
		t.Errorf("expected exact palette match, got index %d (%+v)", c.Index, got)
	}
}
