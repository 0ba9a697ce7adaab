package vaxis

import "testing"

func TestZeroCellRendersAsSpace(t *testing.T) {
	var cell Cell
	if cell.Character.grapheme() != " " {
		t.Errorf("expected space, got %q", cell.Character.grapheme())
	}
	if cell.Style != (Style{}) {
		t.Error("expected default style")
	}
}

func TestDefaultCell(t *testing.T) {
	cell := DefaultCell()
	if !cell.Default {
		t.Error("expected the default flag")
	}
}

func TestScaleDefaults(t *testing.T) {
	var s Scale
	if s.factor() != 1 {
		t.Errorf("expected factor 1, got %d", s.factor())
	}
	if s.denominator() != 1 {
		t.Errorf("expected denominator 1, got %d", s.denominator())
	}

	s.Scale = 3
	if s.factor() != 3 {
		t.Errorf("expected factor 3, got %d", s.factor())
	}
}

func TestAttrMask(t *testing.T) {
	a := AttrBold | AttrItalic
	if !a.Has(AttrBold) || !a.Has(AttrItalic) {
		t.Error("expected both attributes")
	}
	if a.Has(AttrDim) {
		t.Error("unexpected attribute")
	}
}
