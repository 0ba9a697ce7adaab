package vaxis

import "testing"

func TestSnapshotText(t *testing.T) {
	s := NewScreen(10, 3)
	root := NewWindow(s, 0, 0, 10, 3)
	root.Print([]Segment{{Text: "hello\nworld"}}, PrintOptions{Wrap: WrapGrapheme})

	snap := s.Snapshot()

	if snap.Size.Rows != 3 || snap.Size.Cols != 10 {
		t.Errorf("unexpected size: %+v", snap.Size)
	}
	if snap.Lines[0].Text != "hello" {
		t.Errorf("line 0: expected \"hello\", got %q", snap.Lines[0].Text)
	}
	if snap.Lines[1].Text != "world" {
		t.Errorf("line 1: expected \"world\", got %q", snap.Lines[1].Text)
	}
	if snap.Lines[2].Text != "" {
		t.Errorf("line 2: expected empty, got %q", snap.Lines[2].Text)
	}
	if snap.String() != "hello\nworld\n\n" {
		t.Errorf("unexpected dump: %q", snap.String())
	}
}

func TestSnapshotSegments(t *testing.T) {
	s := NewScreen(10, 1)
	root := NewWindow(s, 0, 0, 10, 1)
	root.Print([]Segment{
		{Text: "ab", Style: Style{Attrs: AttrBold}},
		{Text: "cd"},
	}, PrintOptions{Wrap: WrapGrapheme})

	line := s.Snapshot().Lines[0]
	if len(line.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(line.Segments))
	}
	if line.Segments[0].Text != "ab" || !line.Segments[0].Style.Attrs.Has(AttrBold) {
		t.Errorf("unexpected first segment: %+v", line.Segments[0])
	}
	if line.Segments[1].Text != "cd" {
		t.Errorf("unexpected second segment: %+v", line.Segments[1])
	}
}

func TestSnapshotSkipsWideTails(t *testing.T) {
	s := NewScreen(6, 1)
	s.WriteCell(0, 0, Cell{Character: Character{Grapheme: "世", Width: 2}})
	s.WriteCell(2, 0, Cell{Character: Character{Grapheme: "x", Width: 1}})

	line := s.Snapshot().Lines[0]
	if line.Text != "世x" {
		t.Errorf("expected \"世x\", got %q", line.Text)
	}
}

func TestScreenshotDimensions(t *testing.T) {
	s := NewScreen(8, 2)
	s.WriteCell(0, 0, Cell{Character: Character{Grapheme: "A", Width: 1}})

	img := s.Screenshot()
	bounds := img.Bounds()
	if bounds.Dx()%8 != 0 || bounds.Dy()%2 != 0 {
		t.Errorf("image does not tile the grid: %v", bounds)
	}
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		t.Error("empty screenshot")
	}
}
