package vaxis

import (
	"bytes"
	"strings"
	"testing"
)

type fixedWinsize struct {
	ws Winsize
}

func (f fixedWinsize) Winsize(fd int) (Winsize, error) { return f.ws, nil }
func (f fixedWinsize) Subscribe(fn func())             {}

func testVaxis(t *testing.T, cols, rows int) (*Vaxis, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	vx, err := New(
		WithWriter(&buf),
		WithWinsize(fixedWinsize{Winsize{Rows: rows, Cols: cols}}),
	)
	if err != nil {
		t.Fatal(err)
	}
	return vx, &buf
}

func TestRenderSecondFrameIsFramingOnly(t *testing.T) {
	vx, buf := testVaxis(t, 8, 3)

	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, syncSet) || !strings.HasSuffix(out, syncReset) {
		t.Errorf("expected sync framing, got %q", out)
	}
	// No per-cell SGR and no text beyond the framing.
	stripped := out
	for _, framing := range []string{syncSet, syncReset, cursorHide, sgrReset, "\r", reverseIndex} {
		stripped = strings.ReplaceAll(stripped, framing, "")
	}
	if stripped != "" {
		t.Errorf("second frame emitted material output: %q", stripped)
	}
}

func TestRenderEmitsChangedCell(t *testing.T) {
	vx, buf := testVaxis(t, 8, 3)
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	win := vx.Window()
	win.WriteCell(0, 0, Cell{
		Character: Character{Grapheme: "X", Width: 1},
		Style:     Style{Foreground: IndexColor(1)},
	})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "X") {
		t.Errorf("expected the changed cell's text, got %q", out)
	}
	if !strings.Contains(out, "\x1b[31m") {
		t.Errorf("expected the short-form color, got %q", out)
	}
}

func TestRenderOnlyDirtyCells(t *testing.T) {
	vx, buf := testVaxis(t, 8, 3)
	win := vx.Window()
	win.WriteCell(0, 0, Cell{Character: Character{Grapheme: "A", Width: 1}})
	win.WriteCell(5, 2, Cell{Character: Character{Grapheme: "B", Width: 1}})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	win.WriteCell(5, 2, Cell{Character: Character{Grapheme: "C", Width: 1}})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if strings.Contains(out, "A") {
		t.Errorf("unchanged cell re-emitted: %q", out)
	}
	if !strings.Contains(out, "C") {
		t.Errorf("changed cell missing: %q", out)
	}
}

func TestRenderBrightColors(t *testing.T) {
	vx, buf := testVaxis(t, 4, 1)
	win := vx.Window()
	win.WriteCell(0, 0, Cell{
		Character: Character{Grapheme: "x", Width: 1},
		Style:     Style{Foreground: IndexColor(9)},
	})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[91m") {
		t.Errorf("expected bright form for index 9, got %q", buf.String())
	}
}

func TestRenderRGBForms(t *testing.T) {
	vx, buf := testVaxis(t, 4, 1)
	vx.caps.RGB = true
	win := vx.Window()
	win.WriteCell(0, 0, Cell{
		Character: Character{Grapheme: "x", Width: 1},
		Style:     Style{Foreground: RGBColor(1, 2, 3)},
	})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[38:2::1:2:3m") {
		t.Errorf("expected colon subparameter SGR, got %q", buf.String())
	}

	vx2, buf2 := testVaxis(t, 4, 1)
	vx2.caps.RGB = true
	vx2.sgrLegacy = true
	win2 := vx2.Window()
	win2.WriteCell(0, 0, Cell{
		Character: Character{Grapheme: "x", Width: 1},
		Style:     Style{Foreground: RGBColor(1, 2, 3)},
	})
	if err := vx2.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf2.String(), "\x1b[38;2;1;2;3m") {
		t.Errorf("expected legacy SGR, got %q", buf2.String())
	}
}

func TestRenderHyperlink(t *testing.T) {
	vx, buf := testVaxis(t, 6, 1)
	win := vx.Window()
	win.WriteCell(0, 0, Cell{
		Character: Character{Grapheme: "a", Width: 1},
		Link:      Hyperlink{URI: "https://example.com", Params: "id=1"},
	})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "\x1b]8;id=1;https://example.com\x1b\\") {
		t.Errorf("expected OSC 8 open, got %q", out)
	}
	if !strings.Contains(out, osc8Clear) {
		t.Errorf("expected OSC 8 close after the link run, got %q", out)
	}
}

func TestRenderCursorShown(t *testing.T) {
	vx, buf := testVaxis(t, 8, 3)
	vx.screen.ShowCursor(2, 1)
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), cursorShow) {
		t.Errorf("expected cursor show, got %q", buf.String())
	}

	// Hidden cursor frames never show it.
	buf.Reset()
	vx.screen.HideCursor()
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), cursorShow) {
		t.Errorf("hidden cursor was shown: %q", buf.String())
	}
}

func TestRenderWideCellSkipsTail(t *testing.T) {
	vx, _ := testVaxis(t, 4, 1)
	win := vx.Window()
	win.WriteCell(0, 0, Cell{Character: Character{Grapheme: "世", Width: 2}})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}

	if !vx.shadow.buf[1].skipped {
		t.Error("expected the wide tail to be marked skipped")
	}
	if vx.shadow.buf[0].skipped {
		t.Error("the head cell must not be marked skipped")
	}
}

func TestRenderNarrowOverWideRepaints(t *testing.T) {
	vx, buf := testVaxis(t, 4, 1)
	win := vx.Window()
	win.WriteCell(0, 0, Cell{Character: Character{Grapheme: "世", Width: 2}})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	// Replace the wide cell with two narrow ones: the old tail position
	// must repaint even though its cell value never changed.
	win.WriteCell(0, 0, Cell{Character: Character{Grapheme: "a", Width: 1}})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "a") {
		t.Errorf("expected repaint, got %q", buf.String())
	}
	if vx.shadow.buf[1].skipped {
		t.Error("tail flag must clear once the position renders independently")
	}
}

func TestRenderMouseShapeOnChange(t *testing.T) {
	vx, buf := testVaxis(t, 4, 1)
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	vx.screen.SetMouseShape(MouseShapeText)
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b]22;text\x1b\\") {
		t.Errorf("expected OSC 22, got %q", buf.String())
	}

	buf.Reset()
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\x1b]22") {
		t.Errorf("unchanged mouse shape re-emitted: %q", buf.String())
	}
}

func TestRenderScaledTextMarksCovered(t *testing.T) {
	vx, _ := testVaxis(t, 6, 3)
	vx.caps.ScaledText = true
	win := vx.Window()
	win.WriteCell(0, 0, Cell{
		Character: Character{Grapheme: "T", Width: 1},
		Scale:     Scale{Scale: 2},
	})
	if err := vx.Render(); err != nil {
		t.Fatal(err)
	}

	// A 2x scaled single-width glyph covers a 2x2 rectangle.
	if !vx.shadow.buf[1].skip {
		t.Error("expected (1, 0) covered")
	}
	if !vx.shadow.buf[6].skip || !vx.shadow.buf[7].skip {
		t.Error("expected row 1 coverage")
	}
	if vx.shadow.buf[2].skip {
		t.Error("coverage extends too far")
	}
}

func TestPrettyPrint(t *testing.T) {
	vx, buf := testVaxis(t, 10, 2)
	win := vx.Window()
	win.WriteCell(0, 0, Cell{
		Character: Character{Grapheme: "h", Width: 1},
		Style:     Style{Attrs: AttrBold},
	})
	win.WriteCell(1, 0, Cell{Character: Character{Grapheme: "i", Width: 1}})

	if err := vx.PrettyPrint(vx.screen); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, smcup) || strings.Contains(out, syncSet) {
		t.Errorf("pretty print must not touch display modes: %q", out)
	}
	if !strings.Contains(out, "h") || !strings.Contains(out, "i") {
		t.Errorf("expected text, got %q", out)
	}
	if !strings.Contains(out, "\x1b[1m") {
		t.Errorf("expected bold run, got %q", out)
	}
	if !strings.HasSuffix(out, "\r\n") {
		t.Errorf("expected CRLF termination, got %q", out)
	}
}

func TestRenderPropagatesWriteFailure(t *testing.T) {
	vx, _ := testVaxis(t, 4, 1)
	vx.bw.Reset(failWriter{})
	vx.Refresh()
	if err := vx.Render(); err == nil {
		t.Error("expected write failure to propagate")
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errFail
}

var errFail = &writeError{}

type writeError struct{}

func (*writeError) Error() string { return "write failed" }
