package vaxis

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestFeedPostsEvents(t *testing.T) {
	vx, _ := testVaxis(t, 8, 2)

	consumed, err := vx.Feed([]byte("ab\x1b[1;2A"))
	if err != nil {
		t.Fatal(err)
	}
	if consumed != 8 {
		t.Errorf("expected 8 bytes consumed, got %d", consumed)
	}

	for _, want := range []rune{'a', 'b', KeyUp} {
		ev, ok := vx.TryEvent()
		if !ok {
			t.Fatalf("missing event for %q", want)
		}
		key, ok := ev.(KeyPress)
		if !ok || key.Codepoint != want {
			t.Errorf("expected %q press, got %+v", want, ev)
		}
	}
}

func TestFeedRetainsIncompleteTail(t *testing.T) {
	vx, _ := testVaxis(t, 8, 2)

	consumed, err := vx.Feed([]byte("a\x1b[1;2"))
	if err != nil {
		t.Fatal(err)
	}
	if consumed != 1 {
		t.Errorf("expected only the complete prefix consumed, got %d", consumed)
	}
}

func TestPostEventLatchesCaps(t *testing.T) {
	vx, _ := testVaxis(t, 8, 2)

	vx.PostEvent(CapKittyKeyboard{Flags: 15})
	vx.PostEvent(CapRGB{})
	vx.PostEvent(CapUnicode{})

	caps := vx.Caps()
	if !caps.KittyKeyboard || caps.KittyKeyboardFlags != 15 {
		t.Errorf("kitty keyboard not latched: %+v", caps)
	}
	if !caps.RGB || !caps.Unicode {
		t.Errorf("caps not latched: %+v", caps)
	}

	// Capability events still reach the application.
	if _, ok := vx.TryEvent(); !ok {
		t.Error("capability events should be forwarded")
	}
}

func TestDA1FinishesQueries(t *testing.T) {
	vx, buf := testVaxis(t, 8, 2)
	vx.parser.capQueriesOutstanding = true

	vx.PostEvent(CapKittyKeyboard{Flags: 1})
	vx.PostEvent(CapUnicode{})
	vx.PostEvent(CapDA1{})

	select {
	case <-vx.queriesDone:
	default:
		t.Fatal("expected queriesDone to close on DA1")
	}
	if vx.parser.capQueriesOutstanding {
		t.Error("query window should close on DA1")
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[>1u") {
		t.Errorf("expected kitty keyboard push, got %q", out)
	}
	if !strings.Contains(out, unicodeSet) {
		t.Errorf("expected mode 2027 set, got %q", out)
	}
	if vx.method != MethodUnicode {
		t.Error("expected the unicode measuring method")
	}
}

func TestExplicitWidthSupersedesMode2027(t *testing.T) {
	vx, buf := testVaxis(t, 8, 2)

	vx.PostEvent(CapUnicode{})
	vx.PostEvent(CapExplicitWidth{})
	vx.PostEvent(CapDA1{})

	if strings.Contains(buf.String(), unicodeSet) {
		t.Errorf("mode 2027 must stay off with explicit width: %q", buf.String())
	}
}

func TestQueryTerminalTimeout(t *testing.T) {
	vx, buf := testVaxis(t, 8, 2)

	start := time.Now()
	if err := vx.QueryTerminal(10 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) > time.Second {
		t.Error("timeout did not fire")
	}
	if vx.parser.capQueriesOutstanding {
		t.Error("query window should close on timeout")
	}
	out := buf.String()
	for _, probe := range []string{decrqmSGRPixels, decrqmUnicode, xtversion, da1} {
		if !strings.Contains(out, probe) {
			t.Errorf("probe %q missing from bundle", probe)
		}
	}
}

func TestEventFilter(t *testing.T) {
	vx, _ := testVaxis(t, 8, 2)
	vx.AddEventFilter(func(ev Event) Event {
		if _, ok := ev.(FocusIn); ok {
			return nil
		}
		return ev
	})

	vx.PostEvent(FocusIn{})
	vx.PostEvent(FocusOut{})

	ev, ok := vx.TryEvent()
	if !ok {
		t.Fatal("expected one event")
	}
	if _, isOut := ev.(FocusOut); !isOut {
		t.Errorf("filter failed, got %T", ev)
	}
}

func TestTranslateMouse(t *testing.T) {
	var buf bytes.Buffer
	vx, err := New(
		WithWriter(&buf),
		WithWinsize(fixedWinsize{Winsize{Rows: 10, Cols: 20, XPixel: 200, YPixel: 100}}),
	)
	if err != nil {
		t.Fatal(err)
	}
	vx.caps.SGRPixels = true
	vx.mouseActive = true

	vx.PostEvent(Mouse{Col: 57, Row: 42, Button: MouseButtonLeft, Type: MousePress})

	ev, _ := vx.TryEvent()
	m := ev.(Mouse)
	// 10px cells: (57, 42) is cell (5, 4) offset (7, 2).
	if m.Col != 5 || m.Row != 4 {
		t.Errorf("expected cell (5, 4), got (%d, %d)", m.Col, m.Row)
	}
	if m.XOffset != 7 || m.YOffset != 2 {
		t.Errorf("expected offset (7, 2), got (%d, %d)", m.XOffset, m.YOffset)
	}
}

func TestCloseRestoresTerminal(t *testing.T) {
	vx, buf := testVaxis(t, 8, 2)
	vx.caps.KittyKeyboard = true
	vx.altScreen = true
	buf.Reset()

	vx.Close()

	out := buf.String()
	for _, want := range []string{kittyKBPop, rmcup, sgrReset, cursorShow} {
		if !strings.Contains(out, want) {
			t.Errorf("teardown missing %q in %q", want, out)
		}
	}
	if _, ok := vx.TryEvent(); ok {
		t.Error("expected closed queue")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VAXIS_FORCE_LEGACY_SGR", "1")
	t.Setenv("VAXIS_FORCE_WCWIDTH", "1")

	vx, _ := testVaxis(t, 4, 2)
	if !vx.sgrLegacy {
		t.Error("expected legacy SGR to be forced")
	}
	if vx.method != MethodWcwidth || !vx.methodForced {
		t.Error("expected the wcwidth method to be pinned")
	}

	// A pinned method survives a mode 2027 report.
	vx.PostEvent(CapUnicode{})
	vx.PostEvent(CapDA1{})
	if vx.method != MethodWcwidth {
		t.Error("forced method must not change on capability discovery")
	}
}

func TestResizeRecreatesBuffers(t *testing.T) {
	vx, _ := testVaxis(t, 8, 2)
	win := vx.Window()
	win.WriteCell(0, 0, Cell{Character: Character{Grapheme: "x"}})

	vx.Resize(Winsize{Rows: 4, Cols: 10})

	w, h := vx.screen.Size()
	if w != 10 || h != 4 {
		t.Errorf("expected 10x4, got %dx%d", w, h)
	}
	if cell, _ := vx.screen.ReadCell(0, 0); !cell.Default {
		t.Error("resize must reset cells to default")
	}
	if !vx.refresh {
		t.Error("resize must force a full repaint")
	}
}
