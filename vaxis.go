package vaxis

import (
	"bufio"
	"sync"
)

// Vaxis ties the core together: the screen being composed, the shadow of the
// last rendered frame, the parser, the event queue, and the latched terminal
// capabilities.
//
// Screen, shadow, and renderer are not thread-safe: one task owns them. The
// input side (Feed, PostEvent) may run on a second task; the event queue is
// the only crossing point.
type Vaxis struct {
	writer          Writer
	bw              *bufio.Writer
	winsizeProvider WinsizeProvider
	clipboard       ClipboardProvider
	ttyFd           int

	screen *Screen
	shadow *shadow
	ws     Winsize

	parser  Parser
	queue   *EventQueue
	filters []EventFilter

	caps         Capabilities
	sgrLegacy    bool
	method       Method
	methodForced bool
	noKitty      bool
	kittyFlags   int

	altScreen bool
	refresh   bool

	// renderer state tracked across one frame
	cursorRow int
	cursorCol int
	curStyle  Style
	curLink   Hyperlink

	mouseActive bool

	queriesDone chan struct{}
	queriesOnce sync.Once

	nextImageID uint32
}

// New creates a Vaxis sized from its winsize provider. The environment
// overrides listed in the package documentation are applied once, here.
func New(opts ...Option) (*Vaxis, error) {
	vx := &Vaxis{
		writer:          NoopWriter{},
		winsizeProvider: NoopWinsize{},
		clipboard:       NoopClipboard{},
		kittyFlags:      1,
		method:          MethodWcwidth,
		queue:           NewEventQueue(),
		queriesDone:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(vx)
	}
	vx.applyEnvOverrides()
	vx.bw = bufio.NewWriterSize(vx.writer, 8192)

	ws, err := vx.winsizeProvider.Winsize(vx.ttyFd)
	if err != nil {
		return nil, err
	}
	vx.resize(ws)
	vx.winsizeProvider.Subscribe(func() {
		if ws, err := vx.winsizeProvider.Winsize(vx.ttyFd); err == nil {
			vx.PostEvent(ws)
		}
	})
	return vx, nil
}

// resize replaces the screen and shadow buffers at the new size. The next
// render repaints everything.
func (vx *Vaxis) resize(ws Winsize) {
	vx.ws = ws
	vx.screen = NewScreen(ws.Cols, ws.Rows)
	vx.screen.widthPix = ws.XPixel
	vx.screen.heightPix = ws.YPixel
	vx.screen.method = vx.method
	vx.shadow = newShadow(ws.Cols, ws.Rows)
	vx.refresh = true
}

// Resize recreates the cell buffers for the given size. Call it when
// handling a Winsize event.
func (vx *Vaxis) Resize(ws Winsize) {
	vx.resize(ws)
}

// Window returns the root window covering the whole screen for this frame.
func (vx *Vaxis) Window() Window {
	w, h := vx.screen.Size()
	return Window{Width: w, Height: h, screen: vx.screen}
}

// Caps returns the capabilities reported so far.
func (vx *Vaxis) Caps() Capabilities {
	return vx.caps
}

// Refresh forces the next render to repaint every cell.
func (vx *Vaxis) Refresh() {
	vx.refresh = true
}

// AddEventFilter registers a filter run against every posted event before it
// is queued. Filters run in registration order.
func (vx *Vaxis) AddEventFilter(f EventFilter) {
	vx.filters = append(vx.filters, f)
}

// Feed parses as many complete events as b contains, posting each. It
// returns the number of bytes consumed; the caller keeps the remainder and
// extends it with further reads.
func (vx *Vaxis) Feed(b []byte) (int, error) {
	consumed := 0
	for consumed < len(b) {
		result, err := vx.parser.Parse(b[consumed:])
		if err != nil {
			return consumed, err
		}
		if result.N == 0 {
			break
		}
		consumed += result.N
		if result.Event != nil {
			vx.PostEvent(result.Event)
		}
	}
	return consumed, nil
}

// PostEvent runs filters, latches capability reports, and enqueues the event
// for the render task. Capability events must be observed before the
// features they unlock are used; latching here, on the producer side,
// establishes that ordering.
func (vx *Vaxis) PostEvent(ev Event) {
	for _, f := range vx.filters {
		ev = f(ev)
		if ev == nil {
			return
		}
	}
	switch e := ev.(type) {
	case CapKittyKeyboard:
		vx.caps.KittyKeyboard = true
		vx.caps.KittyKeyboardFlags = e.Flags
	case CapKittyGraphics:
		vx.caps.KittyGraphics = true
	case CapRGB:
		vx.caps.RGB = true
	case CapSGRPixels:
		vx.caps.SGRPixels = true
	case CapUnicode:
		vx.caps.Unicode = true
	case CapColorSchemeUpdates:
		vx.caps.ColorSchemeUpdates = true
	case CapExplicitWidth:
		vx.caps.ExplicitWidth = true
	case CapScaledText:
		vx.caps.ScaledText = true
	case CapDA1:
		vx.finishQueries()
	case Mouse:
		ev = vx.translateMouse(e)
	}
	vx.queue.Push(ev)
}

// PollEvent blocks until an event is available. It reports false when the
// queue has been closed and drained.
func (vx *Vaxis) PollEvent() (Event, bool) {
	return vx.queue.Pop()
}

// TryEvent returns the next event without blocking.
func (vx *Vaxis) TryEvent() (Event, bool) {
	return vx.queue.TryPop()
}

// translateMouse converts pixel-coordinate reports into cell coordinates
// with intra-cell offsets when SGR-pixel mode is active.
func (vx *Vaxis) translateMouse(m Mouse) Mouse {
	if !vx.caps.SGRPixels || !vx.mouseActive {
		return m
	}
	if vx.ws.Cols <= 0 || vx.ws.Rows <= 0 || vx.ws.XPixel <= 0 || vx.ws.YPixel <= 0 {
		return m
	}
	cellW := vx.ws.XPixel / vx.ws.Cols
	cellH := vx.ws.YPixel / vx.ws.Rows
	if cellW <= 0 || cellH <= 0 {
		return m
	}
	x, y := m.Col, m.Row
	m.Col = x / cellW
	m.Row = y / cellH
	m.XOffset = x % cellW
	m.YOffset = y % cellH
	return m
}

// Close restores the terminal and releases the queue. Flush errors here are
// swallowed: teardown is unconditional.
func (vx *Vaxis) Close() {
	if vx.caps.KittyKeyboard && !vx.noKitty {
		vx.bw.WriteString(kittyKBPop)
	}
	if vx.mouseActive {
		vx.bw.WriteString(mouseReset)
		vx.mouseActive = false
	}
	vx.bw.WriteString(pasteReset)
	if vx.altScreen {
		vx.bw.WriteString(rmcup)
		vx.altScreen = false
	}
	vx.bw.WriteString(sgrReset)
	vx.bw.WriteString(cursorShow)
	if err := vx.bw.Flush(); err != nil {
		logger.WithError(err).Debug("flush during teardown")
	}
	vx.queue.Close()
}
