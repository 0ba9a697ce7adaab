// Package vaxis is the core of a terminal user interface library: a
// double-buffered cell grid with a differential renderer and a
// protocol-aware input parser.
//
// Applications compose frames into a [Screen] through [Window] values, then
// [Vaxis.Render] diffs the screen against the shadow of the last emitted
// frame and writes the minimum control-sequence stream that reconciles the
// terminal. Bytes read from the terminal feed [Parser] (or [Vaxis.Feed]),
// which decodes keys, mouse reports, focus and paste markers, color reports,
// and capability discoveries into [Event] values.
//
// # Quick Start
//
//	t, err := tty.Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Close()
//
//	vx, err := vaxis.New(
//	    vaxis.WithWriter(t),
//	    vaxis.WithWinsize(t),
//	    vaxis.WithTTYFd(t.Fd()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer vx.Close()
//
//	go func() {
//	    buf := make([]byte, 0, 4096)
//	    chunk := make([]byte, 1024)
//	    for {
//	        n, err := t.Read(chunk)
//	        if err != nil {
//	            return
//	        }
//	        buf = append(buf, chunk[:n]...)
//	        consumed, err := vx.Feed(buf)
//	        if err != nil {
//	            return
//	        }
//	        buf = append(buf[:0], buf[consumed:]...)
//	    }
//	}()
//
//	vx.QueryTerminal(time.Second)
//	vx.EnterAltScreen()
//
//	win := vx.Window()
//	win.Print([]vaxis.Segment{{Text: "Hello, World!"}}, vaxis.PrintOptions{})
//	vx.Render()
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Screen]: the flat cell buffer one frame is composed into
//   - [Window]: a clipped, offset view onto a Screen, with borders, fills,
//     scrolling, and wrap-aware printing
//   - [Cell], [Style], [Color]: the value types a grid position carries
//   - [Parser]: a byte-stream state machine producing Events
//   - [Vaxis]: ties screen, shadow buffer, parser, queue, and capabilities
//     together
//
// # Concurrency
//
// The library is single-threaded cooperative: Screen, Window, and the
// renderer must be owned by one task. The input side typically runs on a
// second goroutine feeding the bounded [EventQueue] that the render task
// drains; the queue is the only internal synchronization point.
//
// # Capabilities
//
// [Vaxis.QueryTerminal] probes the terminal (kitty keyboard and graphics,
// truecolor, SGR-pixel mouse, mode 2027, explicit width, scaled text, color
// scheme updates) and latches what it discovers. Features the terminal did
// not report are never used.
//
// # Environment
//
// The recognized environment variables are TERMUX_VERSION, VHS_RECORD,
// TERM_PROGRAM (vscode), VAXIS_FORCE_LEGACY_SGR, VAXIS_FORCE_WCWIDTH,
// VAXIS_FORCE_UNICODE, and ASCIINEMA_REC. Each either forces the legacy SGR
// policy, pins the width-measuring method, or disables kitty features. They
// are read once, in [New].
package vaxis
