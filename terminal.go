package vaxis

import (
	"encoding/base64"
	"fmt"
)

// Terminal commands outside the diff loop: alternate screen, title,
// notifications, clipboard, colors, and input modes. Each emits its sequence
// immediately and flushes.

// EnterAltScreen switches to the alternate screen buffer. The next render
// repaints everything with absolute positioning.
func (vx *Vaxis) EnterAltScreen() error {
	if vx.altScreen {
		return nil
	}
	vx.bw.WriteString(smcup)
	vx.altScreen = true
	vx.refresh = true
	return vx.bw.Flush()
}

// ExitAltScreen returns to the primary screen buffer.
func (vx *Vaxis) ExitAltScreen() error {
	if !vx.altScreen {
		return nil
	}
	vx.bw.WriteString(rmcup)
	vx.altScreen = false
	vx.refresh = true
	return vx.bw.Flush()
}

// SetTitle sets the terminal window title (OSC 2).
func (vx *Vaxis) SetTitle(title string) error {
	fmt.Fprintf(vx.bw, osc2Title, title)
	return vx.bw.Flush()
}

// Notify posts a desktop notification through both OSC 9 and OSC 777.
func (vx *Vaxis) Notify(title, body string) error {
	fmt.Fprintf(vx.bw, osc9Notify, body)
	fmt.Fprintf(vx.bw, osc777, title, body)
	return vx.bw.Flush()
}

// SetWorkingDirectory reports the working directory to the terminal (OSC 7).
// uri must be a file: URI.
func (vx *Vaxis) SetWorkingDirectory(uri string) error {
	fmt.Fprintf(vx.bw, osc7CWD, uri)
	return vx.bw.Flush()
}

// CopyToClipboard places data on the system clipboard via OSC 52 and the
// configured clipboard provider.
func (vx *Vaxis) CopyToClipboard(data []byte) error {
	vx.clipboard.Write('c', data)
	fmt.Fprintf(vx.bw, osc52Put, base64.StdEncoding.EncodeToString(data))
	return vx.bw.Flush()
}

// RequestClipboard asks the terminal for its clipboard contents via OSC 52.
// The payload arrives as a Paste event.
func (vx *Vaxis) RequestClipboard() error {
	vx.bw.WriteString(osc52Query)
	return vx.bw.Flush()
}

// ReadClipboard returns the local clipboard provider's contents. It fails
// with ErrClipboardNotSupported when no provider was configured; callers
// should check for it and fall back to RequestClipboard.
func (vx *Vaxis) ReadClipboard() (string, error) {
	if _, ok := vx.clipboard.(NoopClipboard); ok {
		return "", ErrClipboardNotSupported
	}
	return vx.clipboard.Read('c'), nil
}

// SetMouseMode enables or disables mouse reporting, preferring the
// pixel-precise encoding when the terminal supports it.
func (vx *Vaxis) SetMouseMode(enable bool) error {
	switch {
	case enable && vx.caps.SGRPixels:
		vx.bw.WriteString(mouseSetPx)
	case enable:
		vx.bw.WriteString(mouseSet)
	default:
		vx.bw.WriteString(mouseReset)
	}
	vx.mouseActive = enable
	return vx.bw.Flush()
}

// SetBracketedPaste enables or disables bracketed paste mode.
func (vx *Vaxis) SetBracketedPaste(enable bool) error {
	if enable {
		vx.bw.WriteString(pasteSet)
	} else {
		vx.bw.WriteString(pasteReset)
	}
	return vx.bw.Flush()
}

// SetTerminalForeground sets the terminal's default foreground color
// (OSC 10).
func (vx *Vaxis) SetTerminalForeground(r, g, b uint8) error {
	fmt.Fprintf(vx.bw, osc10Set, r, g, b)
	return vx.bw.Flush()
}

// SetTerminalBackground sets the terminal's default background color
// (OSC 11).
func (vx *Vaxis) SetTerminalBackground(r, g, b uint8) error {
	fmt.Fprintf(vx.bw, osc11Set, r, g, b)
	return vx.bw.Flush()
}

// SetTerminalCursorColor sets the terminal's cursor color (OSC 12).
func (vx *Vaxis) SetTerminalCursorColor(r, g, b uint8) error {
	fmt.Fprintf(vx.bw, osc12Set, r, g, b)
	return vx.bw.Flush()
}

// SetPaletteColor redefines palette entry index (OSC 4).
func (vx *Vaxis) SetPaletteColor(index uint8, r, g, b uint8) error {
	fmt.Fprintf(vx.bw, osc4Set, index, r, g, b)
	return vx.bw.Flush()
}

// QueryColor asks the terminal for one of its colors. The answer arrives as
// a ColorReport event.
func (vx *Vaxis) QueryColor(source ColorSource, index uint8) error {
	switch source {
	case ColorSourcePalette:
		fmt.Fprintf(vx.bw, osc4Query, index)
	case ColorSourceForeground:
		vx.bw.WriteString(osc10Query)
	case ColorSourceBackground:
		vx.bw.WriteString(osc11Query)
	case ColorSourceCursor:
		vx.bw.WriteString(osc12Query)
	}
	return vx.bw.Flush()
}

// QueryColorScheme asks for the terminal's light/dark preference. The answer
// arrives as a ColorScheme event.
func (vx *Vaxis) QueryColorScheme() error {
	vx.bw.WriteString(colorSchemeQuery)
	return vx.bw.Flush()
}

// ResetColors restores the terminal's default palette, foreground,
// background, and cursor colors.
func (vx *Vaxis) ResetColors() error {
	for i := 0; i < 256; i++ {
		fmt.Fprintf(vx.bw, osc104Reset, i)
	}
	vx.bw.WriteString(osc110Reset)
	vx.bw.WriteString(osc111Reset)
	vx.bw.WriteString(osc112Reset)
	return vx.bw.Flush()
}
