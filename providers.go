package vaxis

import "io"

// Writer is the byte sink the renderer emits frames to. Any io.Writer works;
// sinks that also implement Flusher are flushed at the end of each frame.
// The renderer performs best with at least 4 KiB of buffering.
type Writer = io.Writer

// Flusher is the optional flush half of the writer contract.
type Flusher interface {
	Flush() error
}

// NoopWriter discards all output (useful for measuring without a terminal).
type NoopWriter struct{}

func (NoopWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// --- Winsize Provider ---

// WinsizeProvider reports the terminal size and notifies on changes. The tty
// subpackage carries the POSIX implementation.
type WinsizeProvider interface {
	// Winsize returns the current size of the terminal on fd.
	Winsize(fd int) (Winsize, error)
	// Subscribe registers a callback invoked whenever the size changes.
	Subscribe(fn func())
}

// NoopWinsize reports a fixed 80x24 terminal and never notifies.
type NoopWinsize struct{}

func (NoopWinsize) Winsize(fd int) (Winsize, error) {
	return Winsize{Rows: 24, Cols: 80}, nil
}

func (NoopWinsize) Subscribe(fn func()) {}

// --- Clipboard Provider ---

// ClipboardProvider handles clipboard read/write operations (OSC 52).
type ClipboardProvider interface {
	// Read returns content from the specified clipboard ('c' for clipboard, 'p' for primary selection).
	Read(clipboard byte) string
	// Write stores content to the specified clipboard.
	Write(clipboard byte, data []byte)
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string       { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// Ensure implementations satisfy their interfaces
var _ Writer = NoopWriter{}
var _ WinsizeProvider = NoopWinsize{}
var _ ClipboardProvider = NoopClipboard{}
