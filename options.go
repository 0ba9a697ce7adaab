package vaxis

import "os"

// Capabilities records what the attached terminal reported during capability
// discovery. Fields latch to true as reports arrive and parameterize the
// renderer and parser.
type Capabilities struct {
	KittyKeyboard      bool
	KittyKeyboardFlags int
	KittyGraphics      bool
	RGB                bool
	SGRPixels          bool
	Unicode            bool
	ColorSchemeUpdates bool
	ExplicitWidth      bool
	ScaledText         bool
}

// Option configures a Vaxis during construction.
type Option func(*Vaxis)

// WithWriter sets the byte sink frames are rendered to. If not set, output is
// discarded.
func WithWriter(w Writer) Option {
	return func(vx *Vaxis) {
		vx.writer = w
	}
}

// WithWinsize sets the provider used to size the screen and watch for
// resizes. Defaults to a fixed 80x24.
func WithWinsize(p WinsizeProvider) Option {
	return func(vx *Vaxis) {
		vx.winsizeProvider = p
	}
}

// WithTTYFd sets the file descriptor handed to the winsize provider.
func WithTTYFd(fd int) Option {
	return func(vx *Vaxis) {
		vx.ttyFd = fd
	}
}

// WithClipboard sets the local clipboard fallback used alongside OSC 52.
// Defaults to a no-op.
func WithClipboard(p ClipboardProvider) Option {
	return func(vx *Vaxis) {
		vx.clipboard = p
	}
}

// WithKittyKeyboardFlags sets the progressive enhancement flags pushed when
// the terminal reports kitty keyboard support. Defaults to 1 (disambiguate
// escape codes).
func WithKittyKeyboardFlags(flags int) Option {
	return func(vx *Vaxis) {
		vx.kittyFlags = flags
	}
}

// WithoutKittyKeyboard leaves the kitty keyboard protocol unused even when
// the terminal supports it.
func WithoutKittyKeyboard() Option {
	return func(vx *Vaxis) {
		vx.noKitty = true
	}
}

// applyEnvOverrides reads the recognized environment variables. Each either
// forces the legacy SGR policy, pins the width-measuring method, or disables
// kitty features. No other environment access happens in the library.
func (vx *Vaxis) applyEnvOverrides() {
	if os.Getenv("VAXIS_FORCE_LEGACY_SGR") != "" {
		vx.sgrLegacy = true
	}
	if os.Getenv("VAXIS_FORCE_WCWIDTH") != "" {
		vx.method = MethodWcwidth
		vx.methodForced = true
	}
	if os.Getenv("VAXIS_FORCE_UNICODE") != "" {
		vx.method = MethodUnicode
		vx.methodForced = true
	}
	if os.Getenv("TERMUX_VERSION") != "" {
		// Termux mishandles colon subparameters.
		vx.sgrLegacy = true
	}
	if os.Getenv("TERM_PROGRAM") == "vscode" {
		vx.sgrLegacy = true
	}
	if os.Getenv("VHS_RECORD") != "" {
		vx.noKitty = true
	}
	if os.Getenv("ASCIINEMA_REC") != "" {
		vx.noKitty = true
	}
}
