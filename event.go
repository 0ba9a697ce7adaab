package vaxis

// Event is a typed occurrence decoded from the terminal byte stream or raised
// by the library itself: key and mouse input, focus changes, paste payloads,
// reports, window sizes, and capability discoveries.
type Event interface {
	isEvent()
}

// KeyPress is delivered when a key is pressed, or repeats.
type KeyPress Key

// KeyRelease is delivered when a key is released. Only terminals with the
// kitty keyboard protocol report releases.
type KeyRelease Key

// FocusIn is delivered when the terminal window gains focus.
type FocusIn struct{}

// FocusOut is delivered when the terminal window loses focus.
type FocusOut struct{}

// PasteStart marks the beginning of a bracketed paste. The pasted content
// arrives as key events until PasteEnd.
type PasteStart struct{}

// PasteEnd marks the end of a bracketed paste.
type PasteEnd struct{}

// Paste carries a complete paste payload delivered out-of-band via OSC 52.
type Paste []byte

// ColorSource identifies which terminal color an OSC color report describes.
type ColorSource uint8

const (
	// ColorSourcePalette reports a palette entry (OSC 4); Index is valid.
	ColorSourcePalette ColorSource = iota
	// ColorSourceForeground reports the default foreground (OSC 10).
	ColorSourceForeground
	// ColorSourceBackground reports the default background (OSC 11).
	ColorSourceBackground
	// ColorSourceCursor reports the cursor color (OSC 12).
	ColorSourceCursor
)

// ColorReport is the response to an OSC 4/10/11/12 color query.
type ColorReport struct {
	Source ColorSource
	Index  uint8
	Color  Color
}

// ColorScheme reports the terminal's light or dark preference, either from a
// DSR 997 query or a mode 2031 update.
type ColorScheme uint8

const (
	ColorSchemeDark ColorScheme = iota
	ColorSchemeLight
)

// Winsize reports the terminal dimensions, from the winsize provider or from
// an in-band resize report.
type Winsize struct {
	Rows   int
	Cols   int
	XPixel int
	YPixel int
}

// Capability discovery events, delivered while a terminal query is in
// flight. CapDA1 terminates a query bundle.
type (
	// CapKittyKeyboard reports kitty keyboard protocol support with the
	// terminal's advertised flags.
	CapKittyKeyboard struct {
		Flags int
	}
	// CapKittyGraphics reports kitty graphics protocol support.
	CapKittyGraphics struct{}
	// CapRGB reports truecolor support.
	CapRGB struct{}
	// CapSGRPixels reports SGR-pixel mouse mode support.
	CapSGRPixels struct{}
	// CapUnicode reports mode 2027 grapheme clustering support.
	CapUnicode struct{}
	// CapColorSchemeUpdates reports mode 2031 support.
	CapColorSchemeUpdates struct{}
	// CapExplicitWidth reports explicit-width (OSC 66 w=) support.
	CapExplicitWidth struct{}
	// CapScaledText reports scaled-text (OSC 66 s=) support.
	CapScaledText struct{}
	// CapDA1 is the primary device attributes response, the terminator of a
	// capability query bundle.
	CapDA1 struct{}
)

func (KeyPress) isEvent()              {}
func (KeyRelease) isEvent()            {}
func (Mouse) isEvent()                 {}
func (FocusIn) isEvent()               {}
func (FocusOut) isEvent()              {}
func (PasteStart) isEvent()            {}
func (PasteEnd) isEvent()              {}
func (Paste) isEvent()                 {}
func (ColorReport) isEvent()           {}
func (ColorScheme) isEvent()           {}
func (Winsize) isEvent()               {}
func (CapKittyKeyboard) isEvent()      {}
func (CapKittyGraphics) isEvent()      {}
func (CapRGB) isEvent()                {}
func (CapSGRPixels) isEvent()          {}
func (CapUnicode) isEvent()            {}
func (CapColorSchemeUpdates) isEvent() {}
func (CapExplicitWidth) isEvent()      {}
func (CapScaledText) isEvent()         {}
func (CapDA1) isEvent()                {}

// EventFilter inspects an event before it is queued. Returning nil drops the
// event; returning a different event replaces it.
type EventFilter func(Event) Event
