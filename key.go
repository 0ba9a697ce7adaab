package vaxis

// ModifierMask is a bit set of the modifiers held during a key event, using
// the kitty keyboard protocol bit assignments.
type ModifierMask uint8

const (
	ModShift ModifierMask = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
	ModHyper
	ModMeta
	ModCapsLock
	ModNumLock
)

// Has returns true if the specified modifier is set.
func (m ModifierMask) Has(mod ModifierMask) bool {
	return m&mod != 0
}

// Key is a single key event. Codepoint is the unicode codepoint of the key,
// which exceeds the Unicode range for named keys without a character.
//
// Text is borrowed from the parser's grapheme cache and is only valid until
// the parser produces further events; copy it to retain it.
type Key struct {
	Codepoint rune
	Text      []byte

	// ShiftedCodepoint is the codepoint with the shift modifier applied, if
	// the terminal reported one.
	ShiftedCodepoint rune

	// BaseLayoutCodepoint is the codepoint of the key in the standard PC-101
	// layout, if the terminal reported one.
	BaseLayoutCodepoint rune

	Mods ModifierMask
}

// Matches reports whether the key matches the given codepoint and exact
// modifier set, ignoring the lock modifiers. The shifted and base-layout
// codepoints are consulted as fallbacks.
func (k Key) Matches(cp rune, mods ModifierMask) bool {
	have := k.Mods &^ (ModCapsLock | ModNumLock)
	if have != mods {
		return false
	}
	return k.Codepoint == cp || k.ShiftedCodepoint == cp || k.BaseLayoutCodepoint == cp
}

// Named keys with a kitty functional codepoint, assigned in the Unicode
// private use area per the kitty keyboard protocol. Keys the legacy encodings
// also carry (Escape, Enter, Tab, Backspace) keep their C0 values.
const (
	KeyEscape    rune = 0x1b
	KeyEnter     rune = 0x0d
	KeyTab       rune = 0x09
	KeyBackspace rune = 0x7f

	KeyCapsLock    rune = 57358
	KeyScrollLock  rune = 57359
	KeyNumLock     rune = 57360
	KeyPrintScreen rune = 57361
	KeyPause       rune = 57362
	KeyMenu        rune = 57363
)

// Extended function keys, in the kitty private use block.
const (
	KeyF13 rune = 57376 + iota
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyF25
	KeyF26
	KeyF27
	KeyF28
	KeyF29
	KeyF30
	KeyF31
	KeyF32
	KeyF33
	KeyF34
	KeyF35
)

// Keypad and modifier keys, also in the kitty private use block.
const (
	KeyKp0 rune = 57399 + iota
	KeyKp1
	KeyKp2
	KeyKp3
	KeyKp4
	KeyKp5
	KeyKp6
	KeyKp7
	KeyKp8
	KeyKp9
	KeyKpDecimal
	KeyKpDivide
	KeyKpMultiply
	KeyKpSubtract
	KeyKpAdd
	KeyKpEnter
	KeyKpEqual
	KeyKpSeparator
	KeyKpLeft
	KeyKpRight
	KeyKpUp
	KeyKpDown
	KeyKpPgUp
	KeyKpPgDown
	KeyKpHome
	KeyKpEnd
	KeyKpInsert
	KeyKpDelete
	KeyKpBegin

	KeyMediaPlay
	KeyMediaPause
	KeyMediaPlayPause
	KeyMediaReverse
	KeyMediaStop
	KeyMediaFastForward
	KeyMediaRewind
	KeyMediaTrackNext
	KeyMediaTrackPrevious
	KeyMediaRecord
	KeyVolumeDown
	KeyVolumeUp
	KeyVolumeMute

	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyLeftHyper
	KeyLeftMeta
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper
	KeyRightHyper
	KeyRightMeta
	KeyIsoLevel3Shift
	KeyIsoLevel5Shift
)

// Named keys the kitty protocol leaves to legacy encodings. They have no
// codepoint of their own and are assigned values above the Unicode range.
const (
	KeyUp rune = 0x110000 + iota
	KeyRight
	KeyDown
	KeyLeft
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyMulticodepoint marks a key whose grapheme requires more than one
	// codepoint; the full cluster is in Key.Text.
	KeyMulticodepoint
)
