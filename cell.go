package vaxis

// Character is a single grapheme cluster plus an optional precomputed display
// width. A zero width means the width is measured at render time.
type Character struct {
	Grapheme string
	Width    int
}

// grapheme returns the cluster bytes, substituting a space for the empty
// string so a zero-value Cell renders as a blank.
func (c Character) grapheme() string {
	if c.Grapheme == "" {
		return " "
	}
	return c.Grapheme
}

// Hyperlink associates a cell with an OSC 8 hyperlink. An empty URI disables
// the link on the cell. Params carries the optional key=value id parameters.
type Hyperlink struct {
	URI    string
	Params string
}

// VerticalAlign positions a scaled glyph within its covered rows.
type VerticalAlign uint8

const (
	VerticalAlignTop VerticalAlign = iota
	VerticalAlignCenter
	VerticalAlignBottom
)

// Scale describes text scaling for a cell. The zero value means no scaling
// (factor 1, denominator 1).
type Scale struct {
	// Scale is the integer magnification factor. Values below 1 are treated
	// as 1.
	Scale int
	// Numerator and Denominator select a fraction of the scaled glyph for
	// fractional scaling. A zero Numerator disables fractional scaling and
	// the Denominator is then ignored; a zero Denominator is treated as 1.
	Numerator   int
	Denominator int
	Align       VerticalAlign
}

// factor returns the effective scale factor, never below 1.
func (s Scale) factor() int {
	if s.Scale < 1 {
		return 1
	}
	return s.Scale
}

// denominator returns the effective denominator, never below 1.
func (s Scale) denominator() int {
	if s.Denominator < 1 {
		return 1
	}
	return s.Denominator
}

// Cell is the value stored at one grid position: a grapheme, its style and
// hyperlink, an optional image placement, and scaling. The zero value renders
// as a space in the default style.
type Cell struct {
	Character Character
	Style     Style
	Link      Hyperlink
	Image     *Placement
	Scale     Scale

	// Default marks a cell that has never been written since the last
	// reset. Two default cells always compare equal regardless of their
	// other fields.
	Default bool

	// Wrapped marks the last column of a line that continued onto the next
	// row via terminal auto-wrap.
	Wrapped bool
}

// DefaultCell returns a cell carrying the never-written marker.
func DefaultCell() Cell {
	return Cell{Default: true}
}
