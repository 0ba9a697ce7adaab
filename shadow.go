package vaxis

// shadowCell is the owned-string variant of Cell kept in the last-rendered
// buffer. Its byte buffers are reused in place when overwritten so steady
// rendering does not allocate.
type shadowCell struct {
	grapheme []byte
	uri      []byte
	params   []byte
	style    Style

	// def mirrors Cell.Default: true until a non-default cell is written.
	def bool

	// skipped is true when this position is the tail of a wide cell and its
	// contents must not be independently trusted for equality.
	skipped bool

	// skip is true when a scaled parent cell covers this position this
	// frame and it must not be drawn on its own.
	skip bool
}

// set overwrites the shadow cell to match c, copying the grapheme, uri, and
// params bytes into the cell's own buffers.
func (sc *shadowCell) set(c Cell) {
	sc.grapheme = append(sc.grapheme[:0], c.Character.grapheme()...)
	sc.uri = append(sc.uri[:0], c.Link.URI...)
	sc.params = append(sc.params[:0], c.Link.Params...)
	sc.style = c.Style
	sc.def = c.Default
}

// eql reports whether the shadow cell matches c. Two default cells are always
// equal; otherwise the grapheme bytes, style, uri, and params must all match.
func (sc *shadowCell) eql(c Cell) bool {
	if sc.def && c.Default {
		return true
	}
	return string(sc.grapheme) == c.Character.grapheme() &&
		sc.style == c.Style &&
		string(sc.uri) == c.Link.URI &&
		string(sc.params) == c.Link.Params
}

// shadow remembers exactly what was last emitted to the terminal: an
// owned-string copy of the rendered screen plus the cursor and mouse state
// that went with it. The renderer diffs the next Screen against it.
type shadow struct {
	width  int
	height int
	buf    []shadowCell

	cursor Cursor
	mouse  MouseShape
}

// newShadow creates a shadow buffer of w by h default cells.
func newShadow(w, h int) *shadow {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	sh := &shadow{
		width:  w,
		height: h,
		buf:    make([]shadowCell, w*h),
		mouse:  MouseShapeDefault,
	}
	for i := range sh.buf {
		sh.buf[i].def = true
	}
	return sh
}

// writeCell stores cell at (col, row), copying its strings. Out-of-range
// writes are no-ops.
func (sh *shadow) writeCell(col, row int, cell Cell) {
	if col < 0 || row < 0 || col >= sh.width || row >= sh.height {
		return
	}
	sh.buf[row*sh.width+col].set(cell)
}

// readCell returns the shadow cell at (col, row), or nil when out of range.
func (sh *shadow) readCell(col, row int) *shadowCell {
	if col < 0 || row < 0 || col >= sh.width || row >= sh.height {
		return nil
	}
	return &sh.buf[row*sh.width+col]
}
