package vaxis

// Window is a bounded view onto a Screen through which applications draw.
// Windows are values: they borrow the Screen for a single frame, are cheap to
// create, and never retain references to their parent.
type Window struct {
	// XOff and YOff are the absolute offsets of the window into the screen.
	XOff int
	YOff int

	// ParentXOff and ParentYOff accumulate negative clip offsets: a child
	// placed above or left of its parent stays clipped to the parent's
	// visible area through these.
	ParentXOff int
	ParentYOff int

	Width  int
	Height int

	screen *Screen
}

// NewWindow creates a window onto screen at the given offset and size, for
// use without a Vaxis instance. Dimensions are clamped to the screen.
func NewWindow(screen *Screen, x, y, width, height int) Window {
	root := Window{Width: screen.width, Height: screen.height, screen: screen}
	if x == 0 && y == 0 && width == screen.width && height == screen.height {
		return root
	}
	return root.Child(ChildOptions{X: x, Y: y, Width: width, Height: height})
}

// Size returns the window dimensions in cells.
func (w Window) Size() (width, height int) {
	return w.Width, w.Height
}

// WriteCell stores cell at the window-relative (col, row). Writes outside the
// window, left or above the screen, or in a parent-clipped region are
// silent no-ops.
func (w Window) WriteCell(col, row int, cell Cell) {
	if col < 0 || row < 0 || col >= w.Width || row >= w.Height {
		return
	}
	if w.XOff+col < 0 || w.YOff+row < 0 {
		return
	}
	if w.ParentXOff+col < 0 || w.ParentYOff+row < 0 {
		return
	}
	w.screen.WriteCell(w.XOff+col, w.YOff+row, cell)
}

// ReadCell returns the cell at the window-relative (col, row). The second
// return value is false outside the window or its clipped region.
func (w Window) ReadCell(col, row int) (Cell, bool) {
	if col < 0 || row < 0 || col >= w.Width || row >= w.Height {
		return Cell{}, false
	}
	if w.ParentXOff+col < 0 || w.ParentYOff+row < 0 {
		return Cell{}, false
	}
	return w.screen.ReadCell(w.XOff+col, w.YOff+row)
}

// Fill sets every cell of the window to cell. Full-width unclipped windows
// fill the contiguous rectangle in one pass; otherwise each row is filled up
// to the screen bounds.
func (w Window) Fill(cell Cell) {
	s := w.screen
	if w.Width == s.width && w.XOff == 0 && w.ParentXOff == 0 && w.ParentYOff == 0 && w.YOff >= 0 {
		r0 := w.YOff
		r1 := w.YOff + w.Height
		if r1 > s.height {
			r1 = s.height
		}
		if r0 >= r1 {
			return
		}
		run := s.buf[r0*s.width : r1*s.width]
		for i := range run {
			run[i] = cell
		}
		return
	}
	for row := 0; row < w.Height; row++ {
		for col := 0; col < w.Width; col++ {
			w.WriteCell(col, row, cell)
		}
	}
}

// Clear resets every cell of the window to the never-written default.
func (w Window) Clear() {
	w.Fill(DefaultCell())
}

// Scroll moves rows [n, Height) up by n rows within the window's column
// range, then clears the bottom n rows. n greater than the window height is a
// no-op.
func (w Window) Scroll(n int) {
	if n <= 0 || n > w.Height {
		return
	}
	for row := n; row < w.Height; row++ {
		for col := 0; col < w.Width; col++ {
			if cell, ok := w.ReadCell(col, row); ok {
				w.WriteCell(col, row-n, cell)
			}
		}
	}
	for row := w.Height - n; row < w.Height; row++ {
		for col := 0; col < w.Width; col++ {
			w.WriteCell(col, row, DefaultCell())
		}
	}
}

// ShowCursor places the visible cursor at the window-relative (col, row).
func (w Window) ShowCursor(col, row int) {
	w.screen.ShowCursor(w.XOff+col, w.YOff+row)
}

// HideCursor hides the cursor.
func (w Window) HideCursor() {
	w.screen.HideCursor()
}

// SetCursorStyle sets the cursor shape.
func (w Window) SetCursorStyle(style CursorStyle) {
	w.screen.SetCursorStyle(style)
}

// HasMouse returns the event translated to window-relative coordinates iff
// its absolute coordinates fall inside the window.
func (w Window) HasMouse(m Mouse) (Mouse, bool) {
	col := m.Col - w.XOff
	row := m.Row - w.YOff
	if col < 0 || row < 0 || col >= w.Width || row >= w.Height {
		return Mouse{}, false
	}
	m.Col = col
	m.Row = row
	return m, true
}

// BorderKind selects the glyph set a child border is drawn with.
type BorderKind uint8

const (
	BorderNone BorderKind = iota
	BorderSingleRounded
	BorderSingleSquare
	// BorderCustom draws with the six glyphs in BorderOptions.Glyphs:
	// top-left, horizontal, top-right, vertical, bottom-right, bottom-left.
	BorderCustom
)

// BorderSide is a bit set of the window edges a border is drawn on.
type BorderSide uint8

const (
	BorderTop BorderSide = 1 << iota
	BorderRight
	BorderBottom
	BorderLeft

	BorderAll = BorderTop | BorderRight | BorderBottom | BorderLeft
)

// BorderOptions configures the border of a child window.
type BorderOptions struct {
	Kind BorderKind
	// Sides selects which edges are drawn. Zero means all sides.
	Sides  BorderSide
	Glyphs [6]string
	Style  Style
}

var borderGlyphs = map[BorderKind][6]string{
	BorderSingleRounded: {"╭", "─", "╮", "│", "╯", "╰"},
	BorderSingleSquare:  {"┌", "─", "┐", "│", "┘", "└"},
}

// ChildOptions configures a child window. Width and Height of 0 expand to the
// parent's residual area.
type ChildOptions struct {
	X      int
	Y      int
	Width  int
	Height int
	Border BorderOptions
}

// Child creates a child window. The child's size is clamped to the parent's
// residual area and negative placement offsets accumulate so content stays
// clipped to the parent. When a border is requested the border is painted on
// the outer ring and the returned window is the inner rectangle, inset one
// cell on each bordered side.
func (w Window) Child(opts ChildOptions) Window {
	width := opts.Width
	if width <= 0 || width > w.Width-opts.X {
		width = w.Width - opts.X
	}
	if width < 0 {
		width = 0
	}
	height := opts.Height
	if height <= 0 || height > w.Height-opts.Y {
		height = w.Height - opts.Y
	}
	if height < 0 {
		height = 0
	}

	px := w.ParentXOff + opts.X
	if px > 0 {
		px = 0
	}
	py := w.ParentYOff + opts.Y
	if py > 0 {
		py = 0
	}

	child := Window{
		XOff:       w.XOff + opts.X,
		YOff:       w.YOff + opts.Y,
		ParentXOff: px,
		ParentYOff: py,
		Width:      width,
		Height:     height,
		screen:     w.screen,
	}

	if opts.Border.Kind == BorderNone {
		return child
	}
	return child.drawBorder(opts.Border)
}

// drawBorder paints the border on the window's outer ring and returns the
// inner rectangle.
func (w Window) drawBorder(opts BorderOptions) Window {
	glyphs, ok := borderGlyphs[opts.Kind]
	if !ok {
		glyphs = opts.Glyphs
	}
	tl, horiz, tr, vert, br, bl := glyphs[0], glyphs[1], glyphs[2], glyphs[3], glyphs[4], glyphs[5]

	sides := opts.Sides
	if sides == 0 {
		sides = BorderAll
	}

	glyph := func(g string) Cell {
		return Cell{
			Character: Character{Grapheme: g, Width: 1},
			Style:     opts.Style,
		}
	}

	if sides&BorderTop != 0 {
		for col := 0; col < w.Width; col++ {
			w.WriteCell(col, 0, glyph(horiz))
		}
	}
	if sides&BorderBottom != 0 {
		for col := 0; col < w.Width; col++ {
			w.WriteCell(col, w.Height-1, glyph(horiz))
		}
	}
	if sides&BorderLeft != 0 {
		for row := 0; row < w.Height; row++ {
			w.WriteCell(0, row, glyph(vert))
		}
	}
	if sides&BorderRight != 0 {
		for row := 0; row < w.Height; row++ {
			w.WriteCell(w.Width-1, row, glyph(vert))
		}
	}
	if sides&BorderTop != 0 && sides&BorderLeft != 0 {
		w.WriteCell(0, 0, glyph(tl))
	}
	if sides&BorderTop != 0 && sides&BorderRight != 0 {
		w.WriteCell(w.Width-1, 0, glyph(tr))
	}
	if sides&BorderBottom != 0 && sides&BorderRight != 0 {
		w.WriteCell(w.Width-1, w.Height-1, glyph(br))
	}
	if sides&BorderBottom != 0 && sides&BorderLeft != 0 {
		w.WriteCell(0, w.Height-1, glyph(bl))
	}

	inset := func(side BorderSide) int {
		if sides&side != 0 {
			return 1
		}
		return 0
	}
	inner := Window{
		XOff:       w.XOff + inset(BorderLeft),
		YOff:       w.YOff + inset(BorderTop),
		ParentXOff: w.ParentXOff,
		ParentYOff: w.ParentYOff,
		Width:      w.Width - inset(BorderLeft) - inset(BorderRight),
		Height:     w.Height - inset(BorderTop) - inset(BorderBottom),
		screen:     w.screen,
	}
	if inner.Width < 0 {
		inner.Width = 0
	}
	if inner.Height < 0 {
		inner.Height = 0
	}
	return inner
}
