package vaxis

// Screen is the frame being composed: a flat row-major buffer of cells sized
// to the terminal, plus the cursor and mouse state that render with it.
// Applications draw into it through Windows. A Screen is created at the
// current terminal size and replaced wholesale on resize.
type Screen struct {
	width  int
	height int

	// Pixel dimensions as reported by the terminal when the screen was
	// created.
	widthPix  int
	heightPix int

	// buf holds width*height cells indexed row*width+col.
	buf []Cell

	cursor Cursor
	mouse  MouseShape

	// method is the width-measuring policy the renderer applies to cells
	// without a precomputed width.
	method Method
}

// NewScreen creates a screen of w by h cells. All cells initialize to the
// never-written default.
func NewScreen(w, h int) *Screen {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s := &Screen{
		width:  w,
		height: h,
		buf:    make([]Cell, w*h),
		mouse:  MouseShapeDefault,
	}
	for i := range s.buf {
		s.buf[i] = DefaultCell()
	}
	return s
}

// Size returns the screen dimensions in cells.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// WriteCell stores cell at (col, row). Out-of-range writes are no-ops.
func (s *Screen) WriteCell(col, row int, cell Cell) {
	if col < 0 || row < 0 || col >= s.width || row >= s.height {
		return
	}
	s.buf[row*s.width+col] = cell
}

// ReadCell returns the cell at (col, row). The second return value is false
// when the coordinates are out of range.
func (s *Screen) ReadCell(col, row int) (Cell, bool) {
	if col < 0 || row < 0 || col >= s.width || row >= s.height {
		return Cell{}, false
	}
	return s.buf[row*s.width+col], true
}

// ShowCursor makes the cursor visible at (col, row).
func (s *Screen) ShowCursor(col, row int) {
	s.cursor.Col = col
	s.cursor.Row = row
	s.cursor.Visible = true
}

// HideCursor hides the cursor for the next render.
func (s *Screen) HideCursor() {
	s.cursor.Visible = false
}

// SetCursorStyle sets the cursor shape for the next render.
func (s *Screen) SetCursorStyle(style CursorStyle) {
	s.cursor.Style = style
}

// SetMouseShape sets the pointer shape for the next render.
func (s *Screen) SetMouseShape(shape MouseShape) {
	s.mouse = shape
}
