package vaxis

import (
	"fmt"
	"strings"
)

// Render diffs the current screen against the shadow of the last frame and
// emits the minimum control-sequence stream that reconciles the terminal,
// bracketed in a synchronized update. Write failures propagate.
func (vx *Vaxis) Render() error {
	vx.renderFrame()
	if err := vx.bw.Flush(); err != nil {
		return err
	}
	if f, ok := vx.writer.(Flusher); ok {
		if err := f.Flush(); err != nil {
			logger.WithError(err).Debug("flush after render")
		}
	}
	return nil
}

func (vx *Vaxis) renderFrame() {
	bw := vx.bw
	screen := vx.screen
	sh := vx.shadow
	w, h := screen.width, screen.height
	if len(screen.buf) != w*h || len(sh.buf) != len(screen.buf) {
		panic("screen and shadow buffers out of agreement")
	}

	prevCursor := sh.cursor

	bw.WriteString(syncSet)
	bw.WriteString(cursorHide)

	// Home: absolute in the alt screen; carriage return plus reverse
	// indexes in the primary screen, where absolute addressing would
	// clobber scrollback.
	if vx.altScreen {
		fmt.Fprintf(bw, cup, 1, 1)
	} else {
		bw.WriteString("\r")
		bw.WriteString(strings.Repeat(reverseIndex, sh.cursor.Row))
	}

	bw.WriteString(sgrReset)
	vx.curStyle = Style{}
	vx.curLink = Hyperlink{}
	if vx.caps.KittyGraphics {
		bw.WriteString(kittyGraphicsDelete)
	}
	for i := range sh.buf {
		sh.buf[i].skip = false
	}

	vx.cursorRow, vx.cursorCol = 0, 0
	reposition := false

	i := 0
	for i < len(screen.buf) {
		col := i % w
		row := i / w
		cell := screen.buf[i]

		cw := cell.Character.Width
		if cw == 0 {
			cw = gwidth(cell.Character.grapheme(), screen.method)
		}
		if cw < 1 {
			cw = 1
		}

		// The tail cells of a wide grapheme are not visited independently
		// this frame; remember that so a later narrow write there forces a
		// repaint.
		for j := 1; j < cw && i+j < len(screen.buf); j++ {
			sh.buf[i+j].skipped = true
		}

		// Coverage is re-marked every frame, even when the scaled parent is
		// unchanged, so the covered rectangle stays untouchable.
		if vx.caps.ScaledText && cell.Scale.factor() > 1 {
			vx.markScaledCovered(cell, col, row, cw)
		}

		if col == 0 && i > 0 && !screen.buf[i-1].Wrapped {
			// New row without auto-wrap from the previous cell.
			reposition = true
		}

		sc := &sh.buf[i]
		if sc.skip {
			// Covered by a scaled glyph: nothing draws here this frame,
			// and the position cannot be trusted next frame.
			sc.grapheme = sc.grapheme[:0]
			sc.def = false
			if vx.curLink.URI != "" {
				bw.WriteString(osc8Clear)
				vx.curLink = Hyperlink{}
			}
			reposition = true
			i += cw
			continue
		}
		if !vx.refresh && !sc.skipped && cell.Image == nil && sc.eql(cell) {
			if vx.curLink.URI != "" {
				bw.WriteString(osc8Clear)
				vx.curLink = Hyperlink{}
			}
			reposition = true
			i += cw
			continue
		}

		sc.set(cell)
		sc.skipped = false

		if reposition {
			vx.moveTo(row, col)
			reposition = false
		}

		if cell.Image != nil {
			bw.WriteString(cell.Image.seq())
		}

		vx.applyStyle(cell.Style)
		vx.applyLink(cell.Link)
		vx.writeGrapheme(cell, cw)

		vx.cursorRow = row
		vx.cursorCol = col + cw
		i += cw
	}

	if screen.cursor.Visible {
		vx.moveTo(screen.cursor.Row, screen.cursor.Col)
		bw.WriteString(cursorShow)
		sh.cursor = screen.cursor
	} else {
		sh.cursor = screen.cursor
		sh.cursor.Row = vx.cursorRow
		sh.cursor.Col = vx.cursorCol
	}

	if screen.mouse != sh.mouse {
		fmt.Fprintf(bw, osc22, screen.mouse)
		sh.mouse = screen.mouse
	}
	if screen.cursor.Style != prevCursor.Style {
		fmt.Fprintf(bw, decscusr, int(screen.cursor.Style))
	}

	bw.WriteString(syncReset)
	vx.refresh = false
}

// markScaledCovered flags the shadow cells a scaled glyph paints over so they
// are not independently drawn this frame.
func (vx *Vaxis) markScaledCovered(cell Cell, col, row, cw int) {
	sh := vx.shadow
	factor := cell.Scale.factor()
	for r := row; r < row+factor && r < sh.height; r++ {
		for c := col; c < col+factor*cw && c < sh.width; c++ {
			if r == row && c == col {
				continue
			}
			sh.buf[r*sh.width+c].skip = true
		}
	}
}

// moveTo repositions the terminal cursor from the tracked position. The alt
// screen uses absolute addressing; the primary screen uses relative motion
// so scrollback stays intact.
func (vx *Vaxis) moveTo(row, col int) {
	bw := vx.bw
	if vx.altScreen {
		fmt.Fprintf(bw, cup, row+1, col+1)
		vx.cursorRow, vx.cursorCol = row, col
		return
	}
	switch {
	case row == vx.cursorRow:
		switch {
		case col == vx.cursorCol:
			return
		case col > vx.cursorCol:
			fmt.Fprintf(bw, cuf, col-vx.cursorCol)
		default:
			bw.WriteString("\r")
			if col > 0 {
				fmt.Fprintf(bw, cuf, col)
			}
		}
	case row > vx.cursorRow:
		bw.WriteString(strings.Repeat("\n", row-vx.cursorRow))
		bw.WriteString("\r")
		if col > 0 {
			fmt.Fprintf(bw, cuf, col)
		}
	default:
		bw.WriteString(strings.Repeat(reverseIndex, vx.cursorRow-row))
		bw.WriteString("\r")
		if col > 0 {
			fmt.Fprintf(bw, cuf, col)
		}
	}
	vx.cursorRow, vx.cursorCol = row, col
}

// underlineSeq returns the SGR sequence selecting the underline shape. The
// legacy form cannot express curly, dotted, or dashed and falls back to a
// single underline.
func underlineSeq(u UnderlineStyle, legacy bool) string {
	if legacy {
		switch u {
		case UnderlineOff:
			return "\x1b[24m"
		case UnderlineDouble:
			return "\x1b[21m"
		default:
			return "\x1b[4m"
		}
	}
	switch u {
	case UnderlineOff:
		return "\x1b[24m"
	case UnderlineSingle:
		return "\x1b[4m"
	case UnderlineDouble:
		return "\x1b[4:2m"
	case UnderlineCurly:
		return "\x1b[4:3m"
	case UnderlineDotted:
		return "\x1b[4:4m"
	default:
		return "\x1b[4:5m"
	}
}

// applyStyle emits the exact changes taking the tracked style to st: each
// axis is compared independently, so changing the foreground never resets
// the background.
func (vx *Vaxis) applyStyle(st Style) {
	bw := vx.bw
	cur := &vx.curStyle
	if !vx.caps.RGB {
		st.Foreground = st.Foreground.downsample()
		st.Background = st.Background.downsample()
		st.UnderlineColor = st.UnderlineColor.downsample()
	}
	if st.Foreground != cur.Foreground {
		bw.WriteString(st.Foreground.fgSeq(vx.sgrLegacy))
		cur.Foreground = st.Foreground
	}
	if st.Background != cur.Background {
		bw.WriteString(st.Background.bgSeq(vx.sgrLegacy))
		cur.Background = st.Background
	}
	if st.UnderlineColor != cur.UnderlineColor {
		bw.WriteString(st.UnderlineColor.ulSeq(vx.sgrLegacy))
		cur.UnderlineColor = st.UnderlineColor
	}
	if st.UnderlineStyle != cur.UnderlineStyle {
		bw.WriteString(underlineSeq(st.UnderlineStyle, vx.sgrLegacy))
		cur.UnderlineStyle = st.UnderlineStyle
	}
	if st.Attrs != cur.Attrs {
		vx.applyAttrs(cur.Attrs, st.Attrs)
		cur.Attrs = st.Attrs
	}
}

// applyAttrs emits the transitions from one attribute set to another. Bold
// and dim share the 22 reset, so dropping either re-asserts the survivor.
func (vx *Vaxis) applyAttrs(from, to AttrMask) {
	bw := vx.bw
	boldOff := from.Has(AttrBold) && !to.Has(AttrBold)
	dimOff := from.Has(AttrDim) && !to.Has(AttrDim)
	if boldOff || dimOff {
		bw.WriteString("\x1b[22m")
		if to.Has(AttrBold) {
			bw.WriteString("\x1b[1m")
		}
		if to.Has(AttrDim) {
			bw.WriteString("\x1b[2m")
		}
	} else {
		if to.Has(AttrBold) && !from.Has(AttrBold) {
			bw.WriteString("\x1b[1m")
		}
		if to.Has(AttrDim) && !from.Has(AttrDim) {
			bw.WriteString("\x1b[2m")
		}
	}
	pairs := []struct {
		attr     AttrMask
		on, off  string
	}{
		{AttrItalic, "\x1b[3m", "\x1b[23m"},
		{AttrBlink, "\x1b[5m", "\x1b[25m"},
		{AttrReverse, "\x1b[7m", "\x1b[27m"},
		{AttrInvisible, "\x1b[8m", "\x1b[28m"},
		{AttrStrikethrough, "\x1b[9m", "\x1b[29m"},
	}
	for _, p := range pairs {
		switch {
		case to.Has(p.attr) && !from.Has(p.attr):
			bw.WriteString(p.on)
		case !to.Has(p.attr) && from.Has(p.attr):
			bw.WriteString(p.off)
		}
	}
}

// applyLink emits OSC 8 when the hyperlink changes. An empty URI clears the
// link and drops the params with it.
func (vx *Vaxis) applyLink(l Hyperlink) {
	if l.URI == "" {
		l.Params = ""
	}
	if l == vx.curLink {
		return
	}
	if l.URI == "" {
		vx.bw.WriteString(osc8Clear)
	} else {
		fmt.Fprintf(vx.bw, osc8, l.Params, l.URI)
	}
	vx.curLink = l
}

// writeGrapheme emits the cell's grapheme, wrapped in the scaled-text or
// explicit-width form when the terminal supports them.
func (vx *Vaxis) writeGrapheme(cell Cell, cw int) {
	g := cell.Character.grapheme()
	if vx.caps.ScaledText && cell.Scale.factor() > 1 {
		var meta strings.Builder
		fmt.Fprintf(&meta, "s=%d", cell.Scale.factor())
		if cell.Scale.Numerator > 0 {
			fmt.Fprintf(&meta, ":n=%d:d=%d", cell.Scale.Numerator, cell.Scale.denominator())
		}
		if cell.Scale.Align != VerticalAlignTop {
			fmt.Fprintf(&meta, ":v=%d", cell.Scale.Align)
		}
		fmt.Fprintf(vx.bw, "\x1b]66;%s;%s\x1b\\", meta.String(), g)
		return
	}
	if vx.caps.ExplicitWidth && cw > 1 {
		fmt.Fprintf(vx.bw, explicitWidthFmt, cw, g)
		return
	}
	vx.bw.WriteString(g)
}

// PrettyPrint streams the screen's non-default cells to the writer as styled
// text for the primary screen: no alternate-screen controls, no display
// state tracking, a CRLF after every row. Useful for leaving styled output
// in scrollback.
func (vx *Vaxis) PrettyPrint(screen *Screen) error {
	bw := vx.bw
	savedStyle, savedLink := vx.curStyle, vx.curLink
	vx.curStyle = Style{}
	vx.curLink = Hyperlink{}
	defer func() {
		vx.curStyle, vx.curLink = savedStyle, savedLink
	}()

	for row := 0; row < screen.height; row++ {
		last := -1
		for col := 0; col < screen.width; col++ {
			if !screen.buf[row*screen.width+col].Default {
				last = col
			}
		}
		for col := 0; col <= last; {
			cell := screen.buf[row*screen.width+col]
			if cell.Default {
				vx.applyStyle(Style{})
				vx.applyLink(Hyperlink{})
				bw.WriteString(" ")
				col++
				continue
			}
			cw := cell.Character.Width
			if cw == 0 {
				cw = gwidth(cell.Character.grapheme(), screen.method)
			}
			if cw < 1 {
				cw = 1
			}
			vx.applyStyle(cell.Style)
			vx.applyLink(cell.Link)
			vx.writeGrapheme(cell, cw)
			col += cw
		}
		vx.applyStyle(Style{})
		vx.applyLink(Hyperlink{})
		bw.WriteString("\r\n")
	}
	return bw.Flush()
}
