package vaxis

// WrapStyle selects how Print flows text within a window.
type WrapStyle uint8

const (
	// WrapGrapheme advances grapheme by grapheme, wrapping mid-word at the
	// window edge.
	WrapGrapheme WrapStyle = iota
	// WrapWord wraps whole words to the next row when they fit the window
	// width, breaking only words wider than the window.
	WrapWord
	// WrapNone prints a single row, stopping at the window edge or the
	// first newline.
	WrapNone
)

// Segment is a run of text sharing one style and hyperlink.
type Segment struct {
	Text  string
	Style Style
	Link  Hyperlink
}

// PrintOptions configures a Print call.
type PrintOptions struct {
	// Col and Row are the window-relative starting position.
	Col int
	Row int

	Wrap WrapStyle

	// MeasureOnly computes the result without writing any cell. The result
	// is identical to what a committing call would return.
	MeasureOnly bool
}

// PrintResult reports where printing stopped.
type PrintResult struct {
	Col int
	Row int
	// Overflow is true when the output did not fit within the window
	// height (or width, for WrapNone).
	Overflow bool
}

// Print writes styled text segments into the window using the selected wrap
// strategy. Graphemes with zero width are skipped. Under WrapGrapheme and
// WrapWord a literal newline advances a row; under WrapNone it ends printing.
func (w Window) Print(segments []Segment, opts PrintOptions) PrintResult {
	p := &printer{
		win:     w,
		commit:  !opts.MeasureOnly,
		col:     opts.Col,
		row:     opts.Row,
		lastCol: -1,
		lastRow: -1,
		method:  w.screen.method,
	}
	switch opts.Wrap {
	case WrapWord:
		p.printWord(segments)
	case WrapNone:
		p.printNone(segments)
	default:
		p.printGrapheme(segments)
	}
	return PrintResult{Col: p.col, Row: p.row, Overflow: p.overflow}
}

// printer tracks the cursor state of one Print call.
type printer struct {
	win    Window
	commit bool
	method Method

	col int
	row int

	// last written cell, for marking auto-wrap
	lastCol int
	lastRow int

	softWrapped bool
	overflow    bool
	done        bool
}

func (p *printer) write(g string, gw int, seg Segment) {
	if p.done {
		return
	}
	if p.row >= p.win.Height {
		p.overflow = true
		p.done = true
		return
	}
	if p.commit {
		p.win.WriteCell(p.col, p.row, Cell{
			Character: Character{Grapheme: g, Width: gw},
			Style:     seg.Style,
			Link:      seg.Link,
		})
	}
	p.lastCol = p.col
	p.lastRow = p.row
	p.col += gw
}

// markWrapped flags the last written cell of the current row as continuing
// onto the next row via auto-wrap.
func (p *printer) markWrapped() {
	if !p.commit || p.lastRow != p.row || p.lastCol < 0 {
		return
	}
	if cell, ok := p.win.ReadCell(p.lastCol, p.lastRow); ok {
		cell.Wrapped = true
		p.win.WriteCell(p.lastCol, p.lastRow, cell)
	}
}

// advance moves to the start of the next row. soft records whether the move
// was a wrap rather than an explicit line break; hasMore indicates whether
// input remains, which turns running off the bottom into overflow.
func (p *printer) advance(soft, hasMore bool) {
	p.row++
	p.col = 0
	p.softWrapped = soft
	if p.row >= p.win.Height {
		if hasMore {
			p.overflow = true
		}
		p.done = true
	}
}

func isLineBreak(cluster string) bool {
	return cluster == "\n" || cluster == "\r" || cluster == "\r\n"
}

// hasMore reports whether any input remains after byte offset end of segment
// si.
func hasMore(segments []Segment, si, end int) bool {
	if end < len(segments[si].Text) {
		return true
	}
	for _, seg := range segments[si+1:] {
		if len(seg.Text) > 0 {
			return true
		}
	}
	return false
}

func (p *printer) printGrapheme(segments []Segment) {
	for si, seg := range segments {
		g := newGraphemes([]byte(seg.Text))
		for g.next() {
			if p.done {
				return
			}
			cluster := string(g.bytes())
			start, n := g.span()
			if isLineBreak(cluster) {
				p.advance(false, hasMore(segments, si, start+n))
				continue
			}
			gw := gwidth(cluster, p.method)
			if gw == 0 {
				continue
			}
			if p.col+gw > p.win.Width {
				p.markWrapped()
				p.advance(true, true)
				if p.done {
					return
				}
			}
			p.write(cluster, gw, seg)
		}
	}
}

func (p *printer) printNone(segments []Segment) {
	for _, seg := range segments {
		g := newGraphemes([]byte(seg.Text))
		for g.next() {
			cluster := string(g.bytes())
			if isLineBreak(cluster) {
				return
			}
			gw := gwidth(cluster, p.method)
			if gw == 0 {
				continue
			}
			if p.col+gw > p.win.Width {
				p.overflow = true
				return
			}
			p.write(cluster, gw, seg)
			if p.done {
				return
			}
		}
	}
}

func (p *printer) printWord(segments []Segment) {
	for si, seg := range segments {
		text := seg.Text
		i := 0
		for i < len(text) {
			if p.done {
				return
			}
			switch text[i] {
			case '\r':
				i++
				if i < len(text) && text[i] == '\n' {
					i++
				}
				p.advance(false, hasMore(segments, si, i))
			case '\n':
				i++
				p.advance(false, hasMore(segments, si, i))
			case ' ', '\t':
				// Whitespace run; a tab counts as eight spaces. Leading
				// whitespace on a soft-wrapped row collapses.
				j := i
				width := 0
				for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
					if text[j] == '\t' {
						width += 8
					} else {
						width++
					}
					j++
				}
				i = j
				if p.col == 0 && p.softWrapped {
					continue
				}
				for k := 0; k < width && p.col < p.win.Width; k++ {
					p.write(" ", 1, seg)
					if p.done {
						return
					}
				}
			default:
				j := i
				for j < len(text) && text[j] != ' ' && text[j] != '\t' && text[j] != '\r' && text[j] != '\n' {
					j++
				}
				word := text[i:j]
				i = j
				p.writeWord(word, seg)
			}
		}
	}
}

// writeWord emits one word, wrapping to a fresh row first when the whole word
// fits the window width but not the current row, and breaking it across rows
// otherwise.
func (p *printer) writeWord(word string, seg Segment) {
	wordWidth := gwidth(word, p.method)
	if p.col > 0 && p.col+wordWidth > p.win.Width && wordWidth <= p.win.Width {
		p.advance(true, true)
		if p.done {
			return
		}
	}
	g := newGraphemes([]byte(word))
	for g.next() {
		cluster := string(g.bytes())
		gw := gwidth(cluster, p.method)
		if gw == 0 {
			continue
		}
		if p.col+gw > p.win.Width {
			p.markWrapped()
			p.advance(true, true)
			if p.done {
				return
			}
		}
		p.write(cluster, gw, seg)
		if p.done {
			return
		}
	}
	p.softWrapped = false
}
