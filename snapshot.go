package vaxis

import "strings"

// Snapshot is a structured capture of a composed Screen, for tests, debug
// dumps, and golden files.
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

// SnapshotSize holds screen dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row     int  `json:"row"`
	Col     int  `json:"col"`
	Visible bool `json:"visible"`
}

// SnapshotLine is one row: its plain text plus the styled segments that
// compose it.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
}

// SnapshotSegment is a run of cells sharing a style and hyperlink.
type SnapshotSegment struct {
	Text  string    `json:"text"`
	Style Style     `json:"style"`
	Link  Hyperlink `json:"link"`
}

// Snapshot captures the screen contents. Wide-cell tails are skipped and
// trailing default cells are trimmed from each line's text.
func (s *Screen) Snapshot() Snapshot {
	snap := Snapshot{
		Size: SnapshotSize{Rows: s.height, Cols: s.width},
		Cursor: SnapshotCursor{
			Row:     s.cursor.Row,
			Col:     s.cursor.Col,
			Visible: s.cursor.Visible,
		},
		Lines: make([]SnapshotLine, s.height),
	}
	for row := 0; row < s.height; row++ {
		snap.Lines[row] = s.snapshotLine(row)
	}
	return snap
}

func (s *Screen) snapshotLine(row int) SnapshotLine {
	last := -1
	for col := 0; col < s.width; col++ {
		if !s.buf[row*s.width+col].Default {
			last = col
		}
	}

	var line SnapshotLine
	var text strings.Builder
	var seg *SnapshotSegment
	for col := 0; col <= last; {
		cell := s.buf[row*s.width+col]
		g := cell.Character.grapheme()
		cw := cell.Character.Width
		if cw == 0 {
			cw = gwidth(g, s.method)
		}
		if cw < 1 {
			cw = 1
		}
		text.WriteString(g)

		if seg == nil || seg.Style != cell.Style || seg.Link != cell.Link {
			line.Segments = append(line.Segments, SnapshotSegment{
				Style: cell.Style,
				Link:  cell.Link,
			})
			seg = &line.Segments[len(line.Segments)-1]
		}
		seg.Text += g
		col += cw
	}
	line.Text = text.String()
	return line
}

// String renders the snapshot's text content, one line per row.
func (snap Snapshot) String() string {
	var sb strings.Builder
	for _, line := range snap.Lines {
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
