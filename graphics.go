package vaxis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGraphicsNotSupported is returned by graphics operations when the
// terminal did not report kitty graphics support. Callers should check for it
// before retrying.
var ErrGraphicsNotSupported = errors.New("terminal does not support graphics")

// Placement positions a previously transmitted image over a cell. All fields
// except ID are optional; zero values are omitted from the emitted command.
type Placement struct {
	// ID is the kitty image id the placement refers to.
	ID uint32

	// XOffset and YOffset position the image within the cell, in pixels.
	XOffset int
	YOffset int

	// ClipX, ClipY, ClipW, ClipH select a source region of the image, in
	// pixels.
	ClipX int
	ClipY int
	ClipW int
	ClipH int

	// Rows and Cols scale the image to a cell rectangle.
	Rows int
	Cols int

	// ZIndex layers overlapping placements.
	ZIndex int
}

// seq returns the APC G command displaying the placement at the cursor
// without moving it.
func (p *Placement) seq() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b_Ga=p,i=%d,C=1", p.ID)
	if p.XOffset > 0 {
		fmt.Fprintf(&sb, ",X=%d", p.XOffset)
	}
	if p.YOffset > 0 {
		fmt.Fprintf(&sb, ",Y=%d", p.YOffset)
	}
	if p.ClipW > 0 || p.ClipH > 0 {
		fmt.Fprintf(&sb, ",x=%d,y=%d,w=%d,h=%d", p.ClipX, p.ClipY, p.ClipW, p.ClipH)
	}
	if p.Rows > 0 {
		fmt.Fprintf(&sb, ",r=%d", p.Rows)
	}
	if p.Cols > 0 {
		fmt.Fprintf(&sb, ",c=%d", p.Cols)
	}
	if p.ZIndex != 0 {
		fmt.Fprintf(&sb, ",z=%d", p.ZIndex)
	}
	sb.WriteString("\x1b\\")
	return sb.String()
}

// NextImageID allocates an image id for the caller to transmit under. It
// returns ErrGraphicsNotSupported when the terminal did not report kitty
// graphics; image transmission itself is the caller's concern.
func (vx *Vaxis) NextImageID() (uint32, error) {
	if !vx.caps.KittyGraphics {
		return 0, ErrGraphicsNotSupported
	}
	vx.nextImageID++
	return vx.nextImageID, nil
}
