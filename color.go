package vaxis

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorKind discriminates the three ways a cell color can be specified.
type ColorKind uint8

const (
	// ColorKindDefault uses the terminal's configured default color.
	ColorKindDefault ColorKind = iota
	// ColorKindIndexed selects one of the 256 palette colors.
	ColorKindIndexed
	// ColorKindRGB is a 24-bit truecolor value.
	ColorKindRGB
)

// Color is a terminal color: the default, an indexed palette entry, or a
// 24-bit RGB value. The zero value is the terminal default. Colors are
// comparable with ==.
type Color struct {
	Kind  ColorKind
	Index uint8
	R     uint8
	G     uint8
	B     uint8
}

// IndexColor returns the indexed palette color i.
func IndexColor(i uint8) Color {
	return Color{Kind: ColorKindIndexed, Index: i}
}

// RGBColor returns a 24-bit RGB color.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorKindRGB, R: r, G: g, B: b}
}

// RGBA implements image/color.Color, resolving palette indices through
// DefaultPalette and the default color to DefaultForeground.
func (c Color) RGBA() (r, g, b, a uint32) {
	switch c.Kind {
	case ColorKindIndexed:
		return DefaultPalette[c.Index].RGBA()
	case ColorKindRGB:
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
	default:
		return DefaultForeground.RGBA()
	}
}

// fgSeq returns the SGR sequence selecting c as the foreground color.
// Indexed colors 0..7 use the short form, 8..15 the bright form. RGB uses
// colon subparameters unless legacy is set.
func (c Color) fgSeq(legacy bool) string {
	switch c.Kind {
	case ColorKindIndexed:
		switch {
		case c.Index < 8:
			return fmt.Sprintf("\x1b[%dm", 30+c.Index)
		case c.Index < 16:
			return fmt.Sprintf("\x1b[%dm", 90+c.Index-8)
		default:
			if legacy {
				return fmt.Sprintf("\x1b[38;5;%dm", c.Index)
			}
			return fmt.Sprintf("\x1b[38:5:%dm", c.Index)
		}
	case ColorKindRGB:
		if legacy {
			return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
		}
		return fmt.Sprintf("\x1b[38:2::%d:%d:%dm", c.R, c.G, c.B)
	default:
		return "\x1b[39m"
	}
}

// bgSeq returns the SGR sequence selecting c as the background color.
func (c Color) bgSeq(legacy bool) string {
	switch c.Kind {
	case ColorKindIndexed:
		switch {
		case c.Index < 8:
			return fmt.Sprintf("\x1b[%dm", 40+c.Index)
		case c.Index < 16:
			return fmt.Sprintf("\x1b[%dm", 100+c.Index-8)
		default:
			if legacy {
				return fmt.Sprintf("\x1b[48;5;%dm", c.Index)
			}
			return fmt.Sprintf("\x1b[48:5:%dm", c.Index)
		}
	case ColorKindRGB:
		if legacy {
			return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
		}
		return fmt.Sprintf("\x1b[48:2::%d:%d:%dm", c.R, c.G, c.B)
	default:
		return "\x1b[49m"
	}
}

// ulSeq returns the SGR sequence selecting c as the underline color.
// Underline color has no short indexed form.
func (c Color) ulSeq(legacy bool) string {
	switch c.Kind {
	case ColorKindIndexed:
		if legacy {
			return fmt.Sprintf("\x1b[58;5;%dm", c.Index)
		}
		return fmt.Sprintf("\x1b[58:5:%dm", c.Index)
	case ColorKindRGB:
		if legacy {
			return fmt.Sprintf("\x1b[58;2;%d;%d;%dm", c.R, c.G, c.B)
		}
		return fmt.Sprintf("\x1b[58:2::%d:%d:%dm", c.R, c.G, c.B)
	default:
		return "\x1b[59m"
	}
}

// downsample maps an RGB color to the nearest entry of the 256-color palette
// by perceptual distance. Non-RGB colors pass through unchanged. The renderer
// uses this when the terminal did not report truecolor support.
func (c Color) downsample() Color {
	if c.Kind != ColorKindRGB {
		return c
	}
	target, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	best := 0
	bestDist := -1.0
	for i := range DefaultPalette {
		entry, _ := colorful.MakeColor(DefaultPalette[i])
		d := target.DistanceLab(entry)
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return IndexColor(uint8(best))
}
