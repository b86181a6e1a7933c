package gridscreen

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/javanhut/vtcore/screen"
)

// Palette resolves a (ColorSpace, value) pair to an RGB color for
// sinks that cannot render a full 24-bit or 256-color request
// directly and must fall back to the 16-color system palette. This
// plays the same role go-colorful plays in bubbletea's and tcell's own
// color handling: a small value type plus a nearest-match search, not
// a rendering library.
type Palette struct {
	system [16]colorful.Color
}

// DefaultPalette is the standard xterm 16-color table (dim 0-7, bright
// 8-15), expressed in sRGB per go-colorful's Color.
var DefaultPalette = Palette{system: [16]colorful.Color{
	colorful.Color{R: 0, G: 0, B: 0},
	colorful.Color{R: 0.502, G: 0, B: 0},
	colorful.Color{R: 0, G: 0.502, B: 0},
	colorful.Color{R: 0.502, G: 0.502, B: 0},
	colorful.Color{R: 0, G: 0, B: 0.502},
	colorful.Color{R: 0.502, G: 0, B: 0.502},
	colorful.Color{R: 0, G: 0.502, B: 0.502},
	colorful.Color{R: 0.753, G: 0.753, B: 0.753},
	colorful.Color{R: 0.502, G: 0.502, B: 0.502},
	colorful.Color{R: 1, G: 0, B: 0},
	colorful.Color{R: 0, G: 1, B: 0},
	colorful.Color{R: 1, G: 1, B: 0},
	colorful.Color{R: 0, G: 0, B: 1},
	colorful.Color{R: 1, G: 0, B: 1},
	colorful.Color{R: 0, G: 1, B: 1},
	colorful.Color{R: 1, G: 1, B: 1},
}}

// Resolve converts a color request to a concrete colorful.Color, the
// xterm 256-color cube/grayscale decode for ColorSpace256, and passes
// RGB requests through directly.
func (p *Palette) Resolve(space screen.ColorSpace, value int) colorful.Color {
	switch space {
	case screen.ColorSpaceSystem:
		if value >= 0 && value < 16 {
			return p.system[value]
		}
	case screen.ColorSpace256:
		return xterm256(value)
	case screen.ColorSpaceRGB:
		r := float64((value>>16)&0xFF) / 255
		g := float64((value>>8)&0xFF) / 255
		b := float64(value&0xFF) / 255
		return colorful.Color{R: r, G: g, B: b}
	}
	return p.system[7]
}

// NearestSystem downsamples any color request to the closest of the 16
// ANSI colors via CIE Lab distance, for sinks that only understand the
// indexed palette.
func (p *Palette) NearestSystem(space screen.ColorSpace, value int) int {
	target := p.Resolve(space, value)
	best, bestDist := 0, target.DistanceLab(p.system[0])
	for i := 1; i < 16; i++ {
		d := target.DistanceLab(p.system[i])
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// xterm256 decodes the standard xterm 256-color index: 0-15 system,
// 16-231 a 6x6x6 color cube, 232-255 a 24-step grayscale ramp.
func xterm256(i int) colorful.Color {
	switch {
	case i < 16:
		return DefaultPalette.system[i]
	case i < 232:
		i -= 16
		r := cubeStep(i / 36)
		g := cubeStep((i / 6) % 6)
		b := cubeStep(i % 6)
		return colorful.Color{R: r, G: g, B: b}
	default:
		level := float64(8+(i-232)*10) / 255
		return colorful.Color{R: level, G: level, B: level}
	}
}

func cubeStep(n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(55+n*40) / 255
}
