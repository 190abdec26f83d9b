package voxel

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color stores explicit 8-bit RGBA channels for one palette entry
type Color struct {
	R, G, B, A uint8
}

// String formats the color as #RRGGBBAA
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Palette is a 256-entry color table. Index 0 is reserved for empty
// space and never refers to a drawable color.
type Palette [256]Color

// NearestIndex finds the palette entry perceptually closest to c,
// comparing in Lab space. Index 0 and fully transparent entries are
// never matched; an all-transparent palette yields index 1.
func (p *Palette) NearestIndex(c Color) uint8 {
	target := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}

	best := 1
	bestDist := math.MaxFloat64
	for i := 1; i < len(p); i++ {
		if p[i].A == 0 {
			continue
		}
		entry := colorful.Color{
			R: float64(p[i].R) / 255.0,
			G: float64(p[i].G) / 255.0,
			B: float64(p[i].B) / 255.0,
		}
		if d := target.DistanceLab(entry); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}
