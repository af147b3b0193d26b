package fyne

import (
	"image/color"
)

// hueSweepDegrees is the arc covered by the bar gradient: bin 0 sits at
// hue 0 (red) and the last bin at ~300 degrees (magenta).
const hueSweepDegrees = 300.0

// binColor returns the rainbow color for a bin index.
func binColor(index, total int) color.RGBA {
	hue := 0.0
	if total > 1 {
		hue = hueSweepDegrees * float64(index) / float64(total-1)
	}
	r, g, b := hslToRGB(hue/360.0, 1.0, 0.5)
	return color.RGBA{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
		A: 255,
	}
}

// hslToRGB converts HSL to RGB (h, s, l in 0-1 range).
func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r = hueToRGB(p, q, h+1.0/3.0)
	g = hueToRGB(p, q, h)
	b = hueToRGB(p, q, h-1.0/3.0)

	return r, g, b
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 0.5 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
