// Package fyne provides the spectrum drawing surface as a Fyne widget.
package fyne

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// Background color of the spectrum surface.
var backgroundColor = color.RGBA{R: 8, G: 8, B: 16, A: 255}

// fadeAlpha controls the per-frame trail: each frame the previous image
// is blended this far toward the background before new bars are drawn.
const fadeAlpha = 48

// SpectrumSurface renders the bar spectrum with a fading trail onto a
// raster widget. The backing RGBA image persists between frames (the
// trail needs prior frames) and is resized whenever the raster reports
// a new pixel size, which already accounts for the display scale factor.
type SpectrumSurface struct {
	widget.BaseWidget

	raster *canvas.Raster

	mu      sync.Mutex
	img     *image.RGBA
	pending []byte // bins to paint on the next raster pass, nil if none
	bins    []byte // reusable copy buffer
}

// NewSpectrumSurface creates the surface widget.
func NewSpectrumSurface() *SpectrumSurface {
	s := &SpectrumSurface{
		bins: make([]byte, domain.FrequencyBinCount),
	}
	s.raster = canvas.NewRaster(s.render)
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *SpectrumSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.raster)
}

// MinSize returns the minimum size of the surface.
func (s *SpectrumSurface) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

// Fit re-requests a raster pass; the backing buffer is sized to the
// reported pixel dimensions inside render. Idempotent.
func (s *SpectrumSurface) Fit() {
	s.raster.Refresh()
}

// Blank erases the backing buffer to the background color and drops any
// pending frame.
func (s *SpectrumSurface) Blank() {
	s.mu.Lock()
	if s.img != nil {
		fillBackground(s.img)
	}
	s.pending = nil
	s.mu.Unlock()

	s.raster.Refresh()
}

// DrawSpectrum queues one frame of bin magnitudes and refreshes the raster.
func (s *SpectrumSurface) DrawSpectrum(bins []byte) {
	s.mu.Lock()
	if len(s.bins) < len(bins) {
		s.bins = make([]byte, len(bins))
	}
	s.bins = s.bins[:len(bins)]
	copy(s.bins, bins)
	s.pending = s.bins
	s.mu.Unlock()

	s.raster.Refresh()
}

// render is the raster generator. w and h are backing-buffer pixels.
func (s *SpectrumSurface) render(w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.img == nil || s.img.Bounds().Dx() != w || s.img.Bounds().Dy() != h {
		s.img = image.NewRGBA(image.Rect(0, 0, w, h))
		fillBackground(s.img)
	}

	// The fade and bars are applied once per queued frame; raster passes
	// triggered by layout alone repaint the existing image.
	if s.pending != nil {
		fadeTowardBackground(s.img, fadeAlpha)
		drawBars(s.img, s.pending)
		s.pending = nil
	}

	return s.img
}

// fillBackground resets every pixel to the background color.
func fillBackground(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = backgroundColor.R
		pix[i+1] = backgroundColor.G
		pix[i+2] = backgroundColor.B
		pix[i+3] = 255
	}
}

// fadeTowardBackground blends the whole image toward the background,
// producing the trail effect.
func fadeTowardBackground(img *image.RGBA, alpha int) {
	pix := img.Pix
	inv := 255 - alpha
	for i := 0; i < len(pix); i += 4 {
		pix[i] = uint8((int(pix[i])*inv + int(backgroundColor.R)*alpha) / 255)
		pix[i+1] = uint8((int(pix[i+1])*inv + int(backgroundColor.G)*alpha) / 255)
		pix[i+2] = uint8((int(pix[i+2])*inv + int(backgroundColor.B)*alpha) / 255)
		pix[i+3] = 255
	}
}

// drawBars paints one vertical bar per bin, bottom-anchored, height
// proportional to magnitude, hue swept across the bin index.
func drawBars(img *image.RGBA, bins []byte) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if len(bins) == 0 || w == 0 || h == 0 {
		return
	}

	for i, mag := range bins {
		x0 := i * w / len(bins)
		x1 := (i+1)*w/len(bins) - 1 // 1px gap between bars
		if x1 < x0 {
			x1 = x0
		}

		barH := int(mag) * h / 255
		col := binColor(i, len(bins))

		for y := h - barH; y < h; y++ {
			for x := x0; x <= x1 && x < w; x++ {
				off := y*img.Stride + x*4
				img.Pix[off] = col.R
				img.Pix[off+1] = col.G
				img.Pix[off+2] = col.B
				img.Pix[off+3] = 255
			}
		}
	}
}

// Verify interface implementation at compile time.
var _ ports.Surface = (*SpectrumSurface)(nil)
var _ fyne.Widget = (*SpectrumSurface)(nil)
