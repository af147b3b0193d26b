// Package ports define the Surface interface for drawing abstraction.
package ports

// Surface is the drawing target for the spectrum render loop.
// The fyne adapter implements it with a raster widget; tests use a
// recording mock.
//
// Thread-safety: DrawSpectrum is called from the render loop goroutine
// while Fit and Blank are called from lifecycle transitions, so
// implementations must be thread-safe.
type Surface interface {
	// Fit resizes the backing pixel buffer to the laid-out size times the
	// display scale factor, minimum 1x1. Idempotent; safe with no active
	// pipeline.
	Fit()

	// Blank fills the entire backing buffer with the opaque background
	// color, erasing any prior frame.
	Blank()

	// DrawSpectrum paints one frame: a translucent fade overlay followed
	// by one vertical bar per frequency bin (magnitudes 0-255).
	DrawSpectrum(bins []byte)
}
