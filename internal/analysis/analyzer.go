// Package analysis implements the frequency sampler: a single analysis
// node bound to whichever audio source is currently active.
//
// The analyzer keeps a ring of the most recent time-domain samples and
// computes a windowed FFT on demand, publishing per-bin byte magnitudes
// with exponential smoothing. All buffers are allocated once at
// construction; the Push and Sample hot paths do not allocate.
package analysis

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

// Byte-scaling range, matching the decibel window the reference
// visualizer maps onto 0-255.
const (
	minDecibels = -100.0
	maxDecibels = -30.0
)

// Analyzer converts a stream of mono samples into smoothed frequency-bin
// magnitudes. One Analyzer exists per active audio pipeline; it is
// created on source activation and closed on teardown. A closed
// analyzer serves zeroed data rather than stale spectra.
type Analyzer struct {
	mu sync.Mutex

	fft    *fourier.FFT
	window []float64 // Hann coefficients

	ring    []float64 // most recent time-domain samples
	ringPos int

	input    []float64    // windowed FFT input
	coeffs   []complex128 // FFT output
	smoothed []float64    // per-bin smoothed magnitude (linear)
	out      []byte       // buffer returned by Sample

	closed bool
}

// NewAnalyzer creates an analyzer with the fixed 256-sample transform
// window (128 bins) and 0.8 temporal smoothing.
func NewAnalyzer() *Analyzer {
	size := domain.AnalysisWindowSize

	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}

	return &Analyzer{
		fft:      fourier.NewFFT(size),
		window:   window,
		ring:     make([]float64, size),
		input:    make([]float64, size),
		coeffs:   make([]complex128, size/2+1),
		smoothed: make([]float64, domain.FrequencyBinCount),
		out:      make([]byte, domain.FrequencyBinCount),
	}
}

// Push feeds a block of mono samples in [-1, 1] into the ring.
// Called from driver audio threads; no allocation, no blocking I/O.
func (a *Analyzer) Push(samples []float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	for _, s := range samples {
		a.ring[a.ringPos] = float64(s)
		a.ringPos++
		if a.ringPos == len(a.ring) {
			a.ringPos = 0
		}
	}
}

// Sample returns the current magnitude-per-bin snapshot, one byte per
// bin. The returned slice is owned by the analyzer and valid until the
// next call; callers must not retain it across frames. After Close the
// snapshot is all zeroes.
func (a *Analyzer) Sample() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return a.out
	}

	// Unroll the ring into chronological order and apply the window.
	pos := a.ringPos
	for i := range a.input {
		a.input[i] = a.ring[pos] * a.window[i]
		pos++
		if pos == len(a.ring) {
			pos = 0
		}
	}

	a.fft.Coefficients(a.coeffs, a.input)

	norm := float64(len(a.input)) / 2
	for i := 0; i < domain.FrequencyBinCount; i++ {
		mag := cmplx.Abs(a.coeffs[i]) / norm
		a.smoothed[i] = domain.AnalysisSmoothing*a.smoothed[i] + (1-domain.AnalysisSmoothing)*mag
		a.out[i] = scaleToByte(a.smoothed[i])
	}

	return a.out
}

// BinCount returns the number of frequency bins per snapshot.
func (a *Analyzer) BinCount() int {
	return len(a.out)
}

// Close releases the analyzer. Subsequent Push calls are dropped and
// Sample returns zeroed data. Idempotent.
func (a *Analyzer) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true
	for i := range a.out {
		a.out[i] = 0
	}
}

// scaleToByte maps a linear magnitude onto 0-255 through the
// [minDecibels, maxDecibels] window.
func scaleToByte(mag float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	scaled := (db - minDecibels) / (maxDecibels - minDecibels) * 255
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return byte(scaled)
}
