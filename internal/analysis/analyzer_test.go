package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

// fillWithTone pushes a full window of a sine tone at the given
// normalized frequency (cycles per window).
func fillWithTone(a *Analyzer, cycles float64, amplitude float64) {
	samples := make([]float32, domain.AnalysisWindowSize)
	for i := range samples {
		samples[i] = float32(amplitude * math.Sin(2*math.Pi*cycles*float64(i)/float64(len(samples))))
	}
	a.Push(samples)
}

func TestAnalyzer_BinCount(t *testing.T) {
	a := NewAnalyzer()
	defer a.Close()

	assert.Equal(t, domain.FrequencyBinCount, a.BinCount())
	assert.Len(t, a.Sample(), domain.FrequencyBinCount)
}

func TestAnalyzer_SilenceProducesZeroes(t *testing.T) {
	a := NewAnalyzer()
	defer a.Close()

	a.Push(make([]float32, domain.AnalysisWindowSize))

	for _, b := range a.Sample() {
		assert.Equal(t, byte(0), b)
	}
}

func TestAnalyzer_ToneRaisesMatchingBin(t *testing.T) {
	a := NewAnalyzer()
	defer a.Close()

	// 8 cycles per 256-sample window lands in bin 8
	fillWithTone(a, 8, 0.9)

	// Repeated sampling lets the smoothing converge toward the signal
	var bins []byte
	for i := 0; i < 50; i++ {
		bins = a.Sample()
	}

	require.Len(t, bins, domain.FrequencyBinCount)
	assert.Greater(t, bins[8], byte(0))

	// The tone bin dominates distant bins
	assert.Greater(t, bins[8], bins[64])
	assert.Greater(t, bins[8], bins[120])
}

func TestAnalyzer_SmoothingDecaysAfterSignalStops(t *testing.T) {
	a := NewAnalyzer()
	defer a.Close()

	fillWithTone(a, 8, 0.9)
	for i := 0; i < 50; i++ {
		a.Sample()
	}
	loud := a.Sample()[8]
	require.Greater(t, loud, byte(0))

	// Overwrite the ring with silence: the bin decays, not snaps, to zero
	a.Push(make([]float32, domain.AnalysisWindowSize))
	afterOne := a.Sample()[8]
	assert.LessOrEqual(t, afterOne, loud)

	for i := 0; i < 200; i++ {
		a.Sample()
	}
	assert.Equal(t, byte(0), a.Sample()[8])
}

func TestAnalyzer_PartialPushesWrapRing(t *testing.T) {
	a := NewAnalyzer()
	defer a.Close()

	// Feed the window in small uneven chunks; the ring must still hold a
	// coherent signal
	chunk := make([]float32, 60)
	for i := range chunk {
		chunk[i] = 0.5
	}
	for i := 0; i < 10; i++ {
		a.Push(chunk)
	}

	bins := a.Sample()
	require.Len(t, bins, domain.FrequencyBinCount)

	// DC offset shows up in bin 0
	var converged byte
	for i := 0; i < 50; i++ {
		converged = a.Sample()[0]
	}
	assert.Greater(t, converged, byte(0))
}

func TestAnalyzer_CloseZeroesData(t *testing.T) {
	a := NewAnalyzer()

	fillWithTone(a, 8, 0.9)
	for i := 0; i < 50; i++ {
		a.Sample()
	}
	require.Greater(t, a.Sample()[8], byte(0))

	a.Close()

	for _, b := range a.Sample() {
		assert.Equal(t, byte(0), b)
	}

	// Pushes after close are dropped
	fillWithTone(a, 8, 0.9)
	for _, b := range a.Sample() {
		assert.Equal(t, byte(0), b)
	}
}

func TestAnalyzer_CloseIdempotent(t *testing.T) {
	a := NewAnalyzer()
	a.Close()
	a.Close()

	assert.Len(t, a.Sample(), domain.FrequencyBinCount)
}

func TestScaleToByte(t *testing.T) {
	assert.Equal(t, byte(0), scaleToByte(0))
	assert.Equal(t, byte(0), scaleToByte(-1))

	// Below the -100 dB floor
	assert.Equal(t, byte(0), scaleToByte(1e-6))

	// Above the -30 dB ceiling saturates
	assert.Equal(t, byte(255), scaleToByte(0.5))

	// Mid-window values land strictly inside the range
	mid := scaleToByte(0.001) // -60 dB
	assert.Greater(t, mid, byte(0))
	assert.Less(t, mid, byte(255))
}
