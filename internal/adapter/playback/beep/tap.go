package beep

import (
	"github.com/faiface/beep"

	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// analysisTap wraps a beep.Streamer and copies everything that flows
// through it into the analysis sink, downmixed to mono. It is the
// file-source adapter node: audio reaches the speaker and the analyzer
// through a single path.
type analysisTap struct {
	source beep.Streamer
	sink   ports.SampleSink
	mono   []float32 // reusable downmix buffer
}

// Stream implements beep.Streamer.
func (t *analysisTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	if n > 0 {
		if cap(t.mono) < n {
			t.mono = make([]float32, n)
		}
		t.mono = t.mono[:n]
		for i := 0; i < n; i++ {
			t.mono[i] = float32((samples[i][0] + samples[i][1]) * 0.5)
		}
		t.sink.Push(t.mono)
	}
	return n, ok
}

// Err implements beep.Streamer.
func (t *analysisTap) Err() error {
	return t.source.Err()
}
