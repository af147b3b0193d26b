// Package mock provides a recording implementation of the drawing surface.
// Tests use it to observe blank/fit calls and painted frames.
package mock

import (
	"sync"

	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// Surface records every operation performed on it.
//
// Thread-safety: all methods are safe for concurrent use; the render
// loop paints from its own goroutine.
type Surface struct {
	mu         sync.Mutex
	fitCalls   int
	blankCalls int
	frames     int
	lastFrame  []byte
}

// NewSurface creates a new recording surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Fit records a fit call.
func (s *Surface) Fit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitCalls++
}

// Blank records a blank call and forgets the last frame.
func (s *Surface) Blank() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blankCalls++
	s.lastFrame = nil
}

// DrawSpectrum records one painted frame.
func (s *Surface) DrawSpectrum(bins []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	s.lastFrame = append(s.lastFrame[:0], bins...)
}

// FitCalls returns how many times Fit was called.
func (s *Surface) FitCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fitCalls
}

// BlankCalls returns how many times Blank was called.
func (s *Surface) BlankCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blankCalls
}

// FrameCount returns how many frames were painted.
func (s *Surface) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// LastFrame returns a copy of the most recent frame, nil if the surface
// was blanked since.
func (s *Surface) LastFrame() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFrame == nil {
		return nil
	}
	out := make([]byte, len(s.lastFrame))
	copy(out, s.lastFrame)
	return out
}

// Blanked reports whether the surface currently shows no frame.
func (s *Surface) Blanked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blankCalls > 0 && s.lastFrame == nil
}

// Verify interface implementation at compile time.
var _ ports.Surface = (*Surface)(nil)
