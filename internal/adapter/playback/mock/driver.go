// Package mock provides an in-memory implementation of the playback driver.
// This is used for testing the lifecycle service without decoding audio.
package mock

import (
	"sync"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// Driver is a mock playback driver. It records every stream it hands out
// so tests can observe teardown ordering and simulate natural track
// completion.
//
// Thread-safety: all methods are safe for concurrent use.
type Driver struct {
	mu sync.Mutex

	failPlay error
	streams  []*Stream
}

// NewDriver creates a new mock playback driver.
func NewDriver() *Driver {
	return &Driver{}
}

// SetFailPlay configures the error Play returns (nil to succeed).
func (d *Driver) SetFailPlay(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failPlay = err
}

// Play binds a fake playback stream for the track.
func (d *Driver) Play(track domain.Track, sink ports.SampleSink, onComplete func()) (ports.PlaybackStream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failPlay != nil {
		return nil, domain.NewPlaybackError("play", track.SourceLocator, d.failPlay.Error(), d.failPlay)
	}

	stream := &Stream{track: track, sink: sink, onComplete: onComplete}
	d.streams = append(d.streams, stream)
	return stream, nil
}

// PlayingCount returns how many streams are currently playing (started
// and neither stopped nor completed).
func (d *Driver) PlayingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := 0
	for _, s := range d.streams {
		if s.Playing() {
			count++
		}
	}
	return count
}

// LastStream returns the most recently created stream, or nil.
func (d *Driver) LastStream() *Stream {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.streams) == 0 {
		return nil
	}
	return d.streams[len(d.streams)-1]
}

// Stream is a fake playing track.
type Stream struct {
	track      domain.Track
	sink       ports.SampleSink
	onComplete func()

	mu      sync.Mutex
	stopped bool
}

// Track returns the track this stream was created for.
func (s *Stream) Track() domain.Track {
	return s.track
}

// Stop detaches the completion hook and halts playback. Idempotent.
func (s *Stream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

// Playing reports whether the stream is still live.
func (s *Stream) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped
}

// Complete simulates natural end of track: the completion hook fires
// unless the stream was already stopped. Calling Complete twice fires
// the hook once.
func (s *Stream) Complete() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	hook := s.onComplete
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Emit pushes samples into the stream's sink, simulating decoded audio
// flowing through the analysis tap.
func (s *Stream) Emit(samples []float32) {
	if s.Playing() {
		s.sink.Push(samples)
	}
}

// Verify interface implementation at compile time.
var _ ports.PlaybackDriver = (*Driver)(nil)
