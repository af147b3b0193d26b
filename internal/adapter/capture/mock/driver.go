// Package mock provides an in-memory implementation of the capture driver.
// This is used for testing the lifecycle service without real hardware.
package mock

import (
	"sync"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// Driver is a mock capture driver. It records every stream it hands out
// so tests can observe whether hardware tracks were released.
//
// Thread-safety: all methods are safe for concurrent use.
type Driver struct {
	mu sync.Mutex

	failOpen error
	gate     chan struct{} // when non-nil, Open blocks until the gate closes
	streams  []*Stream
}

// NewDriver creates a new mock capture driver.
func NewDriver() *Driver {
	return &Driver{}
}

// SetFailOpen configures the error Open returns (nil to succeed).
func (d *Driver) SetFailOpen(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failOpen = err
}

// BlockOpen makes subsequent Open calls block until the returned release
// function is called. This simulates a pending permission prompt.
func (d *Driver) BlockOpen() (release func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	gate := make(chan struct{})
	d.gate = gate

	var once sync.Once
	return func() {
		once.Do(func() { close(gate) })
	}
}

// Open acquires a fake capture stream.
func (d *Driver) Open(sink ports.SampleSink) (ports.CaptureStream, error) {
	d.mu.Lock()
	gate := d.gate
	d.mu.Unlock()

	if gate != nil {
		<-gate
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failOpen != nil {
		return nil, domain.NewCaptureError("open", "mock", d.failOpen.Error(), d.failOpen)
	}

	stream := &Stream{sink: sink}
	d.streams = append(d.streams, stream)
	return stream, nil
}

// OpenStreamCount returns how many streams are currently live (acquired
// and not yet closed). A non-zero count after teardown is a leaked
// hardware track.
func (d *Driver) OpenStreamCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := 0
	for _, s := range d.streams {
		if !s.Closed() {
			count++
		}
	}
	return count
}

// Emit pushes samples into every live stream's sink, simulating the
// hardware callback delivering audio.
func (d *Driver) Emit(samples []float32) {
	d.mu.Lock()
	streams := make([]*Stream, len(d.streams))
	copy(streams, d.streams)
	d.mu.Unlock()

	for _, s := range streams {
		if !s.Closed() {
			s.sink.Push(samples)
		}
	}
}

// Stream is a fake live capture stream.
type Stream struct {
	mu     sync.Mutex
	sink   ports.SampleSink
	closed bool
}

// Close marks the hardware tracks stopped. Idempotent.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether the stream has been released.
func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Verify interface implementation at compile time.
var _ ports.CaptureDriver = (*Driver)(nil)
