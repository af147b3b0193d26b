// Package ports define interfaces for dependency inversion.
// These interfaces allow the core lifecycle logic to remain independent of
// the concrete audio libraries (PortAudio, beep) and allow testing with mocks.
package ports

import (
	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

// SampleSink receives mono audio samples from whichever source is active.
// The analysis node implements this; drivers push into it from their own
// callback goroutines, so implementations must be thread-safe.
type SampleSink interface {
	// Push feeds a block of mono samples in the range [-1, 1].
	// Called on the driver's audio thread; must not block.
	Push(samples []float32)
}

// CaptureStream is a live hardware capture stream routed into a sink.
type CaptureStream interface {
	// Close stops the hardware tracks and releases the device lock.
	// Idempotent; failures are best-effort and safe to ignore.
	Close() error
}

// CaptureDriver acquires microphone capture streams.
//
// Open may block while the host resolves device access (the permission
// prompt of the original environment); callers must tolerate a stop
// request arriving before Open returns.
type CaptureDriver interface {
	// Open acquires the capture device and starts delivering samples to
	// the sink. Returns domain.ErrPermissionDenied or
	// domain.ErrDeviceUnavailable (possibly wrapped) on failure.
	Open(sink SampleSink) (CaptureStream, error)
}

// PlaybackStream is a playing track routed through a sink to the speakers.
type PlaybackStream interface {
	// Stop detaches the completion hook, halts playback, and releases the
	// decoder. Idempotent. Detaching first guarantees the completion hook
	// never fires for a manual stop.
	Stop() error
}

// PlaybackDriver binds track content, plays it, and reports natural completion.
type PlaybackDriver interface {
	// Play decodes the track's source locator, starts audible playback,
	// and tees samples into the sink. onComplete is invoked exactly once
	// if and only if the track ends naturally (never after Stop).
	// Returns domain.ErrPlaybackFailed (possibly wrapped) on failure.
	Play(track domain.Track, sink SampleSink, onComplete func()) (PlaybackStream, error)
}
