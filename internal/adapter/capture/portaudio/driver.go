// Package portaudio provides the hardware microphone capture driver.
// It adapts PortAudio input streams to the ports.CaptureDriver interface.
package portaudio

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// Driver opens mono capture streams on the default input device.
//
// PortAudio is initialized lazily on the first Open and released by
// Terminate during application shutdown.
type Driver struct {
	logger          *slog.Logger
	sampleRate      float64
	framesPerBuffer int

	mu          sync.Mutex
	initialized bool
}

// NewDriver creates a capture driver.
func NewDriver(logger *slog.Logger, sampleRate float64, framesPerBuffer int) *Driver {
	return &Driver{
		logger:          logger,
		sampleRate:      sampleRate,
		framesPerBuffer: framesPerBuffer,
	}
}

// Open acquires the default capture device and starts streaming into the
// sink. The acquisition may block while the OS resolves device access.
func (d *Driver) Open(sink ports.SampleSink) (ports.CaptureStream, error) {
	if err := d.ensureInitialized(); err != nil {
		return nil, domain.NewCaptureError("initialize", "", err.Error(), domain.ErrDeviceUnavailable)
	}

	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, domain.NewCaptureError("open", "", err.Error(), domain.ErrDeviceUnavailable)
	}

	// The callback runs on PortAudio's audio thread; the sink contract
	// requires Push to be non-blocking.
	stream, err := portaudio.OpenDefaultStream(1, 0, d.sampleRate, d.framesPerBuffer, func(in []float32) {
		sink.Push(in)
	})
	if err != nil {
		return nil, wrapOpenError(device.Name, err)
	}

	if err := stream.Start(); err != nil {
		// Undo the half-built stream; start failures must not leak the
		// device handle.
		if closeErr := stream.Close(); closeErr != nil {
			d.logger.Warn("failed to close stream after start error", slog.Any("error", closeErr))
		}
		return nil, domain.NewCaptureError("start", device.Name, err.Error(), domain.ErrDeviceUnavailable)
	}

	d.logger.Debug("capture stream started",
		slog.String("device", device.Name),
		slog.Float64("sample_rate", d.sampleRate))

	return &captureStream{
		logger: d.logger,
		stream: stream,
	}, nil
}

// Terminate releases PortAudio. Call once during application shutdown,
// after every capture stream is closed.
func (d *Driver) Terminate() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return
	}
	if err := portaudio.Terminate(); err != nil {
		d.logger.Warn("portaudio terminate failed", slog.Any("error", err))
	}
	d.initialized = false
}

func (d *Driver) ensureInitialized() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	d.initialized = true
	return nil
}

// wrapOpenError classifies a device-open failure into the domain taxonomy.
func wrapOpenError(device string, err error) error {
	sentinel := domain.ErrDeviceUnavailable
	if strings.Contains(strings.ToLower(err.Error()), "denied") {
		sentinel = domain.ErrPermissionDenied
	}
	return domain.NewCaptureError("open", device, err.Error(), sentinel)
}

// captureStream wraps a live PortAudio input stream.
type captureStream struct {
	logger *slog.Logger

	mu     sync.Mutex
	stream *portaudio.Stream
}

// Close stops and releases the hardware stream. Idempotent; failures
// are logged and swallowed since Close runs inside teardown paths.
func (s *captureStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		return nil
	}

	if err := s.stream.Stop(); err != nil {
		s.logger.Warn("capture stream stop failed", slog.Any("error", err))
	}
	if err := s.stream.Close(); err != nil {
		s.logger.Warn("capture stream close failed", slog.Any("error", err))
	}
	s.stream = nil

	return nil
}

// Verify interface implementation at compile time.
var _ ports.CaptureDriver = (*Driver)(nil)
