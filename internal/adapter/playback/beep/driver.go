// Package beep provides the file/track playback driver.
// It decodes audio files with the beep codec packages, plays them through
// the speaker, and tees samples into the analysis sink.
package beep

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// Driver plays one track at a time through the system speaker.
//
// The speaker is initialized on first use and re-initialized when a
// track's sample rate differs from the current one. Each Play builds a
// fresh decode stream; a stopped track cannot be resumed, only rebuilt.
type Driver struct {
	logger *slog.Logger

	mu          sync.Mutex
	speakerRate beep.SampleRate
	initialized bool
}

// NewDriver creates a playback driver.
func NewDriver(logger *slog.Logger) *Driver {
	return &Driver{logger: logger}
}

// Play decodes the track's source locator and starts audible playback,
// teeing samples into the sink. onComplete fires exactly once on natural
// end of track and never after Stop.
func (d *Driver) Play(track domain.Track, sink ports.SampleSink, onComplete func()) (ports.PlaybackStream, error) {
	if track.SourceLocator == "" {
		return nil, domain.NewPlaybackError("open", track.SourceLocator, "empty source locator", domain.ErrInvalidTrack)
	}

	f, err := os.Open(track.SourceLocator)
	if err != nil {
		return nil, domain.NewPlaybackError("open", track.SourceLocator, err.Error(), domain.ErrPlaybackFailed)
	}

	streamer, format, err := decode(f, track.SourceLocator)
	if err != nil {
		if closeErr := f.Close(); closeErr != nil {
			d.logger.Warn("failed to close file after decode error", slog.Any("error", closeErr))
		}
		return nil, err
	}

	if err := d.ensureSpeaker(format.SampleRate); err != nil {
		if closeErr := streamer.Close(); closeErr != nil {
			d.logger.Warn("failed to close streamer after speaker error", slog.Any("error", closeErr))
		}
		if closeErr := f.Close(); closeErr != nil {
			d.logger.Warn("failed to close file after speaker error", slog.Any("error", closeErr))
		}
		return nil, domain.NewPlaybackError("speaker", track.SourceLocator, err.Error(), domain.ErrPlaybackFailed)
	}

	ps := &playbackStream{
		logger:     d.logger,
		streamer:   streamer,
		file:       f,
		onComplete: onComplete,
	}

	tap := &analysisTap{source: streamer, sink: sink}
	ctrl := &beep.Ctrl{Streamer: tap}

	speaker.Play(beep.Seq(ctrl, beep.Callback(ps.finished)))

	d.logger.Debug("playback started",
		slog.String("track", track.ID),
		slog.String("locator", track.SourceLocator))

	return ps, nil
}

// ensureSpeaker initializes the speaker, re-initializing when the sample
// rate changes.
func (d *Driver) ensureSpeaker(rate beep.SampleRate) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	bufferSize := rate.N(time.Second / 20)

	if !d.initialized {
		if err := speaker.Init(rate, bufferSize); err != nil {
			return err
		}
		d.initialized = true
		d.speakerRate = rate
		return nil
	}

	if d.speakerRate != rate {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
		if err := speaker.Init(rate, bufferSize); err != nil {
			return err
		}
		d.speakerRate = rate
		return nil
	}

	// Same rate: clear whatever was queued before.
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	return nil
}

// decode picks a codec by file extension.
func decode(f *os.File, locator string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(locator)) {
	case ".wav":
		s, format, err := wav.Decode(f)
		if err != nil {
			return nil, beep.Format{}, domain.NewPlaybackError("decode", locator, err.Error(), domain.ErrPlaybackFailed)
		}
		return s, format, nil
	case ".mp3":
		s, format, err := mp3.Decode(f)
		if err != nil {
			return nil, beep.Format{}, domain.NewPlaybackError("decode", locator, err.Error(), domain.ErrPlaybackFailed)
		}
		return s, format, nil
	case ".flac":
		s, format, err := flac.Decode(f)
		if err != nil {
			return nil, beep.Format{}, domain.NewPlaybackError("decode", locator, err.Error(), domain.ErrPlaybackFailed)
		}
		return s, format, nil
	default:
		return nil, beep.Format{}, domain.NewPlaybackError("decode", locator, "unknown extension", domain.ErrUnsupportedFormat)
	}
}

// playbackStream is one playing track. Stop and the natural-completion
// callback can race; the stopped flag makes whichever runs first win
// and the loser a no-op.
type playbackStream struct {
	logger     *slog.Logger
	onComplete func()

	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	file     *os.File
	stopped  bool
}

// Stop detaches the completion hook, halts playback, and releases the
// decoder and file. Idempotent.
func (s *playbackStream) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	// Detach before pausing so the end-of-track hook cannot fire for a
	// manual stop.
	s.stopped = true
	s.mu.Unlock()

	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()

	s.releaseResources()
	return nil
}

// finished is the end-of-track hook invoked from the speaker goroutine.
func (s *playbackStream) finished() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	s.releaseResources()

	if s.onComplete != nil {
		s.onComplete()
	}
}

func (s *playbackStream) releaseResources() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer != nil {
		if err := s.streamer.Close(); err != nil {
			s.logger.Warn("failed to close streamer", slog.Any("error", err))
		}
		s.streamer = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			s.logger.Warn("failed to close file", slog.Any("error", err))
		}
		s.file = nil
	}
}

// Verify interface implementation at compile time.
var _ ports.PlaybackDriver = (*Driver)(nil)
