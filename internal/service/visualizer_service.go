// Package service provides business logic for the HarmonyViz visualizer.
package service

import (
	"log/slog"
	"sync"

	"github.com/sumedhbadnore/harmonyviz/internal/analysis"
	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// VisualizerService is the audio-graph lifecycle manager. It owns the
// analysis pipeline and routes exactly one active source (microphone or
// file track) through it, keeping the single render loop in sync with
// whichever graph is active.
//
// Concurrency: one mutex serializes all state. Device acquisition can
// block (the OS may prompt for microphone access), so start operations
// release the lock around it and guard reentrancy with a busy flag: a
// second start observed mid-sequence returns domain.ErrBusy. Stops are
// never rejected; a stop during a pending acquisition bumps the
// generation counter so the resuming start undoes its partial side
// effects instead of activating.
type VisualizerService struct {
	// Dependencies (injected)
	logger  *slog.Logger
	capture ports.CaptureDriver
	player  ports.PlaybackDriver
	surface ports.Surface
	bus     ports.EventBus
	loop    *RenderLoop

	// State
	mu          sync.Mutex
	busy        bool
	generation  uint64
	mode        domain.Mode
	analyzer    *analysis.Analyzer
	micStream   ports.CaptureStream
	fileStream  ports.PlaybackStream
	activeTrack *domain.Track
	lastError   string
}

// NewVisualizerService creates the lifecycle manager with its render loop.
func NewVisualizerService(
	logger *slog.Logger,
	capture ports.CaptureDriver,
	player ports.PlaybackDriver,
	surface ports.Surface,
	bus ports.EventBus,
) *VisualizerService {
	s := &VisualizerService{
		logger:  logger,
		capture: capture,
		player:  player,
		surface: surface,
		bus:     bus,
		loop:    NewRenderLoop(logger, surface, 0),
	}

	logger.Debug("visualizer service initialized")

	return s
}

// StartMicrophone tears down whatever source is active, acquires the
// capture stream, wires capture -> analysis -> render, and transitions
// to mic mode. On acquisition failure the state stays idle, the canvas
// is blanked, and the error is surfaced.
func (s *VisualizerService) StartMicrophone() error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	if s.mode == domain.ModeMic {
		s.mu.Unlock()
		return nil
	}

	// Teardown-before-setup: release the file graph (or a stale mic
	// graph) fully before acquiring anything new.
	s.teardownLocked()

	s.busy = true
	gen := s.generation
	analyzer := analysis.NewAnalyzer()
	s.mu.Unlock()

	s.logger.Debug("acquiring capture stream")

	// May block on the OS device/permission prompt. The lock is not held
	// here so stop calls stay responsive.
	stream, err := s.capture.Open(analyzer)

	s.mu.Lock()
	s.busy = false

	if err != nil {
		analyzer.Close()
		s.lastError = err.Error()
		s.surface.Blank()
		state := s.stateLocked()
		s.mu.Unlock()

		s.logger.Warn("capture acquisition failed", slog.Any("error", err))
		s.bus.Publish(domain.NewSourceErrorEvent(domain.SourceMicrophone, err))
		s.bus.Publish(domain.NewModeChangedEvent(state))
		return err
	}

	if gen != s.generation {
		// A stop arrived while the acquisition was pending. The hardware
		// track was acquired too late; release it instead of activating.
		s.mu.Unlock()

		s.logger.Debug("capture acquisition obsolete, releasing")
		if closeErr := stream.Close(); closeErr != nil {
			s.logger.Warn("failed to release obsolete capture stream", slog.Any("error", closeErr))
		}
		analyzer.Close()
		return nil
	}

	s.analyzer = analyzer
	s.micStream = stream
	s.mode = domain.ModeMic
	s.lastError = ""

	s.surface.Fit()
	s.surface.Blank()
	s.loop.Start(analyzer)

	state := s.stateLocked()
	s.mu.Unlock()

	s.logger.Debug("microphone graph active")
	s.bus.Publish(domain.NewMicStartedEvent())
	s.bus.Publish(domain.NewModeChangedEvent(state))
	return nil
}

// StopMicrophone stops the render loop, releases the hardware capture
// tracks and the analysis pipeline, blanks the canvas, and transitions
// to idle. Idempotent; also cancels a microphone start still waiting on
// device acquisition.
func (s *VisualizerService) StopMicrophone() error {
	s.mu.Lock()

	// Invalidate any acquisition in flight even if nothing is wired yet.
	s.generation++
	s.lastError = ""

	if s.mode != domain.ModeMic {
		s.mu.Unlock()
		return nil
	}

	s.teardownLocked()
	state := s.stateLocked()
	s.mu.Unlock()

	s.logger.Debug("microphone graph released")
	s.bus.Publish(domain.NewMicStoppedEvent())
	s.bus.Publish(domain.NewModeChangedEvent(state))
	return nil
}

// StartFile tears down the active source (microphone, or a previously
// playing track), binds the track's audio, wires file -> analysis ->
// render, and begins playback. On failure the partially built graph is
// released, the state returns to idle, and the error is surfaced. A
// natural end of track transitions to idle exactly once.
func (s *VisualizerService) StartFile(track domain.Track) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrBusy
	}

	s.teardownLocked()

	s.busy = true
	gen := s.generation
	analyzer := analysis.NewAnalyzer()
	completedEarly := false
	onComplete := func() {
		s.completeTrack(gen, track, &completedEarly)
	}
	s.mu.Unlock()

	s.logger.Debug("binding track", slog.String("track", track.ID))

	stream, err := s.player.Play(track, analyzer, onComplete)

	s.mu.Lock()
	s.busy = false

	if err != nil {
		analyzer.Close()
		s.lastError = err.Error()
		s.surface.Blank()
		state := s.stateLocked()
		s.mu.Unlock()

		s.logger.Warn("playback start failed",
			slog.String("track", track.ID),
			slog.Any("error", err))
		s.bus.Publish(domain.NewSourceErrorEvent(domain.SourceFile, err))
		s.bus.Publish(domain.NewModeChangedEvent(state))
		return err
	}

	if gen != s.generation {
		// A stop won the race during binding; undo instead of activating.
		s.mu.Unlock()

		s.logger.Debug("playback binding obsolete, releasing", slog.String("track", track.ID))
		if stopErr := stream.Stop(); stopErr != nil {
			s.logger.Warn("failed to release obsolete playback stream", slog.Any("error", stopErr))
		}
		analyzer.Close()
		return nil
	}

	if completedEarly {
		// The stream drained before activation finished. Finish the
		// transition here: the track started and completed, the state
		// stays idle.
		state := s.stateLocked()
		s.mu.Unlock()

		s.logger.Debug("track completed during activation", slog.String("track", track.ID))
		if stopErr := stream.Stop(); stopErr != nil {
			s.logger.Warn("failed to release completed playback stream", slog.Any("error", stopErr))
		}
		analyzer.Close()
		s.bus.Publish(domain.NewTrackStartedEvent(track))
		s.bus.Publish(domain.NewTrackCompletedEvent(track))
		s.bus.Publish(domain.NewModeChangedEvent(state))
		return nil
	}

	s.analyzer = analyzer
	s.fileStream = stream
	s.activeTrack = &track
	s.mode = domain.ModeFile
	s.lastError = ""

	s.surface.Fit()
	s.surface.Blank()
	s.loop.Start(analyzer)

	state := s.stateLocked()
	s.mu.Unlock()

	s.logger.Debug("file graph active", slog.String("track", track.ID))
	s.bus.Publish(domain.NewTrackStartedEvent(track))
	s.bus.Publish(domain.NewModeChangedEvent(state))
	return nil
}

// StopFile mirrors StopMicrophone for the file graph. The playback
// stream detaches its end-of-track hook before pausing, so a manual
// stop never triggers a spurious auto-idle transition.
func (s *VisualizerService) StopFile() error {
	s.mu.Lock()

	s.generation++
	s.lastError = ""

	if s.mode != domain.ModeFile {
		s.mu.Unlock()
		return nil
	}

	track := *s.activeTrack
	s.teardownLocked()
	state := s.stateLocked()
	s.mu.Unlock()

	s.logger.Debug("file graph released", slog.String("track", track.ID))
	s.bus.Publish(domain.NewTrackStoppedEvent(track))
	s.bus.Publish(domain.NewModeChangedEvent(state))
	return nil
}

// TeardownAll releases whichever graph is active. Used on full
// shutdown; safe to call from idle (no-op).
func (s *VisualizerService) TeardownAll() error {
	s.mu.Lock()

	s.generation++
	s.lastError = ""

	if s.mode == domain.ModeIdle {
		s.mu.Unlock()
		return nil
	}

	s.teardownLocked()
	state := s.stateLocked()
	s.mu.Unlock()

	s.logger.Debug("all graphs released")
	s.bus.Publish(domain.NewModeChangedEvent(state))
	return nil
}

// Status returns the read-only projection of the current state for the
// UI layer.
func (s *VisualizerService) Status() domain.ModeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Sampler returns the active analysis node, or nil when idle. Exposed
// for diagnostics; the render loop receives the sampler directly.
func (s *VisualizerService) Sampler() FrequencySampler {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.analyzer == nil {
		return nil
	}
	return s.analyzer
}

// completeTrack is the end-of-track hook. It runs on the playback
// driver's goroutine and re-enters through the same lock as direct
// calls; the generation check makes it a no-op when a manual stop or a
// newer start already tore the graph down. A completion that wins the
// race against its own StartFile re-acquiring the lock sets early
// instead, and StartFile finishes the idle transition.
func (s *VisualizerService) completeTrack(gen uint64, track domain.Track, early *bool) {
	s.mu.Lock()

	if s.generation != gen {
		s.mu.Unlock()
		return
	}

	if s.mode != domain.ModeFile {
		// The stream ended while its activation is still pending.
		*early = true
		s.mu.Unlock()
		return
	}

	s.teardownLocked()
	state := s.stateLocked()
	s.mu.Unlock()

	s.logger.Debug("track completed", slog.String("track", track.ID))
	s.bus.Publish(domain.NewTrackCompletedEvent(track))
	s.bus.Publish(domain.NewModeChangedEvent(state))
}

// teardownLocked releases the active graph: render loop first (so no
// frame reads a disconnected node), then source streams, then the
// analysis pipeline. Caller must hold the lock. Best-effort: release
// failures are logged, never propagated.
func (s *VisualizerService) teardownLocked() {
	s.generation++

	s.loop.Stop()

	if s.micStream != nil {
		if err := s.micStream.Close(); err != nil {
			s.logger.Warn("capture stream release failed", slog.Any("error", err))
		}
		s.micStream = nil
	}

	if s.fileStream != nil {
		if err := s.fileStream.Stop(); err != nil {
			s.logger.Warn("playback stream release failed", slog.Any("error", err))
		}
		s.fileStream = nil
	}

	if s.analyzer != nil {
		s.analyzer.Close()
		s.analyzer = nil
	}

	s.surface.Blank()
	s.activeTrack = nil
	s.lastError = ""
	s.mode = domain.ModeIdle
}

// stateLocked builds the ModeState projection. Caller must hold the lock.
func (s *VisualizerService) stateLocked() domain.ModeState {
	state := domain.ModeState{
		Mode:        s.mode,
		MicEngaged:  s.mode == domain.ModeMic,
		FileEngaged: s.mode == domain.ModeFile,
		LastError:   s.lastError,
	}
	if s.activeTrack != nil {
		track := *s.activeTrack
		state.ActiveTrack = &track
	}
	return state
}

// Verify that VisualizerService implements the expected interface patterns
var _ interface {
	StartMicrophone() error
	StopMicrophone() error
	StartFile(domain.Track) error
	StopFile() error
	TeardownAll() error
	Status() domain.ModeState
} = (*VisualizerService)(nil)
