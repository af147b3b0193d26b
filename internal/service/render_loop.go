package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// defaultFrameInterval targets a 60 Hz display refresh.
const defaultFrameInterval = time.Second / 60

// FrequencySampler pulls the current magnitude-per-bin snapshot.
// The analysis node implements it.
type FrequencySampler interface {
	Sample() []byte
}

// RenderLoop drives the spectrum surface: one goroutine ticking at the
// frame interval, sampling the analyzer and painting a frame. At most
// one instance runs at a time; the lifecycle manager calls Stop before
// any Start and before any graph teardown that would invalidate the
// sampler.
type RenderLoop struct {
	logger   *slog.Logger
	surface  ports.Surface
	interval time.Duration

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewRenderLoop creates a render loop. A zero interval selects the
// 60 Hz default.
func NewRenderLoop(logger *slog.Logger, surface ports.Surface, interval time.Duration) *RenderLoop {
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	return &RenderLoop{
		logger:   logger,
		surface:  surface,
		interval: interval,
	}
}

// Start begins painting frames from the sampler. If a loop is already
// running the call is ignored; the lifecycle manager owns the
// stop-before-start ordering.
func (l *RenderLoop) Start(sampler FrequencySampler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		l.logger.Warn("render loop already running, start ignored")
		return
	}

	l.running = true
	l.stop = make(chan struct{})
	l.wg.Add(1)

	go l.run(sampler, l.stop)
}

// Stop cancels the loop and waits for the in-flight frame to finish, so
// the sampler is never read after teardown begins. Idempotent; safe to
// call when no loop is running.
func (l *RenderLoop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stop)
	l.mu.Unlock()

	l.wg.Wait()
}

// Running reports whether a loop instance is live.
func (l *RenderLoop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *RenderLoop) run(sampler FrequencySampler, stop chan struct{}) {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return

		case <-ticker.C:
			l.surface.DrawSpectrum(sampler.Sample())
		}
	}
}
