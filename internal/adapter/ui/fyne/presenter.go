package fyne

import (
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/ncruces/zenity"

	playback "github.com/sumedhbadnore/harmonyviz/internal/adapter/playback/beep"
	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
	"github.com/sumedhbadnore/harmonyviz/internal/service"
)

// Presenter mediates between the window and the lifecycle service. All
// service calls run off the UI goroutine because starting the
// microphone can block on the OS permission prompt; the service's own
// busy guard handles rapid repeated clicks.
type Presenter struct {
	logger     *slog.Logger
	visualizer *service.VisualizerService
	catalog    ports.CatalogRepository
	bus        ports.EventBus
	window     *MainWindow

	subs []domain.SubscriptionID
}

// NewPresenter wires the presenter to the bus and populates the catalog.
func NewPresenter(
	logger *slog.Logger,
	visualizer *service.VisualizerService,
	catalog ports.CatalogRepository,
	bus ports.EventBus,
	window *MainWindow,
) *Presenter {
	p := &Presenter{
		logger:     logger,
		visualizer: visualizer,
		catalog:    catalog,
		bus:        bus,
		window:     window,
	}

	p.subs = append(p.subs,
		bus.Subscribe(domain.EventModeChanged, func(event domain.Event) {
			e := event.(domain.ModeChangedEvent)
			window.SetStatus(e.State)
		}),
	)

	window.SetCatalog(catalog.List())

	return p
}

// UseMicrophone switches to the microphone source.
func (p *Presenter) UseMicrophone() {
	go func() {
		if err := p.visualizer.StartMicrophone(); err != nil && !errors.Is(err, domain.ErrBusy) {
			p.logger.Warn("microphone start failed", slog.Any("error", err))
		}
	}()
}

// StopAll returns the visualizer to idle.
func (p *Presenter) StopAll() {
	go func() {
		if err := p.visualizer.TeardownAll(); err != nil {
			p.logger.Warn("teardown failed", slog.Any("error", err))
		}
	}()
}

// PlayTrack plays a catalog track by ID.
func (p *Presenter) PlayTrack(id string) {
	track, err := p.catalog.Get(id)
	if err != nil {
		p.logger.Warn("unknown track", slog.String("id", id))
		return
	}

	go func() {
		if err := p.visualizer.StartFile(track); err != nil && !errors.Is(err, domain.ErrBusy) {
			p.logger.Warn("track start failed",
				slog.String("id", id),
				slog.Any("error", err))
		}
	}()
}

// OpenFile lets the user pick a local audio file, adds it to the
// catalog, and plays it.
func (p *Presenter) OpenFile() {
	go func() {
		path, err := zenity.SelectFile(
			zenity.Title("Open Audio File"),
			zenity.FileFilters{{
				Name:     "Audio",
				Patterns: []string{"*.wav", "*.mp3", "*.flac"},
			}},
		)
		if err != nil {
			if !errors.Is(err, zenity.ErrCanceled) {
				p.logger.Warn("file selection failed", slog.Any("error", err))
			}
			return
		}

		track, err := playback.TrackFromFile(path)
		if err != nil {
			p.logger.Warn("failed to read file", slog.Any("error", err))
			return
		}

		p.catalog.Add(track)
		tracks := p.catalog.List()
		fyne.Do(func() {
			p.window.SetCatalog(tracks)
		})

		if err := p.visualizer.StartFile(track); err != nil && !errors.Is(err, domain.ErrBusy) {
			p.logger.Warn("track start failed", slog.Any("error", err))
		}
	}()
}

// Shutdown detaches the presenter from the event bus.
func (p *Presenter) Shutdown() {
	for _, id := range p.subs {
		p.bus.Unsubscribe(id)
	}
	p.subs = nil
}
