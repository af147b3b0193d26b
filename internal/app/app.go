// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	capturemock "github.com/sumedhbadnore/harmonyviz/internal/adapter/capture/mock"
	captureport "github.com/sumedhbadnore/harmonyviz/internal/adapter/capture/portaudio"
	"github.com/sumedhbadnore/harmonyviz/internal/adapter/eventbus"
	playbackbeep "github.com/sumedhbadnore/harmonyviz/internal/adapter/playback/beep"
	playbackmock "github.com/sumedhbadnore/harmonyviz/internal/adapter/playback/mock"
	renderfyne "github.com/sumedhbadnore/harmonyviz/internal/adapter/render/fyne"
	"github.com/sumedhbadnore/harmonyviz/internal/adapter/repository/memory"
	fyneui "github.com/sumedhbadnore/harmonyviz/internal/adapter/ui/fyne"
	"github.com/sumedhbadnore/harmonyviz/internal/config"
	"github.com/sumedhbadnore/harmonyviz/internal/logger"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
	"github.com/sumedhbadnore/harmonyviz/internal/service"
)

// Application is the root structure holding all dependencies, wired with
// constructor-based injection.
type Application struct {
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus ports.EventBus
	capture  ports.CaptureDriver
	playback ports.PlaybackDriver
	surface  *renderfyne.SpectrumSurface

	// Repositories
	catalogRepo ports.CatalogRepository
	presetRepo  ports.PresetRepository

	// Services
	visualizerService *service.VisualizerService
	presetService     *service.PresetService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	// terminateAudio releases the capture backend (nil with mock audio).
	terminateAudio func()
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// ConfigPath is the YAML configuration file ("" for defaults)
	ConfigPath string

	// UseMockAudio selects in-memory audio drivers (for testing)
	UseMockAudio bool

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// TestFyneApp allows injecting a test Fyne app (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:      "com.harmonyviz.app",
		ConfigPath: "config.yaml",
		LogLevel:   loggerCfg.Level,
	}
}

// NewApplication creates the application with all dependencies wired.
func NewApplication(appCfg Config) (*Application, error) {
	a := &Application{}

	if appCfg.TestFyneApp != nil {
		a.fyneApp = appCfg.TestFyneApp
	} else {
		a.fyneApp = fyneapp.NewWithID(appCfg.AppID)
	}

	a.logger = logger.NewLogger(logger.Config{
		Level:  appCfg.LogLevel,
		Format: "text",
	})

	cfg, err := config.Load(appCfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	a.logger = logger.NewLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.LogLevel, appCfg.LogLevel),
		Format: "text",
	})
	a.logger.Info("initializing application", slog.String("app_id", appCfg.AppID))

	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(a.logger.With(slog.String("component", "eventbus")))
	a.eventBus = syncBus

	if appCfg.UseMockAudio {
		a.capture = capturemock.NewDriver()
		a.playback = playbackmock.NewDriver()
	} else {
		captureDriver := captureport.NewDriver(
			a.logger.With(slog.String("driver", "portaudio")),
			cfg.Audio.SampleRate,
			cfg.Audio.FramesPerBuffer,
		)
		a.capture = captureDriver
		a.terminateAudio = captureDriver.Terminate
		a.playback = playbackbeep.NewDriver(a.logger.With(slog.String("driver", "beep")))
	}

	a.surface = renderfyne.NewSpectrumSurface()

	a.catalogRepo = memory.NewCatalogRepository(cfg.Catalog)
	a.presetRepo = memory.NewPresetRepository()

	a.visualizerService = service.NewVisualizerService(
		a.logger.With(slog.String("service", "visualizer")),
		a.capture,
		a.playback,
		a.surface,
		a.eventBus,
	)

	a.presetService = service.NewPresetService(
		a.logger.With(slog.String("service", "preset")),
		a.presetRepo,
		a.eventBus,
	)

	a.mainWindow = fyneui.NewMainWindow(a.fyneApp, a.surface)
	a.presenter = fyneui.NewPresenter(
		a.logger.With(slog.String("component", "presenter")),
		a.visualizerService,
		a.catalogRepo,
		a.eventBus,
		a.mainWindow,
	)
	a.mainWindow.SetPresenter(a.presenter)

	// Closing the window must release the audio graph before Run returns.
	a.mainWindow.SetOnBeforeClose(func() {
		if err := a.visualizerService.TeardownAll(); err != nil {
			a.logger.Warn("teardown on window close failed", slog.Any("error", err))
		}
	})

	return a, nil
}

// Visualizer exposes the lifecycle service (used by tests).
func (a *Application) Visualizer() *service.VisualizerService {
	return a.visualizerService
}

// Presets exposes the preset service (used by tests).
func (a *Application) Presets() *service.PresetService {
	return a.presetService
}

// Run starts the application and blocks until the window is closed.
func (a *Application) Run() {
	a.logger.Info("HarmonyViz started")
	a.mainWindow.ShowAndRun()
}

// Shutdown gracefully releases all resources, in reverse order of creation.
func (a *Application) Shutdown() {
	a.logger.Info("shutting down application")

	if a.presenter != nil {
		a.presenter.Shutdown()
	}

	if a.visualizerService != nil {
		if err := a.visualizerService.TeardownAll(); err != nil {
			a.logger.Warn("failed to tear down visualizer", slog.Any("error", err))
		}
	}

	if a.terminateAudio != nil {
		a.terminateAudio()
	}

	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	}

	a.logger.Info("application shutdown complete")
}
