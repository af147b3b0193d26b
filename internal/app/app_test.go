package app

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := DefaultConfig()
	cfg.UseMockAudio = true
	cfg.ConfigPath = ""
	cfg.TestFyneApp = test.NewApp()

	application, err := NewApplication(cfg)
	require.NoError(t, err)
	require.NotNil(t, application)

	return application
}

func TestNewApplication(t *testing.T) {
	application := newTestApplication(t)
	defer application.Shutdown()

	assert.NotNil(t, application.Visualizer())
	assert.NotNil(t, application.Presets())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "com.harmonyviz.app", cfg.AppID)
	assert.Equal(t, "config.yaml", cfg.ConfigPath)
	assert.False(t, cfg.UseMockAudio)
}

func TestApplicationLifecycle(t *testing.T) {
	application := newTestApplication(t)

	// Run would normally block, but we're not calling it in test

	application.Shutdown()

	// Shutdown again should not panic
	application.Shutdown()
}

func TestApplicationWiredServices(t *testing.T) {
	application := newTestApplication(t)
	defer application.Shutdown()

	visualizer := application.Visualizer()

	// The full mock pipeline is wired end to end
	require.NoError(t, visualizer.StartMicrophone())
	assert.Equal(t, domain.ModeMic, visualizer.Status().Mode)

	require.NoError(t, visualizer.StopMicrophone())
	assert.Equal(t, domain.ModeIdle, visualizer.Status().Mode)
}
