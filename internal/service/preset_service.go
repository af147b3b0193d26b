package service

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// PresetService fronts the preset persistence endpoint: it validates
// incoming JSON payloads and appends them to the store.
type PresetService struct {
	logger *slog.Logger
	repo   ports.PresetRepository
	bus    ports.EventBus
}

// NewPresetService creates a new preset service.
func NewPresetService(logger *slog.Logger, repo ports.PresetRepository, bus ports.EventBus) *PresetService {
	return &PresetService{
		logger: logger,
		repo:   repo,
		bus:    bus,
	}
}

// Save validates the payload and appends the preset record.
func (s *PresetService) Save(name string, payload json.RawMessage) error {
	if !json.Valid(payload) {
		return domain.ErrInvalidPreset
	}

	preset := domain.Preset{
		Name:    name,
		Payload: payload,
		SavedAt: time.Now(),
	}

	if err := s.repo.Append(preset); err != nil {
		return err
	}

	s.logger.Debug("preset saved", slog.String("name", name))
	s.bus.Publish(domain.NewPresetSavedEvent(preset))

	return nil
}

// List returns all stored presets in insertion order.
func (s *PresetService) List() []domain.Preset {
	return s.repo.List()
}
