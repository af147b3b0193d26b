package memory

import (
	"sync"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// PresetRepository implements ports.PresetRepository as an append-only
// in-memory list. Records are never mutated or deleted.
//
// Thread-safe: all operations protected by sync.RWMutex.
type PresetRepository struct {
	mu      sync.RWMutex
	presets []domain.Preset
}

// NewPresetRepository creates an empty preset store.
func NewPresetRepository() *PresetRepository {
	return &PresetRepository{}
}

// Append adds a preset record to the list.
func (r *PresetRepository) Append(preset domain.Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presets = append(r.presets, preset)
	return nil
}

// List returns all stored presets in insertion order.
func (r *PresetRepository) List() []domain.Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Preset, len(r.presets))
	copy(out, r.presets)
	return out
}

// Verify interface implementation at compile time.
var _ ports.PresetRepository = (*PresetRepository)(nil)
