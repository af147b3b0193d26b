// Package ports define repository interfaces for data access abstraction.
package ports

import (
	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

// CatalogRepository supplies the ordered list of selectable preset tracks.
// The catalog is external input (configuration/UI), not part of the audio core.
//
// Thread-safety: Implementations must be thread-safe.
type CatalogRepository interface {
	// List returns all catalog tracks in their configured order.
	List() []domain.Track

	// Get retrieves a track by ID.
	// Returns domain.ErrTrackNotFound if no track has that ID.
	Get(id string) (domain.Track, error)

	// Add appends a track to the catalog (used for user-picked files).
	// A track with a duplicate ID replaces the existing entry.
	Add(track domain.Track)
}

// PresetRepository is the append-only store behind the preset
// persistence endpoint. Records are arbitrary JSON; the store never
// mutates or deletes them.
//
// Thread-safety: Implementations must be thread-safe.
type PresetRepository interface {
	// Append adds a preset record to the list.
	Append(preset domain.Preset) error

	// List returns all stored presets in insertion order.
	List() []domain.Preset
}
