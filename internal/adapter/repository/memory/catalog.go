// Package memory provides in-memory repository implementations.
package memory

import (
	"sync"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
	"github.com/sumedhbadnore/harmonyviz/internal/ports"
)

// CatalogRepository implements ports.CatalogRepository with an ordered
// in-memory list seeded from configuration.
//
// Thread-safe: all operations protected by sync.RWMutex.
type CatalogRepository struct {
	mu     sync.RWMutex
	tracks []domain.Track
}

// NewCatalogRepository creates a catalog seeded with the given tracks.
func NewCatalogRepository(tracks []domain.Track) *CatalogRepository {
	seeded := make([]domain.Track, len(tracks))
	copy(seeded, tracks)
	return &CatalogRepository{tracks: seeded}
}

// List returns all catalog tracks in order.
func (r *CatalogRepository) List() []domain.Track {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Track, len(r.tracks))
	copy(out, r.tracks)
	return out
}

// Get retrieves a track by ID.
func (r *CatalogRepository) Get(id string) (domain.Track, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Track{}, domain.ErrTrackNotFound
}

// Add appends a track, replacing any existing entry with the same ID.
func (r *CatalogRepository) Add(track domain.Track) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tracks {
		if t.ID == track.ID {
			r.tracks[i] = track
			return
		}
	}
	r.tracks = append(r.tracks, track)
}

// Verify interface implementation at compile time.
var _ ports.CatalogRepository = (*CatalogRepository)(nil)
