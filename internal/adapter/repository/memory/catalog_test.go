package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

func seedTracks() []domain.Track {
	return []domain.Track{
		{ID: "track1", Title: "Song 1", SourceLocator: "/music/song1.mp3"},
		{ID: "track2", Title: "Song 2", SourceLocator: "/music/song2.flac"},
	}
}

func TestCatalogRepository_List(t *testing.T) {
	repo := NewCatalogRepository(seedTracks())

	tracks := repo.List()
	require.Len(t, tracks, 2)
	assert.Equal(t, "track1", tracks[0].ID)
	assert.Equal(t, "track2", tracks[1].ID)
}

func TestCatalogRepository_List_Empty(t *testing.T) {
	repo := NewCatalogRepository(nil)

	assert.Empty(t, repo.List())
}

func TestCatalogRepository_List_ReturnsCopy(t *testing.T) {
	repo := NewCatalogRepository(seedTracks())

	tracks := repo.List()
	tracks[0].Title = "Mutated"

	fresh, err := repo.Get("track1")
	require.NoError(t, err)
	assert.Equal(t, "Song 1", fresh.Title)
}

func TestCatalogRepository_Get(t *testing.T) {
	repo := NewCatalogRepository(seedTracks())

	track, err := repo.Get("track2")
	require.NoError(t, err)
	assert.Equal(t, "Song 2", track.Title)
	assert.Equal(t, "/music/song2.flac", track.SourceLocator)
}

func TestCatalogRepository_Get_NotFound(t *testing.T) {
	repo := NewCatalogRepository(seedTracks())

	_, err := repo.Get("nonexistent")
	assert.ErrorIs(t, err, domain.ErrTrackNotFound)
}

func TestCatalogRepository_Add(t *testing.T) {
	repo := NewCatalogRepository(seedTracks())

	repo.Add(domain.Track{ID: "track3", Title: "Song 3", SourceLocator: "/music/song3.wav"})

	require.Len(t, repo.List(), 3)

	track, err := repo.Get("track3")
	require.NoError(t, err)
	assert.Equal(t, "Song 3", track.Title)
}

func TestCatalogRepository_Add_ReplacesSameID(t *testing.T) {
	repo := NewCatalogRepository(seedTracks())

	repo.Add(domain.Track{ID: "track1", Title: "Updated Song", SourceLocator: "/music/updated.mp3"})

	// Same count, updated content, position preserved
	tracks := repo.List()
	require.Len(t, tracks, 2)
	assert.Equal(t, "track1", tracks[0].ID)
	assert.Equal(t, "Updated Song", tracks[0].Title)
}

func TestCatalogRepository_SeedIsolation(t *testing.T) {
	seed := seedTracks()
	repo := NewCatalogRepository(seed)

	// Mutating the seed slice must not affect the repository
	seed[0].Title = "Mutated"

	track, err := repo.Get("track1")
	require.NoError(t, err)
	assert.Equal(t, "Song 1", track.Title)
}
