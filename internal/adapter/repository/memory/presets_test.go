package memory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

func TestPresetRepository_AppendAndList(t *testing.T) {
	repo := NewPresetRepository()

	preset := domain.Preset{
		Name:    "warm bars",
		Payload: json.RawMessage(`{"hue":120,"fade":48}`),
		SavedAt: time.Now(),
	}

	err := repo.Append(preset)
	require.NoError(t, err)

	presets := repo.List()
	require.Len(t, presets, 1)
	assert.Equal(t, "warm bars", presets[0].Name)
	assert.JSONEq(t, `{"hue":120,"fade":48}`, string(presets[0].Payload))
}

func TestPresetRepository_List_Empty(t *testing.T) {
	repo := NewPresetRepository()

	assert.Empty(t, repo.List())
}

func TestPresetRepository_AppendOnly_PreservesOrder(t *testing.T) {
	repo := NewPresetRepository()

	require.NoError(t, repo.Append(domain.Preset{Name: "first", Payload: json.RawMessage(`{}`)}))
	require.NoError(t, repo.Append(domain.Preset{Name: "second", Payload: json.RawMessage(`{}`)}))
	require.NoError(t, repo.Append(domain.Preset{Name: "first", Payload: json.RawMessage(`{"v":2}`)}))

	// Duplicate names append a new record, nothing is overwritten
	presets := repo.List()
	require.Len(t, presets, 3)
	assert.Equal(t, "first", presets[0].Name)
	assert.Equal(t, "second", presets[1].Name)
	assert.Equal(t, "first", presets[2].Name)
	assert.JSONEq(t, `{"v":2}`, string(presets[2].Payload))
}

func TestPresetRepository_List_ReturnsCopy(t *testing.T) {
	repo := NewPresetRepository()

	require.NoError(t, repo.Append(domain.Preset{Name: "original", Payload: json.RawMessage(`{}`)}))

	presets := repo.List()
	presets[0].Name = "mutated"

	assert.Equal(t, "original", repo.List()[0].Name)
}
