package mock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

// collectingSink records every pushed block.
type collectingSink struct {
	mu     sync.Mutex
	blocks [][]float32
}

func (s *collectingSink) Push(samples []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	block := make([]float32, len(samples))
	copy(block, samples)
	s.blocks = append(s.blocks, block)
}

func (s *collectingSink) BlockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blocks)
}

func TestDriver_OpenAndClose(t *testing.T) {
	driver := NewDriver()

	stream, err := driver.Open(&collectingSink{})
	require.NoError(t, err)
	assert.Equal(t, 1, driver.OpenStreamCount())

	require.NoError(t, stream.Close())
	assert.Equal(t, 0, driver.OpenStreamCount())

	// Close is idempotent
	require.NoError(t, stream.Close())
}

func TestDriver_FailOpen(t *testing.T) {
	driver := NewDriver()
	driver.SetFailOpen(domain.ErrDeviceUnavailable)

	_, err := driver.Open(&collectingSink{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
	assert.Equal(t, 0, driver.OpenStreamCount())
}

func TestDriver_Emit(t *testing.T) {
	driver := NewDriver()
	sink := &collectingSink{}

	stream, err := driver.Open(sink)
	require.NoError(t, err)

	driver.Emit([]float32{0.1, 0.2, 0.3})
	assert.Equal(t, 1, sink.BlockCount())

	// Closed streams stop receiving
	require.NoError(t, stream.Close())
	driver.Emit([]float32{0.4})
	assert.Equal(t, 1, sink.BlockCount())
}

func TestDriver_BlockOpen(t *testing.T) {
	driver := NewDriver()

	release := driver.BlockOpen()

	opened := make(chan struct{})
	go func() {
		defer close(opened)
		_, err := driver.Open(&collectingSink{})
		assert.NoError(t, err)
	}()

	select {
	case <-opened:
		t.Fatal("Open returned before release")
	case <-time.After(10 * time.Millisecond):
	}

	release()

	select {
	case <-opened:
	case <-time.After(time.Second):
		t.Fatal("Open did not return after release")
	}

	// Release is idempotent
	release()
}
