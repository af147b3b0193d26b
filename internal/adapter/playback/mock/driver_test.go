package mock

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

type nullSink struct {
	pushes int32
}

func (s *nullSink) Push(samples []float32) {
	atomic.AddInt32(&s.pushes, 1)
}

func testTrack() domain.Track {
	return domain.Track{ID: "t1", Title: "Track", SourceLocator: "/music/t1.mp3"}
}

func TestDriver_Play(t *testing.T) {
	driver := NewDriver()

	_, err := driver.Play(testTrack(), &nullSink{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, driver.PlayingCount())
	assert.Equal(t, "t1", driver.LastStream().Track().ID)
}

func TestDriver_FailPlay(t *testing.T) {
	driver := NewDriver()
	driver.SetFailPlay(domain.ErrPlaybackFailed)

	_, err := driver.Play(testTrack(), &nullSink{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPlaybackFailed)
	assert.Nil(t, driver.LastStream())
}

func TestStream_StopDetachesHook(t *testing.T) {
	driver := NewDriver()

	var completions int32
	stream, err := driver.Play(testTrack(), &nullSink{}, func() {
		atomic.AddInt32(&completions, 1)
	})
	require.NoError(t, err)

	require.NoError(t, stream.Stop())
	assert.False(t, stream.(*Stream).Playing())
	assert.Equal(t, 0, driver.PlayingCount())

	// A late completion after a manual stop must not fire the hook
	stream.(*Stream).Complete()
	assert.Equal(t, int32(0), atomic.LoadInt32(&completions))
}

func TestStream_CompleteFiresOnce(t *testing.T) {
	driver := NewDriver()

	var completions int32
	stream, err := driver.Play(testTrack(), &nullSink{}, func() {
		atomic.AddInt32(&completions, 1)
	})
	require.NoError(t, err)

	mockStream := stream.(*Stream)
	mockStream.Complete()
	mockStream.Complete()

	assert.Equal(t, int32(1), atomic.LoadInt32(&completions))
	assert.False(t, mockStream.Playing())
}

func TestStream_EmitStopsAfterStop(t *testing.T) {
	driver := NewDriver()
	sink := &nullSink{}

	stream, err := driver.Play(testTrack(), sink, nil)
	require.NoError(t, err)

	mockStream := stream.(*Stream)
	mockStream.Emit([]float32{0.5})
	assert.Equal(t, int32(1), atomic.LoadInt32(&sink.pushes))

	require.NoError(t, stream.Stop())
	mockStream.Emit([]float32{0.5})
	assert.Equal(t, int32(1), atomic.LoadInt32(&sink.pushes))
}
