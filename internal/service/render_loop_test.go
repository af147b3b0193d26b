package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rendermock "github.com/sumedhbadnore/harmonyviz/internal/adapter/render/mock"
	"github.com/sumedhbadnore/harmonyviz/internal/logger"
	"github.com/sumedhbadnore/harmonyviz/internal/testutil"
)

// staticSampler always returns the same frame.
type staticSampler struct {
	frame []byte
}

func (s *staticSampler) Sample() []byte {
	return s.frame
}

func TestRenderLoop_PaintsFrames(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	surface := rendermock.NewSurface()
	loop := NewRenderLoop(logger.NewTestLogger(), surface, time.Millisecond)

	sampler := &staticSampler{frame: []byte{1, 2, 3, 4}}
	loop.Start(sampler)
	defer loop.Stop()

	require.Eventually(t, func() bool {
		return surface.FrameCount() >= 3
	}, time.Second, time.Millisecond)

	assert.Equal(t, []byte{1, 2, 3, 4}, surface.LastFrame())
}

func TestRenderLoop_StartWhileRunningIgnored(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	surface := rendermock.NewSurface()
	loop := NewRenderLoop(logger.NewTestLogger(), surface, time.Millisecond)

	first := &staticSampler{frame: []byte{7}}
	second := &staticSampler{frame: []byte{9}}

	loop.Start(first)
	defer loop.Stop()

	// The second start must not spawn a competing loop
	loop.Start(second)

	require.Eventually(t, func() bool {
		return surface.FrameCount() >= 3
	}, time.Second, time.Millisecond)

	assert.True(t, loop.Running())
	assert.Equal(t, []byte{7}, surface.LastFrame())
}

func TestRenderLoop_StopWaitsForLoopExit(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	surface := rendermock.NewSurface()
	loop := NewRenderLoop(logger.NewTestLogger(), surface, time.Millisecond)

	loop.Start(&staticSampler{frame: []byte{1}})

	require.Eventually(t, func() bool {
		return surface.FrameCount() >= 1
	}, time.Second, time.Millisecond)

	loop.Stop()
	assert.False(t, loop.Running())

	// No frames arrive once Stop has returned
	painted := surface.FrameCount()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, painted, surface.FrameCount())
}

func TestRenderLoop_StopIdempotent(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	surface := rendermock.NewSurface()
	loop := NewRenderLoop(logger.NewTestLogger(), surface, time.Millisecond)

	// Stop without a start is a no-op
	loop.Stop()

	loop.Start(&staticSampler{frame: []byte{1}})
	loop.Stop()
	loop.Stop()

	assert.False(t, loop.Running())
}

func TestRenderLoop_Restart(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	surface := rendermock.NewSurface()
	loop := NewRenderLoop(logger.NewTestLogger(), surface, time.Millisecond)

	loop.Start(&staticSampler{frame: []byte{1}})
	loop.Stop()

	loop.Start(&staticSampler{frame: []byte{2}})
	defer loop.Stop()

	require.Eventually(t, func() bool {
		return len(surface.LastFrame()) == 1 && surface.LastFrame()[0] == 2
	}, time.Second, time.Millisecond)
}
