// Package domain defines domain-specific errors.
// These errors represent lifecycle failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrPermissionDenied is returned when capture-stream acquisition is refused.
	ErrPermissionDenied = errors.New("microphone permission denied")

	// ErrDeviceUnavailable is returned when no capture device can be opened.
	ErrDeviceUnavailable = errors.New("capture device unavailable")

	// ErrPlaybackFailed is returned when a track fails to decode or start.
	ErrPlaybackFailed = errors.New("playback failed")

	// ErrBusy is returned when a start operation arrives while another
	// start/stop sequence is still in flight.
	ErrBusy = errors.New("another source transition is in progress")

	// ErrTrackNotFound is returned when a requested track cannot be found.
	ErrTrackNotFound = errors.New("track not found")

	// ErrUnsupportedFormat is returned when an audio file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrInvalidTrack is returned when a track has no source locator.
	ErrInvalidTrack = errors.New("track has no source locator")

	// ErrInvalidPreset is returned when a preset payload is not valid JSON.
	ErrInvalidPreset = errors.New("preset payload is not valid JSON")

	// ErrBusClosed is returned when publishing on a closed event bus.
	ErrBusClosed = errors.New("event bus already closed")
)

// CaptureError represents a failure of the hardware capture driver.
type CaptureError struct {
	Op      string // Operation that failed (e.g., "open", "start")
	Device  string // Device description, if known
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *CaptureError) Error() string {
	if e.Device != "" {
		return fmt.Sprintf("capture %s failed on %q: %s", e.Op, e.Device, e.Message)
	}
	return fmt.Sprintf("capture %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *CaptureError) Unwrap() error {
	return e.Err
}

// NewCaptureError creates a new CaptureError.
func NewCaptureError(op, device, message string, err error) *CaptureError {
	return &CaptureError{
		Op:      op,
		Device:  device,
		Message: message,
		Err:     err,
	}
}

// PlaybackError represents a failure while binding or starting a track source.
type PlaybackError struct {
	Op      string // Operation that failed (e.g., "decode", "play")
	Locator string // Source locator of the track
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback %s failed for %q: %s", e.Op, e.Locator, e.Message)
}

// Unwrap returns the underlying error.
func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// NewPlaybackError creates a new PlaybackError.
func NewPlaybackError(op, locator, message string, err error) *PlaybackError {
	return &PlaybackError{
		Op:      op,
		Locator: locator,
		Message: message,
		Err:     err,
	}
}
