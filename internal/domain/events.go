// Package domain defines events for the event-driven architecture.
// Services publish these on the event bus; the UI presenter consumes them.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Lifecycle events
	EventModeChanged EventType = "mode.changed"
	EventMicStarted  EventType = "mic.started"
	EventMicStopped  EventType = "mic.stopped"

	// Track events
	EventTrackStarted   EventType = "track.started"
	EventTrackStopped   EventType = "track.stopped"
	EventTrackCompleted EventType = "track.completed"

	// Error events
	EventSourceError EventType = "source.error"

	// Preset events
	EventPresetSaved EventType = "preset.saved"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// ModeChangedEvent is published on every transition of the lifecycle manager.
type ModeChangedEvent struct {
	baseEvent
	State ModeState
}

// Type returns the event type.
func (e ModeChangedEvent) Type() EventType {
	return EventModeChanged
}

// NewModeChangedEvent creates a new ModeChangedEvent.
func NewModeChangedEvent(state ModeState) ModeChangedEvent {
	return ModeChangedEvent{
		baseEvent: newBaseEvent(),
		State:     state,
	}
}

// MicStartedEvent is published when the microphone graph is wired and live.
type MicStartedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e MicStartedEvent) Type() EventType {
	return EventMicStarted
}

// NewMicStartedEvent creates a new MicStartedEvent.
func NewMicStartedEvent() MicStartedEvent {
	return MicStartedEvent{baseEvent: newBaseEvent()}
}

// MicStoppedEvent is published when the microphone graph is torn down.
type MicStoppedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e MicStoppedEvent) Type() EventType {
	return EventMicStopped
}

// NewMicStoppedEvent creates a new MicStoppedEvent.
func NewMicStoppedEvent() MicStoppedEvent {
	return MicStoppedEvent{baseEvent: newBaseEvent()}
}

// TrackStartedEvent is published when a file source begins playback.
type TrackStartedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackStartedEvent) Type() EventType {
	return EventTrackStarted
}

// NewTrackStartedEvent creates a new TrackStartedEvent.
func NewTrackStartedEvent(track Track) TrackStartedEvent {
	return TrackStartedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// TrackStoppedEvent is published when a file source is stopped manually.
type TrackStoppedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackStoppedEvent) Type() EventType {
	return EventTrackStopped
}

// NewTrackStoppedEvent creates a new TrackStoppedEvent.
func NewTrackStoppedEvent(track Track) TrackStoppedEvent {
	return TrackStoppedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// TrackCompletedEvent is published when a track finishes playing naturally.
type TrackCompletedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackCompletedEvent) Type() EventType {
	return EventTrackCompleted
}

// NewTrackCompletedEvent creates a new TrackCompletedEvent.
func NewTrackCompletedEvent(track Track) TrackCompletedEvent {
	return TrackCompletedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// SourceErrorEvent is published when a source fails to start or play.
type SourceErrorEvent struct {
	baseEvent
	Kind  SourceKind
	Error error
}

// Type returns the event type.
func (e SourceErrorEvent) Type() EventType {
	return EventSourceError
}

// NewSourceErrorEvent creates a new SourceErrorEvent.
func NewSourceErrorEvent(kind SourceKind, err error) SourceErrorEvent {
	return SourceErrorEvent{
		baseEvent: newBaseEvent(),
		Kind:      kind,
		Error:     err,
	}
}

// PresetSavedEvent is published when a preset is appended to the store.
type PresetSavedEvent struct {
	baseEvent
	Preset Preset
}

// Type returns the event type.
func (e PresetSavedEvent) Type() EventType {
	return EventPresetSaved
}

// NewPresetSavedEvent creates a new PresetSavedEvent.
func NewPresetSavedEvent(preset Preset) PresetSavedEvent {
	return PresetSavedEvent{
		baseEvent: newBaseEvent(),
		Preset:    preset,
	}
}
