// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the HarmonyViz audio visualizer.
package domain

import (
	"encoding/json"
	"time"
)

// Track represents one entry of the selectable track catalog.
type Track struct {
	// ID is a unique identifier for the track
	ID string `yaml:"id" json:"id"`

	// Title is the display title (from metadata or filename)
	Title string `yaml:"title" json:"title"`

	// Artist is the performing artist name (optional)
	Artist string `yaml:"artist,omitempty" json:"artist,omitempty"`

	// SourceLocator resolves to playable audio content (a file path)
	SourceLocator string `yaml:"source" json:"source"`
}

// Mode enumerates the visualizer's top-level states.
type Mode int

const (
	// ModeIdle indicates no source is wired and no render loop is running
	ModeIdle Mode = iota

	// ModeMic indicates the microphone graph is active
	ModeMic

	// ModeFile indicates a file/track graph is active
	ModeFile
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMic:
		return "mic"
	case ModeFile:
		return "file"
	default:
		return "unknown"
	}
}

// SourceKind identifies which variant of audio source an operation concerns.
type SourceKind int

const (
	// SourceMicrophone is the live hardware capture source
	SourceMicrophone SourceKind = iota

	// SourceFile is the decoded track playback source
	SourceFile
)

// String returns a human-readable representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceMicrophone:
		return "microphone"
	case SourceFile:
		return "file"
	default:
		return "unknown"
	}
}

// ModeState is the read-only projection of the lifecycle manager's state
// exposed to the UI layer. It carries no behavior of its own.
type ModeState struct {
	// Mode is the current top-level state
	Mode Mode

	// MicEngaged is true while the microphone graph is wired
	MicEngaged bool

	// FileEngaged is true while a file graph is wired
	FileEngaged bool

	// ActiveTrack is the currently playing track (nil unless Mode == ModeFile)
	ActiveTrack *Track

	// LastError is a human-readable message from the most recent failure,
	// empty when the last operation succeeded
	LastError string
}

// Preset is an arbitrary user preset record accepted by the preset store.
// The payload is opaque JSON; the store only validates well-formedness.
type Preset struct {
	// Name identifies the preset for display purposes
	Name string `json:"name"`

	// Payload is the preset body as raw JSON
	Payload json.RawMessage `json:"payload"`

	// SavedAt is when the preset was appended
	SavedAt time.Time `json:"saved_at"`
}

// Analysis constants shared by the sampler and its consumers.
const (
	// AnalysisWindowSize is the number of time-domain samples per transform.
	AnalysisWindowSize = 256

	// FrequencyBinCount is the number of magnitude bins per spectrum
	// snapshot (half the window size).
	FrequencyBinCount = AnalysisWindowSize / 2

	// AnalysisSmoothing is the exponential smoothing constant applied to
	// successive spectra to reduce flicker.
	AnalysisSmoothing = 0.8
)
