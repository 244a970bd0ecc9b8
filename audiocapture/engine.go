// Package audiocapture manages the handshake with the audio capture engine
// and turns its output into a finished recording artifact.
//
// The engine is a separate execution context that owns the microphone. The
// coordinator talks to it through directional signals: Start, Stop, Cancel
// and SetDevice go to the engine; Ready, Level, WAV and Error come back over
// a single event channel in arrival order. Exactly one WAV event (or a
// timeout) follows each Stop.
package audiocapture

import "errors"

// ErrAlreadyStarted is returned when Start is called on a running engine.
var ErrAlreadyStarted = errors.New("capture engine already started")

// EventKind identifies an engine-to-coordinator signal.
type EventKind int

const (
	// EventReady acknowledges that capture has started.
	EventReady EventKind = iota
	// EventLevel carries one loudness sample in [0, 1].
	EventLevel
	// EventWAV carries the finished recording in response to Stop. An empty
	// payload means no usable audio.
	EventWAV
	// EventError reports a capture-side failure.
	EventError
)

// Event is one engine-to-coordinator signal.
type Event struct {
	Kind  EventKind
	Level float64
	WAV   []byte
	Err   string
}

// Engine is the capture subsystem. Implementations run on their own
// goroutine and emit events on the channel returned by Events.
type Engine interface {
	// Start begins capturing from the given device ("" means default).
	// The engine acknowledges with a Ready event, or an Error event if the
	// microphone is unavailable.
	Start(deviceID string) error

	// Stop finishes the recording. The engine responds with exactly one WAV
	// event; an empty payload signals that nothing usable was captured.
	Stop()

	// Cancel discards the recording in progress. No WAV event follows.
	Cancel()

	// SetDevice selects the input device for the next Start.
	SetDevice(deviceID string)

	// Events returns the engine's signal stream.
	Events() <-chan Event
}
