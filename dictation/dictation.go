// Package dictation drives a dictation session end to end: capture,
// silence-based auto stop, recognition, transcript formatting, and delivery
// of the result into the frontmost application via the clipboard.
package dictation

import (
	"context"

	"github.com/tshuldberg/WyVoice/audiocapture"
)

// Capturer abstracts the microphone capture pipeline. A Stop that produces no
// usable audio returns nil.
type Capturer interface {
	Start(onLevel func(float64), onError func(string)) error
	Stop() *audiocapture.Artifact
	Cancel()
}

// Recognizer turns a WAV file into transcript text. Implementations must honor
// the context deadline.
type Recognizer interface {
	Transcribe(ctx context.Context, wavPath, language string) (string, error)
}

// Deliverer hands the final transcript to the active application. The caller
// snapshots the clipboard before writing and restores it after pasting.
type Deliverer interface {
	Snapshot() (string, error)
	Write(text string) error
	Paste() error
	Restore(text string) error
}

// Sink receives session lifecycle notifications for user-facing feedback.
type Sink interface {
	Start()
	AudioLevel(level float64)
	PartialText(text string)
	Stop(finalText string)
	Cancel()
	Error(msg string)
}

// Permissions gates microphone access. RequestMicrophone blocks until the
// user answers; the controller caches a grant for the process lifetime.
type Permissions interface {
	RequestMicrophone() bool
}
