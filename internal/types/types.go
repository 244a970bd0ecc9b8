// Package types provides shared type definitions for the application.
package types

// FormattingMode selects how a raw transcript is restructured before delivery.
type FormattingMode string

const (
	// FormattingOff delivers the transcript verbatim, trimmed only.
	FormattingOff FormattingMode = "off"
	// FormattingBasic punctuates, capitalizes and splits long transcripts
	// into at most two paragraphs.
	FormattingBasic FormattingMode = "basic"
	// FormattingStructured additionally paragraphs on discourse markers.
	FormattingStructured FormattingMode = "structured"
)

// Valid reports whether m is one of the known modes.
func (m FormattingMode) Valid() bool {
	switch m {
	case FormattingOff, FormattingBasic, FormattingStructured:
		return true
	}
	return false
}

// State is the dictation session state machine.
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StateStopping  State = "stopping"
)

// Snapshot is the read-only view of the settings the dictation core consumes.
// A fresh snapshot is taken at the start of each step that needs one; the
// core never writes settings.
type Snapshot struct {
	AutoStopPauseMs  int
	SilenceThreshold float64
	FormattingMode   FormattingMode
	Language         string
}

// LogEntry is one finished dictation recorded in the history log.
type LogEntry struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"` // RFC 3339
	Date       string `json:"date"`      // YYYY-MM-DD key
	Transcript string `json:"transcript"`
	Language   string `json:"language,omitempty"`
}
