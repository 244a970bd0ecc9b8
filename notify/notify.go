// Package notify surfaces session outcomes as desktop notifications.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

const appName = "WyVoice"

// maxPreviewLen caps how much transcript a notification shows.
const maxPreviewLen = 120

// Notifier is a presentation sink backed by desktop notifications. Only
// outcomes are shown; start, level and partial events are silent.
type Notifier struct{}

// New returns a Notifier.
func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Start()             {}
func (n *Notifier) AudioLevel(float64) {}
func (n *Notifier) PartialText(string) {}

// Stop shows the delivered transcript, truncated to a preview.
func (n *Notifier) Stop(finalText string) {
	if finalText == "" {
		return
	}
	n.post("Dictation pasted", preview(finalText))
}

func (n *Notifier) Cancel() {
	n.post("Dictation cancelled", "")
}

func (n *Notifier) Error(msg string) {
	if err := beeep.Alert(appName, msg, ""); err != nil {
		slog.Warn("notification failed", "error", err)
	}
}

func (n *Notifier) post(title, body string) {
	if err := beeep.Notify(appName+": "+title, body, ""); err != nil {
		slog.Warn("notification failed", "error", err)
	}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= maxPreviewLen {
		return text
	}
	return string(runes[:maxPreviewLen]) + "…"
}
