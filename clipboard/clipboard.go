// Package clipboard delivers transcript text into the frontmost application.
// The text goes through the system clipboard and a synthesized paste
// keystroke; the previous clipboard contents are handed back to the caller so
// it can restore them afterwards.
package clipboard

import (
	"fmt"
	"runtime"

	atotto "github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"
)

// Paster implements clipboard delivery with a simulated paste shortcut,
// Cmd+V on macOS and Ctrl+V elsewhere.
type Paster struct {
	kb keybd_event.KeyBonding
}

// New prepares the paste keystroke. Fails when the platform has no way to
// synthesize keyboard input.
func New() (*Paster, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("init key synthesis: %w", err)
	}
	kb.SetKeys(keybd_event.VK_V)
	if runtime.GOOS == "darwin" {
		kb.HasSuper(true)
	} else {
		kb.HasCTRL(true)
	}
	return &Paster{kb: kb}, nil
}

// Snapshot returns the current clipboard contents.
func (p *Paster) Snapshot() (string, error) {
	text, err := atotto.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// Write places text on the clipboard.
func (p *Paster) Write(text string) error {
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Paste sends the paste keystroke to the active application.
func (p *Paster) Paste() error {
	if err := p.kb.Launching(); err != nil {
		return fmt.Errorf("send paste keystroke: %w", err)
	}
	return nil
}

// Restore puts earlier clipboard contents back.
func (p *Paster) Restore(text string) error {
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("restore clipboard: %w", err)
	}
	return nil
}
