// Package hotkey listens for the global dictation shortcut.
package hotkey

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"
)

// DefaultChord is the toggle shortcut used when none is configured.
const DefaultChord = "ctrl+shift+space"

// Manager owns the global keyboard hook. The configured chord toggles
// dictation and Escape cancels the active session. Callbacks run on their own
// goroutines so the hook loop is never blocked.
type Manager struct {
	onToggle func()
	onCancel func()

	mu      sync.Mutex
	chord   []string
	started bool
}

// NewManager creates a Manager with the default chord.
func NewManager(onToggle, onCancel func()) *Manager {
	return &Manager{
		onToggle: onToggle,
		onCancel: onCancel,
		chord:    parseChord(DefaultChord),
	}
}

// SetChord replaces the toggle shortcut. Must be called before Start.
func (m *Manager) SetChord(chord string) error {
	keys := parseChord(chord)
	if len(keys) == 0 {
		return fmt.Errorf("empty hotkey chord %q", chord)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return fmt.Errorf("hotkey already started")
	}
	m.chord = keys
	return nil
}

// Start registers the hooks and runs the event loop until Stop.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return fmt.Errorf("hotkey already started")
	}

	hook.Register(hook.KeyDown, m.chord, func(hook.Event) {
		go m.onToggle()
	})
	hook.Register(hook.KeyDown, []string{"esc"}, func(hook.Event) {
		go m.onCancel()
	})

	events := hook.Start()
	go func() {
		<-hook.Process(events)
		slog.Info("hotkey listener stopped")
	}()

	m.started = true
	slog.Info("hotkey listener started", "chord", strings.Join(m.chord, "+"))
	return nil
}

// Stop tears down the keyboard hook.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}
	hook.End()
	m.started = false
}

// parseChord splits "ctrl+shift+space" into the key names gohook expects.
// Common aliases are normalized; empty segments are dropped.
func parseChord(chord string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(chord), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "cmd", "command", "super", "win":
			part = "cmd"
		case "control":
			part = "ctrl"
		case "option":
			part = "alt"
		case "escape":
			part = "esc"
		}
		keys = append(keys, part)
	}
	return keys
}
