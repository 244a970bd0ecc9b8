package audiocapture

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// defaultReadyTimeout bounds the wait for the engine's readiness
	// acknowledgment.
	defaultReadyTimeout = 2500 * time.Millisecond
	// defaultStopTimeout bounds the wait for the WAV payload after a stop
	// request.
	defaultStopTimeout = 3 * time.Second
)

// Artifact is a finished mono 16-bit PCM WAV recording on disk.
type Artifact struct {
	Path string
}

// Discard removes the artifact's temporary directory.
func (a *Artifact) Discard() {
	if a == nil || a.Path == "" {
		return
	}
	if err := os.RemoveAll(filepath.Dir(a.Path)); err != nil {
		slog.Warn("discard recording artifact", "path", a.Path, "error", err)
	}
}

// Coordinator drives the start/stop/cancel handshake with a capture Engine
// and produces at most one Artifact per recording.
type Coordinator struct {
	engine Engine

	// Overridable in tests; fixed handshake bounds otherwise.
	readyTimeout time.Duration
	stopTimeout  time.Duration

	mu       sync.Mutex
	deviceID string
	onLevel  func(float64)
	onError  func(string)

	// ready is non-nil while a start sequence awaits acknowledgment.
	ready chan struct{}
	// pendingStop is the single in-flight stop slot. A second stop while it
	// is occupied resolves nil immediately without side effects.
	pendingStop chan []byte

	done chan struct{}
}

// NewCoordinator creates a coordinator for the given engine and begins
// consuming its event stream.
func NewCoordinator(engine Engine) *Coordinator {
	c := &Coordinator{
		engine:       engine,
		readyTimeout: defaultReadyTimeout,
		stopTimeout:  defaultStopTimeout,
		done:         make(chan struct{}),
	}
	go c.dispatch()
	return c
}

// SetDevice selects the capture input device for subsequent recordings.
func (c *Coordinator) SetDevice(deviceID string) {
	c.mu.Lock()
	c.deviceID = deviceID
	c.mu.Unlock()
	c.engine.SetDevice(deviceID)
}

// Start begins a recording. onLevel receives loudness samples in [0, 1] and
// onError capture-side failures, both until the recording ends. Start blocks
// until the engine acknowledges readiness or the acknowledgment times out;
// a timeout is surfaced through onError rather than the return value.
func (c *Coordinator) Start(onLevel func(float64), onError func(string)) error {
	c.mu.Lock()
	c.onLevel = onLevel
	c.onError = onError
	ready := make(chan struct{})
	c.ready = ready
	deviceID := c.deviceID
	c.mu.Unlock()

	if err := c.engine.Start(deviceID); err != nil {
		c.clearReady()
		return fmt.Errorf("start capture engine: %w", err)
	}

	select {
	case <-ready:
	case <-time.After(c.readyTimeout):
		c.clearReady()
		slog.Error("capture readiness timed out", "timeout", c.readyTimeout)
		if onError != nil {
			onError("Audio capture did not become ready.")
		}
	}
	return nil
}

// Stop finishes the recording and returns the artifact, or nil when no
// usable audio was produced: a stop is already pending, the engine fails,
// the payload times out, or the payload is empty or malformed.
func (c *Coordinator) Stop() *Artifact {
	c.mu.Lock()
	if c.pendingStop != nil {
		c.mu.Unlock()
		return nil
	}
	pending := make(chan []byte, 1)
	c.pendingStop = pending
	c.mu.Unlock()

	c.engine.Stop()

	var payload []byte
	select {
	case payload = <-pending:
	case <-time.After(c.stopTimeout):
		slog.Warn("capture stop timed out", "timeout", c.stopTimeout)
		c.clearPending()
		return nil
	}

	if len(payload) <= wavHeaderSize {
		return nil
	}

	artifact, err := writeArtifact(payload)
	if err != nil {
		slog.Error("save recording", "error", err)
		return nil
	}
	return artifact
}

// Cancel discards the recording in progress. Any pending stop resolves nil.
// Safe to call from any state and idempotent.
func (c *Coordinator) Cancel() {
	c.engine.Cancel()
	c.resolvePending(nil)
}

// Close stops consuming engine events.
func (c *Coordinator) Close() {
	close(c.done)
}

// dispatch routes engine events to the registered callbacks and the pending
// stop slot, preserving arrival order.
func (c *Coordinator) dispatch() {
	events := c.engine.Events()
	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handle(ev)
		}
	}
}

func (c *Coordinator) handle(ev Event) {
	switch ev.Kind {
	case EventReady:
		c.mu.Lock()
		ready := c.ready
		c.ready = nil
		c.mu.Unlock()
		if ready != nil {
			close(ready)
		}

	case EventLevel:
		c.mu.Lock()
		onLevel := c.onLevel
		c.mu.Unlock()
		if onLevel != nil {
			onLevel(ev.Level)
		}

	case EventWAV:
		c.resolvePending(ev.WAV)

	case EventError:
		c.mu.Lock()
		onError := c.onError
		c.mu.Unlock()
		if onError != nil {
			onError(ev.Err)
		}
		// A capture failure also settles any stop in flight.
		c.resolvePending(nil)
	}
}

// resolvePending settles the in-flight stop slot exactly once.
func (c *Coordinator) resolvePending(payload []byte) {
	c.mu.Lock()
	pending := c.pendingStop
	c.pendingStop = nil
	c.mu.Unlock()
	if pending != nil {
		pending <- payload
	}
}

func (c *Coordinator) clearPending() {
	c.mu.Lock()
	c.pendingStop = nil
	c.mu.Unlock()
}

func (c *Coordinator) clearReady() {
	c.mu.Lock()
	c.ready = nil
	c.mu.Unlock()
}

func writeArtifact(payload []byte) (*Artifact, error) {
	dir, err := os.MkdirTemp("", "wyvoice-"+uuid.NewString()[:8])
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	path := filepath.Join(dir, "dictation.wav")
	if err := os.WriteFile(path, payload, 0600); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("write wav: %w", err)
	}

	return &Artifact{Path: path}, nil
}
