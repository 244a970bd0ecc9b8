package dictation

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tshuldberg/WyVoice/internal/types"
	"github.com/tshuldberg/WyVoice/transcript"
)

const (
	// defaultRecognitionTimeout bounds a single transcription run.
	defaultRecognitionTimeout = 30 * time.Second
	// defaultPasteDelay gives the clipboard write time to settle before the
	// paste keystroke is sent.
	defaultPasteDelay = 150 * time.Millisecond
	// defaultRestoreDelay gives the paste time to land before the previous
	// clipboard contents come back.
	defaultRestoreDelay = 300 * time.Millisecond

	// transcribingStatus is shown while recognition runs.
	transcribingStatus = "Transcribing..."
)

// Options wires a Controller's collaborators.
type Options struct {
	Capture     Capturer
	Recognizer  Recognizer
	Deliverer   Deliverer
	Sink        Sink
	Permissions Permissions
	// Snapshot yields the settings a new session locks in at start.
	Snapshot func() types.Snapshot
	// Enhance, when set, rewrites the formatted transcript before delivery.
	// Failures are logged and the unenhanced text is delivered.
	Enhance func(ctx context.Context, text string) (string, error)
	// Record, when set, persists a delivered transcript. Failures never
	// affect the session.
	Record func(text string)
}

// Controller owns the dictation state machine. Sessions move
// idle -> recording -> stopping -> idle; Toggle advances the machine and
// Cancel abandons the session from any non-idle state.
type Controller struct {
	capture  Capturer
	recog    Recognizer
	deliver  Deliverer
	sink     Sink
	perms    Permissions
	snapshot func() types.Snapshot
	enhance  func(ctx context.Context, text string) (string, error)
	record   func(text string)
	watchdog *watchdog

	// Overridable in tests; fixed session bounds otherwise.
	recognitionTimeout time.Duration
	pasteDelay         time.Duration
	restoreDelay       time.Duration

	mu         sync.Mutex
	state      types.State
	session    types.Snapshot
	finishing  bool
	micGranted bool
}

// NewController creates an idle Controller.
func NewController(opts Options) *Controller {
	c := &Controller{
		capture:            opts.Capture,
		recog:              opts.Recognizer,
		deliver:            opts.Deliverer,
		sink:               opts.Sink,
		perms:              opts.Permissions,
		snapshot:           opts.Snapshot,
		enhance:            opts.Enhance,
		record:             opts.Record,
		recognitionTimeout: defaultRecognitionTimeout,
		pasteDelay:         defaultPasteDelay,
		restoreDelay:       defaultRestoreDelay,
		state:              types.StateIdle,
	}
	c.watchdog = newWatchdog(func() { c.stop(true) })
	return c
}

// State reports the current session state.
func (c *Controller) State() types.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle starts a session when idle and stops one when recording. While a
// session is already winding down it does nothing.
func (c *Controller) Toggle() {
	switch c.State() {
	case types.StateIdle:
		c.start()
	case types.StateRecording:
		c.stop(false)
	}
}

// Cancel abandons the current session without delivering anything. Idle is a
// no-op. A session already in recognition is not interrupted, but its result
// is discarded.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.state == types.StateIdle {
		c.mu.Unlock()
		return
	}
	c.state = types.StateIdle
	c.finishing = false
	c.mu.Unlock()

	c.watchdog.Halt()
	c.capture.Cancel()
	c.sink.Cancel()
	slog.Info("session cancelled")
}

func (c *Controller) start() {
	c.mu.Lock()
	if c.state != types.StateIdle {
		c.mu.Unlock()
		return
	}
	if !c.micGranted {
		c.mu.Unlock()
		if !c.perms.RequestMicrophone() {
			c.sink.Error("microphone access denied")
			return
		}
		c.mu.Lock()
		c.micGranted = true
		if c.state != types.StateIdle {
			c.mu.Unlock()
			return
		}
	}
	c.session = c.snapshot()
	c.finishing = false
	c.state = types.StateRecording
	sess := c.session
	c.mu.Unlock()

	if err := c.capture.Start(c.onLevel, c.onCaptureError); err != nil {
		slog.Error("capture start failed", "error", err)
		c.reset()
		c.sink.Error("could not start recording: " + err.Error())
		return
	}

	c.sink.Start()
	c.watchdog.Begin(time.Duration(sess.AutoStopPauseMs)*time.Millisecond, sess.SilenceThreshold)
	slog.Info("session started",
		"pause_ms", sess.AutoStopPauseMs,
		"threshold", sess.SilenceThreshold,
		"formatting", sess.FormattingMode)
}

func (c *Controller) stop(auto bool) {
	c.mu.Lock()
	if c.state != types.StateRecording {
		c.mu.Unlock()
		return
	}
	c.state = types.StateStopping
	sess := c.session
	c.mu.Unlock()

	c.watchdog.Halt()
	c.sink.PartialText(transcribingStatus)
	slog.Info("session stopping", "auto", auto)
	go c.finish(sess)
}

// finish runs the back half of a session: collect the WAV, transcribe, format,
// and deliver. Every outcome re-checks state through claimFinish, so a cancel
// issued while the stop is in flight leaves Cancel as the session's last sink
// event.
func (c *Controller) finish(sess types.Snapshot) {
	art := c.capture.Stop()
	if art == nil {
		slog.Info("no audio captured")
		if c.claimFinish() {
			c.reset()
		}
		return
	}
	defer art.Discard()

	ctx, cancel := context.WithTimeout(context.Background(), c.recognitionTimeout)
	defer cancel()
	text, err := c.recog.Transcribe(ctx, art.Path, sess.Language)
	if err != nil {
		slog.Error("transcription failed", "error", err)
		if c.claimFinish() {
			c.reset()
			c.sink.Error("transcription failed: " + err.Error())
		}
		return
	}
	if strings.TrimSpace(text) == "" {
		slog.Info("empty transcript")
		if c.claimFinish() {
			c.reset()
			c.sink.Error("no speech detected")
		}
		return
	}

	final := transcript.Format(text, sess.FormattingMode)
	if c.enhance != nil && final != "" {
		if enhanced, err := c.enhance(ctx, final); err != nil {
			slog.Warn("transcript enhancement failed", "error", err)
		} else if enhanced != "" {
			final = enhanced
		}
	}

	if !c.claimFinish() {
		return
	}

	if final != "" {
		c.deliverText(final)
		if c.record != nil {
			c.record(final)
		}
	}
	c.reset()
	c.sink.Stop(final)
	slog.Info("session finished", "chars", len(final))
}

// deliverText pastes into the active application, then puts the user's
// previous clipboard contents back.
func (c *Controller) deliverText(text string) {
	previous, err := c.deliver.Snapshot()
	if err != nil {
		slog.Warn("clipboard snapshot failed", "error", err)
		previous = ""
	}
	if err := c.deliver.Write(text); err != nil {
		slog.Error("clipboard write failed", "error", err)
		c.sink.Error("could not write to clipboard")
		return
	}
	time.Sleep(c.pasteDelay)
	if err := c.deliver.Paste(); err != nil {
		slog.Error("paste failed", "error", err)
	}
	time.Sleep(c.restoreDelay)
	if err := c.deliver.Restore(previous); err != nil {
		slog.Warn("clipboard restore failed", "error", err)
	}
}

func (c *Controller) onLevel(level float64) {
	c.sink.AudioLevel(level)
	c.watchdog.Feed(level)
}

// onCaptureError tears the session down. The capture layer has already
// resolved any pending stop with no payload.
func (c *Controller) onCaptureError(msg string) {
	c.watchdog.Halt()
	c.reset()
	c.sink.Error(msg)
}

// claimFinish marks the session as delivering its outcome. It fails when the
// session was cancelled out of Stopping or another path already claimed it;
// the caller must then emit nothing further.
func (c *Controller) claimFinish() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != types.StateStopping || c.finishing {
		return false
	}
	c.finishing = true
	return true
}

func (c *Controller) reset() {
	c.mu.Lock()
	c.state = types.StateIdle
	c.finishing = false
	c.mu.Unlock()
}
