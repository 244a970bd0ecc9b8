package dictation

import (
	"sync"
	"time"
)

// defaultPollInterval is how often the watchdog checks for sustained silence.
const defaultPollInterval = 100 * time.Millisecond

// watchdog auto-stops a session after a configured stretch of silence. Levels
// at or above the threshold reset the clock; once the quiet period elapses the
// fire callback runs exactly once and the watchdog disarms itself.
type watchdog struct {
	interval time.Duration
	fire     func()

	mu        sync.Mutex
	threshold float64
	lastLoud  time.Time
	stop      chan struct{}
}

func newWatchdog(fire func()) *watchdog {
	return &watchdog{
		interval: defaultPollInterval,
		fire:     fire,
	}
}

// Begin arms the watchdog. A previous arm is halted first.
func (w *watchdog) Begin(pause time.Duration, threshold float64) {
	w.Halt()

	w.mu.Lock()
	w.threshold = threshold
	w.lastLoud = time.Now()
	stop := make(chan struct{})
	w.stop = stop
	w.mu.Unlock()

	go w.poll(pause, stop)
}

// Feed reports a capture level. Levels strictly above the threshold push the
// silence deadline out; a level exactly at the threshold counts as silence.
func (w *watchdog) Feed(level float64) {
	w.mu.Lock()
	if level > w.threshold {
		w.lastLoud = time.Now()
	}
	w.mu.Unlock()
}

// Halt disarms the watchdog. Safe to call when not armed.
func (w *watchdog) Halt() {
	w.mu.Lock()
	if w.stop != nil {
		close(w.stop)
		w.stop = nil
	}
	w.mu.Unlock()
}

func (w *watchdog) poll(pause time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.mu.Lock()
			quiet := time.Since(w.lastLoud)
			armed := w.stop == stop
			if armed && quiet >= pause {
				w.stop = nil
			}
			w.mu.Unlock()
			if !armed {
				return
			}
			if quiet >= pause {
				w.fire()
				return
			}
		}
	}
}
