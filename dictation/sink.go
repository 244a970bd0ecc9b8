package dictation

import "log/slog"

// MultiSink fans every event out to each wrapped sink in order.
type MultiSink []Sink

func (m MultiSink) Start() {
	for _, s := range m {
		s.Start()
	}
}

func (m MultiSink) AudioLevel(level float64) {
	for _, s := range m {
		s.AudioLevel(level)
	}
}

func (m MultiSink) PartialText(text string) {
	for _, s := range m {
		s.PartialText(text)
	}
}

func (m MultiSink) Stop(finalText string) {
	for _, s := range m {
		s.Stop(finalText)
	}
}

func (m MultiSink) Cancel() {
	for _, s := range m {
		s.Cancel()
	}
}

func (m MultiSink) Error(msg string) {
	for _, s := range m {
		s.Error(msg)
	}
}

// LogSink records session events to the process log. Audio levels are
// dropped; they arrive many times a second.
type LogSink struct{}

func (LogSink) Start()                  { slog.Info("recording started") }
func (LogSink) AudioLevel(float64)      {}
func (LogSink) PartialText(text string) { slog.Debug("raw transcript", "chars", len(text)) }
func (LogSink) Stop(finalText string)   { slog.Info("recording stopped", "chars", len(finalText)) }
func (LogSink) Cancel()                 { slog.Info("recording cancelled") }
func (LogSink) Error(msg string)        { slog.Error("session error", "message", msg) }
