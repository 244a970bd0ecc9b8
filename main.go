package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tshuldberg/WyVoice/audiocapture"
	"github.com/tshuldberg/WyVoice/clipboard"
	"github.com/tshuldberg/WyVoice/config"
	"github.com/tshuldberg/WyVoice/dictation"
	"github.com/tshuldberg/WyVoice/hotkey"
	"github.com/tshuldberg/WyVoice/langdetect"
	"github.com/tshuldberg/WyVoice/llm"
	"github.com/tshuldberg/WyVoice/notify"
	"github.com/tshuldberg/WyVoice/recordlog"
	"github.com/tshuldberg/WyVoice/stt"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// App wires the dictation pipeline together and owns shutdown order.
type App struct {
	cfg         *config.Config
	engine      *audiocapture.MicEngine
	coord       *audiocapture.Coordinator
	sttRegistry *stt.Registry
	controller  *dictation.Controller
	hotkey      *hotkey.Manager
	history     *recordlog.Store
	detector    *langdetect.Detector
}

func NewApp() *App {
	return &App{}
}

// Init builds every collaborator from configuration.
func (a *App) Init() error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		cfg = config.Default()
	}
	a.cfg = cfg

	a.setupHistory()
	a.setupSTT()

	if err := a.setupCapture(); err != nil {
		return err
	}

	paster, err := clipboard.New()
	if err != nil {
		return err
	}

	a.detector = langdetect.New()

	opts := dictation.Options{
		Capture:     a.coord,
		Recognizer:  a.recognizer(),
		Deliverer:   paster,
		Sink:        dictation.MultiSink{dictation.LogSink{}, notify.New()},
		Permissions: audiocapture.MicAccess{},
		Snapshot:    a.cfg.Snapshot,
		Record:      a.recordTranscript,
	}
	if a.cfg.AIEnhancement && a.cfg.APIKey != "" {
		enhancer := llm.NewEnhancer(llm.NewCompleter(llm.Config{
			APIKey:  a.cfg.APIKey,
			BaseURL: a.cfg.APIBaseURL,
			Model:   "gpt-4o-mini",
		}))
		opts.Enhance = enhancer.Enhance
	}
	a.controller = dictation.NewController(opts)

	a.setupHotkey()
	return nil
}

// Shutdown tears the pipeline down in reverse dependency order.
func (a *App) Shutdown() {
	if a.hotkey != nil {
		a.hotkey.Stop()
	}
	if a.controller != nil {
		a.controller.Cancel()
	}
	if a.coord != nil {
		a.coord.Close()
	}
	if a.engine != nil {
		if err := a.engine.Close(); err != nil {
			slog.Error("close audio engine", "error", err)
		}
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			slog.Error("close record log", "error", err)
		}
	}
	if a.sttRegistry != nil {
		if err := a.sttRegistry.Close(); err != nil {
			slog.Error("close stt providers", "error", err)
		}
	}
}

func (a *App) setupHistory() {
	dir, err := config.Dir()
	if err != nil {
		slog.Error("resolve config dir", "error", err)
		return
	}
	store, err := recordlog.Open(filepath.Join(dir, "history"))
	if err != nil {
		slog.Error("open record log", "error", err)
		return
	}
	a.history = store
}

func (a *App) setupSTT() {
	a.sttRegistry = stt.NewRegistry()
	a.sttRegistry.Register(stt.NewWhisperLocal(stt.WhisperLocalConfig{
		BinPath:   a.cfg.WhisperCLI,
		ModelPath: a.cfg.WhisperModel,
	}))
	if a.cfg.APIKey != "" {
		a.sttRegistry.Register(stt.NewWhisperAPI(stt.WhisperAPIConfig{
			APIKey:  a.cfg.APIKey,
			BaseURL: a.cfg.APIBaseURL,
		}))
	}
}

func (a *App) setupCapture() error {
	engine, err := audiocapture.NewMicEngine()
	if err != nil {
		return err
	}
	a.engine = engine
	a.coord = audiocapture.NewCoordinator(engine)
	if a.cfg.DeviceID != "" {
		a.coord.SetDevice(a.cfg.DeviceID)
	}
	return nil
}

func (a *App) setupHotkey() {
	a.hotkey = hotkey.NewManager(
		func() { a.controller.Toggle() },
		func() { a.controller.Cancel() },
	)
	if err := a.hotkey.Start(); err != nil {
		slog.Error("start hotkey", "error", err)
	}
}

// recognizer adapts the registry so each session picks whichever provider is
// ready when it finishes.
func (a *App) recognizer() dictation.Recognizer {
	return recognizerFunc(func(ctx context.Context, wavPath, language string) (string, error) {
		provider := a.sttRegistry.Active(stt.NameWhisperLocal)
		if provider == nil {
			return "", stt.ErrNoProvider
		}
		return provider.Transcribe(ctx, wavPath, language)
	})
}

type recognizerFunc func(ctx context.Context, wavPath, language string) (string, error)

func (f recognizerFunc) Transcribe(ctx context.Context, wavPath, language string) (string, error) {
	return f(ctx, wavPath, language)
}

// recordTranscript appends a delivered transcript to the history, tagged with
// the detected language. Never fatal.
func (a *App) recordTranscript(text string) {
	if a.history == nil {
		return
	}
	lang := a.cfg.Language
	if lang == "" || lang == "auto" {
		lang, _ = a.detector.Detect(text)
	}
	if err := a.history.Append(text, lang); err != nil {
		slog.Error("record transcript", "error", err)
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	slog.Info("starting", "version", version, "commit", commit, "built", date)

	app := NewApp()
	if err := app.Init(); err != nil {
		slog.Error("init", "error", err)
		os.Exit(1)
	}
	defer app.Shutdown()

	slog.Info("ready",
		"formatting", app.cfg.FormattingMode,
		"pause_ms", app.cfg.AutoStopPauseMs,
		"threshold", app.cfg.SilenceThreshold)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")
}
