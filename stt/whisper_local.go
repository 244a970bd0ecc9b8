package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// WhisperLocal implements Provider using the whisper.cpp CLI. One process is
// spawned per transcription and bounded by the caller's context deadline.
type WhisperLocal struct {
	binPath   string
	modelPath string
}

// WhisperLocalConfig holds configuration for WhisperLocal.
type WhisperLocalConfig struct {
	BinPath   string // path to the whisper-cli binary; discovered when empty
	ModelPath string // path to the ggml model file
}

// NewWhisperLocal creates a WhisperLocal provider. A missing binary is not
// an error here; the provider simply reports not ready.
func NewWhisperLocal(cfg WhisperLocalConfig) *WhisperLocal {
	binPath := cfg.BinPath
	if binPath == "" {
		binPath = findWhisperBinary()
	}
	return &WhisperLocal{
		binPath:   binPath,
		modelPath: cfg.ModelPath,
	}
}

func (w *WhisperLocal) Name() string { return NameWhisperLocal }

func (w *WhisperLocal) IsReady() bool {
	if w.binPath == "" || w.modelPath == "" {
		return false
	}
	_, err := os.Stat(w.modelPath)
	return err == nil
}

// Transcribe runs whisper-cli on the WAV file and returns its stdout,
// trimmed. A non-zero exit or context expiry is an error carrying stderr.
func (w *WhisperLocal) Transcribe(ctx context.Context, wavPath, language string) (string, error) {
	if !w.IsReady() {
		return "", fmt.Errorf("whisper-cli not configured: binary=%q model=%q", w.binPath, w.modelPath)
	}

	args := whisperArgs(w.modelPath, wavPath, language)
	cmd := exec.CommandContext(ctx, w.binPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("whisper-cli timed out: %w", ctx.Err())
		}
		return "", fmt.Errorf("whisper-cli failed: %w, stderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (w *WhisperLocal) Close() error { return nil }

// whisperArgs builds the whisper-cli argument list. Timestamps are disabled
// so stdout is plain transcript text.
func whisperArgs(modelPath, wavPath, language string) []string {
	args := []string{"-m", modelPath, "--no-timestamps"}
	if language != "" {
		args = append(args, "-l", language)
	}
	return append(args, "-f", wavPath)
}

// findWhisperBinary locates whisper-cli on PATH or in common install
// locations. whisper-cli is the Homebrew name; older builds ship whisper-cpp.
func findWhisperBinary() string {
	names := []string{"whisper-cli", "whisper-cpp", "whisper", "main"}

	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	homeDir, _ := os.UserHomeDir()
	locations := []string{
		"/opt/homebrew/bin",
		"/usr/local/bin",
		filepath.Join(homeDir, ".local", "bin"),
		filepath.Join(homeDir, "whisper.cpp"),
	}

	for _, loc := range locations {
		for _, name := range names {
			path := filepath.Join(loc, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}
