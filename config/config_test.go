package config

import (
	"encoding/json"
	"testing"

	"github.com/tshuldberg/WyVoice/internal/types"
)

func TestNormalizeClampsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "zero value falls back to defaults",
			in:   Config{},
			want: Config{
				AutoStopPauseMs:  3000,
				SilenceThreshold: 0.02,
				FormattingMode:   types.FormattingBasic,
				Language:         "en",
			},
		},
		{
			name: "out of range values replaced",
			in: Config{
				AutoStopPauseMs:  250,
				SilenceThreshold: 0.5,
				FormattingMode:   "fancy",
				Language:         "de",
			},
			want: Config{
				AutoStopPauseMs:  3000,
				SilenceThreshold: 0.02,
				FormattingMode:   types.FormattingBasic,
				Language:         "de",
			},
		},
		{
			name: "valid values untouched",
			in: Config{
				AutoStopPauseMs:  8000,
				SilenceThreshold: 0.08,
				FormattingMode:   types.FormattingStructured,
				Language:         "auto",
			},
			want: Config{
				AutoStopPauseMs:  8000,
				SilenceThreshold: 0.08,
				FormattingMode:   types.FormattingStructured,
				Language:         "auto",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.normalize()
			if got != tt.want {
				t.Errorf("normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeFromJSON(t *testing.T) {
	// A config written by an older build with values that are no longer
	// selectable must load as defaults, not fail.
	raw := `{"auto_stop_pause_ms": 4000, "silence_threshold": 0.025, "formatting_mode": "markdown"}`

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cfg.normalize()

	if cfg.AutoStopPauseMs != 3000 {
		t.Errorf("AutoStopPauseMs = %d, want 3000", cfg.AutoStopPauseMs)
	}
	if cfg.SilenceThreshold != 0.02 {
		t.Errorf("SilenceThreshold = %v, want 0.02", cfg.SilenceThreshold)
	}
	if cfg.FormattingMode != types.FormattingBasic {
		t.Errorf("FormattingMode = %q, want %q", cfg.FormattingMode, types.FormattingBasic)
	}
}

func TestSettersRejectUnknownValues(t *testing.T) {
	cfg := Default()

	if err := cfg.SetAutoStopPauseMs(4000); err == nil {
		t.Error("SetAutoStopPauseMs(4000) should fail")
	}
	if err := cfg.SetSilenceThreshold(0.5); err == nil {
		t.Error("SetSilenceThreshold(0.5) should fail")
	}
	if err := cfg.SetFormattingMode("fancy"); err == nil {
		t.Error(`SetFormattingMode("fancy") should fail`)
	}

	// Rejected values must not stick.
	if cfg.AutoStopPauseMs != 3000 || cfg.SilenceThreshold != 0.02 {
		t.Errorf("config mutated by rejected setter: %+v", cfg)
	}
}

func TestSnapshot(t *testing.T) {
	cfg := Default()
	cfg.Language = "auto"

	snap := cfg.Snapshot()
	if snap.AutoStopPauseMs != cfg.AutoStopPauseMs ||
		snap.SilenceThreshold != cfg.SilenceThreshold ||
		snap.FormattingMode != cfg.FormattingMode ||
		snap.Language != "auto" {
		t.Errorf("Snapshot() = %+v does not match config %+v", snap, cfg)
	}
}
