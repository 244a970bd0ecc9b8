package stt

import (
	"context"
	"testing"
)

type fakeProvider struct {
	name   string
	ready  bool
	closed bool
}

func (f *fakeProvider) Name() string  { return f.name }
func (f *fakeProvider) IsReady() bool { return f.ready }
func (f *fakeProvider) Transcribe(context.Context, string, string) (string, error) {
	return "", nil
}
func (f *fakeProvider) Close() error {
	f.closed = true
	return nil
}

func TestRegistryOrderAndLookup(t *testing.T) {
	r := NewRegistry()
	local := &fakeProvider{name: "whisper-local", ready: true}
	api := &fakeProvider{name: "whisper-api", ready: true}

	r.Register(local)
	r.Register(api)

	if got := r.Get("whisper-api"); got != api {
		t.Errorf("Get(whisper-api) = %v", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}

	list := r.List()
	if len(list) != 2 || list[0] != local || list[1] != api {
		t.Errorf("List() order wrong: %v", list)
	}
}

func TestRegistryActivePrefersNamedReadyProvider(t *testing.T) {
	tests := []struct {
		name       string
		localReady bool
		apiReady   bool
		preferred  string
		want       string
	}{
		{"preferred ready", true, true, "whisper-api", "whisper-api"},
		{"preferred not ready falls back", false, true, "whisper-local", "whisper-api"},
		{"unknown preferred falls back", true, false, "nope", "whisper-local"},
		{"none ready", false, false, "whisper-local", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Register(&fakeProvider{name: "whisper-local", ready: tt.localReady})
			r.Register(&fakeProvider{name: "whisper-api", ready: tt.apiReady})

			got := r.Active(tt.preferred)
			if tt.want == "" {
				if got != nil {
					t.Errorf("Active = %v, want nil", got)
				}
				return
			}
			if got == nil || got.Name() != tt.want {
				t.Errorf("Active = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestRegistryCloseClosesAll(t *testing.T) {
	r := NewRegistry()
	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b"}
	r.Register(a)
	r.Register(b)

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Errorf("providers not closed: a=%v b=%v", a.closed, b.closed)
	}
}

func TestWhisperArgs(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     []string
	}{
		{
			name:     "with language",
			language: "en",
			want:     []string{"-m", "/m/ggml.bin", "--no-timestamps", "-l", "en", "-f", "/tmp/d.wav"},
		},
		{
			name:     "auto passes through",
			language: "auto",
			want:     []string{"-m", "/m/ggml.bin", "--no-timestamps", "-l", "auto", "-f", "/tmp/d.wav"},
		},
		{
			name:     "empty language omits flag",
			language: "",
			want:     []string{"-m", "/m/ggml.bin", "--no-timestamps", "-f", "/tmp/d.wav"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := whisperArgs("/m/ggml.bin", "/tmp/d.wav", tt.language)
			if len(got) != len(tt.want) {
				t.Fatalf("args = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("args[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWhisperLocalNotReadyWithoutModel(t *testing.T) {
	w := NewWhisperLocal(WhisperLocalConfig{BinPath: "/bin/true", ModelPath: "/does/not/exist.bin"})
	if w.IsReady() {
		t.Error("provider must not be ready without a model file")
	}

	if _, err := w.Transcribe(context.Background(), "/tmp/d.wav", "en"); err == nil {
		t.Error("Transcribe must fail when not ready")
	}
}
