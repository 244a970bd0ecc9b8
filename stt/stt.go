// Package stt provides speech-to-text provider interface and implementations.
package stt

import (
	"context"
	"errors"
)

// Names of the built-in providers, as each reports from Name().
const (
	NameWhisperLocal = "whisper-local"
	NameWhisperAPI   = "whisper-api"
)

// ErrNoProvider is returned when no registered provider is ready.
var ErrNoProvider = errors.New("no speech provider is ready")

// Provider defines the interface for recognition engines. Implementations
// convert one finished WAV recording into transcript text.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// IsReady returns true if the provider can transcribe right now.
	IsReady() bool

	// Transcribe converts the WAV file at wavPath to text. language is a
	// two-letter code, or "auto" for engine-side detection. The context
	// carries the invocation deadline; expiry aborts the engine.
	Transcribe(ctx context.Context, wavPath, language string) (string, error)

	// Close releases resources held by the provider.
	Close() error
}

// Registry holds registered recognition providers.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider) {
	if _, ok := r.providers[p.Name()]; !ok {
		r.order = append(r.order, p.Name())
	}
	r.providers[p.Name()] = p
}

// Get returns a provider by name, or nil.
func (r *Registry) Get(name string) Provider {
	return r.providers[name]
}

// List returns all registered providers in registration order.
func (r *Registry) List() []Provider {
	result := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.providers[name])
	}
	return result
}

// Active returns the first ready provider, preferring the named one.
func (r *Registry) Active(preferred string) Provider {
	if p := r.providers[preferred]; p != nil && p.IsReady() {
		return p
	}
	for _, p := range r.List() {
		if p.IsReady() {
			return p
		}
	}
	return nil
}

// Close releases all providers.
func (r *Registry) Close() error {
	for _, p := range r.providers {
		if err := p.Close(); err != nil {
			return err
		}
	}
	return nil
}
