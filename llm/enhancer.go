package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// enhanceTimeout bounds a single enhancement call. The transcript is already
// delivered-quality without it, so the bound is tight.
const enhanceTimeout = 15 * time.Second

const enhanceSystemPrompt = "You clean up dictated text. Fix recognition " +
	"artifacts, misheard words and obvious punctuation mistakes, but keep " +
	"the author's wording, meaning and language. Reply with the corrected " +
	"text only."

// Enhancer rewrites formatted transcripts with a language model.
type Enhancer struct {
	completer Completer
}

// NewEnhancer wraps a Completer for transcript cleanup.
func NewEnhancer(completer Completer) *Enhancer {
	return &Enhancer{completer: completer}
}

// Enhance returns a cleaned-up version of text. The parent context is capped
// to the enhancement timeout.
func (e *Enhancer) Enhance(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, enhanceTimeout)
	defer cancel()

	result, err := e.completer.Complete(ctx, []Message{
		{Role: "system", Content: enhanceSystemPrompt},
		{Role: "user", Content: text},
	})
	if err != nil {
		return "", fmt.Errorf("enhance transcript: %w", err)
	}

	result = strings.TrimSpace(result)
	if result == "" {
		return "", fmt.Errorf("enhance transcript: empty completion")
	}
	return result, nil
}
