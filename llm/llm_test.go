package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAICompleterRoundTrip(t *testing.T) {
	var gotAuth string
	var gotReq openaiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{{Message: openaiMessage{Content: "cleaned text"}}},
		})
	}))
	defer srv.Close()

	c := NewCompleter(Config{
		APIKey:  "sk-test",
		BaseURL: srv.URL,
		Model:   "gpt-4o-mini",
	})

	got, err := c.Complete(context.Background(), []Message{
		{Role: "user", Content: "raw text"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "cleaned text" {
		t.Errorf("content = %q", got)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "raw text" {
		t.Errorf("messages = %v", gotReq.Messages)
	}
}

func TestOpenAICompleterAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewCompleter(Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-4o-mini"})
	if _, err := c.Complete(context.Background(), nil); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func TestOpenAICompleterNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openaiResponse{})
	}))
	defer srv.Close()

	c := NewCompleter(Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-4o-mini"})
	if _, err := c.Complete(context.Background(), nil); err == nil {
		t.Error("expected error on empty choices")
	}
}

type stubCompleter struct {
	reply string
	err   error
	got   []Message
}

func (s *stubCompleter) Complete(_ context.Context, messages []Message) (string, error) {
	s.got = messages
	return s.reply, s.err
}

func TestEnhancerSendsSystemPrompt(t *testing.T) {
	stub := &stubCompleter{reply: "  Fixed text.  "}
	e := NewEnhancer(stub)

	got, err := e.Enhance(context.Background(), "fixd text")
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	if got != "Fixed text." {
		t.Errorf("result = %q", got)
	}
	if len(stub.got) != 2 || stub.got[0].Role != "system" || stub.got[1].Content != "fixd text" {
		t.Errorf("messages = %v", stub.got)
	}
}

func TestEnhancerErrors(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCompleter
	}{
		{"completer failure", &stubCompleter{err: errors.New("offline")}},
		{"empty completion", &stubCompleter{reply: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnhancer(tt.stub)
			if _, err := e.Enhance(context.Background(), "text"); err == nil {
				t.Error("expected error")
			}
		})
	}
}
