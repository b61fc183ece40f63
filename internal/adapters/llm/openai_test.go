package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

// stubBackend fakes an OpenAI-compatible API. chatContent is returned as the
// single choice; chatStatus != 0 forces an HTTP error on chat calls.
type stubBackend struct {
	chatContent string
	chatStatus  int
	modelsFail  bool
	rawBody     string // when set, returned verbatim for chat calls
}

func (s *stubBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/models", func(w http.ResponseWriter, _ *http.Request) {
		if s.modelsFail {
			http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test-model","object":"model"}]}`))
	})
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, _ *http.Request) {
		if s.chatStatus != 0 {
			http.Error(w, `{"error":{"message":"boom"}}`, s.chatStatus)
			return
		}
		if s.rawBody != "" {
			_, _ = w.Write([]byte(s.rawBody))
			return
		}
		resp := map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": s.chatContent}, "finish_reason": "stop"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestAdapter(t *testing.T, backend *stubBackend) *Adapter {
	t.Helper()
	srv := backend.server(t)
	a, err := New(Config{
		Name:    "stub",
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestAdapter_Ping(t *testing.T) {
	ok := newTestAdapter(t, &stubBackend{})
	if err := ok.Ping(context.Background()); err != nil {
		t.Errorf("Ping() = %v, want nil", err)
	}

	bad := newTestAdapter(t, &stubBackend{modelsFail: true})
	err := bad.Ping(context.Background())
	if err == nil {
		t.Fatal("Ping() = nil, want unavailable error")
	}
	if core.CategoryOf(err) != core.ErrCatUnavailable {
		t.Errorf("category = %q, want %q", core.CategoryOf(err), core.ErrCatUnavailable)
	}
}

func TestAdapter_GenerateNextQuestion(t *testing.T) {
	backend := &stubBackend{
		chatContent: `{"done":false,"question":"How often does your team use AI tools?","answerType":"radio","options":["Daily","Weekly","Never"],"phaseName":"Adoption","reasoning":"baseline usage"}`,
	}
	a := newTestAdapter(t, backend)

	next, err := a.GenerateNextQuestion(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("GenerateNextQuestion error = %v", err)
	}
	if next.Done {
		t.Error("Done = true, want false")
	}
	if next.Question == "" || next.PhaseName != "Adoption" || len(next.Options) != 3 {
		t.Errorf("unexpected question: %+v", next)
	}
}

func TestAdapter_GenerateNextQuestion_FencedJSON(t *testing.T) {
	backend := &stubBackend{
		chatContent: "```json\n{\"done\":true}\n```",
	}
	a := newTestAdapter(t, backend)

	next, err := a.GenerateNextQuestion(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("GenerateNextQuestion error = %v", err)
	}
	if !next.Done {
		t.Error("Done = false, want true")
	}
}

func TestAdapter_GenerateNextQuestion_HTMLErrorPage(t *testing.T) {
	// A misbehaving gateway answers 200 with HTML. That is a format error,
	// never a silently accepted question.
	backend := &stubBackend{chatContent: "<html><body>502 Bad Gateway</body></html>"}
	a := newTestAdapter(t, backend)

	_, err := a.GenerateNextQuestion(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("error = nil, want bad_response")
	}
	if core.CategoryOf(err) != core.ErrCatBadResponse {
		t.Errorf("category = %q, want %q", core.CategoryOf(err), core.ErrCatBadResponse)
	}
}

func TestAdapter_GenerateNextQuestion_ContractViolation(t *testing.T) {
	// Valid JSON that still breaks the contract: done=false, no question.
	backend := &stubBackend{chatContent: `{"done":false}`}
	a := newTestAdapter(t, backend)

	_, err := a.GenerateNextQuestion(context.Background(), "sys", "user")
	if core.CategoryOf(err) != core.ErrCatBadResponse {
		t.Errorf("category = %q, want %q (err=%v)", core.CategoryOf(err), core.ErrCatBadResponse, err)
	}
}

func TestAdapter_GenerateReport(t *testing.T) {
	backend := &stubBackend{chatContent: "## Overall Tier: Dabbler\n\nSome text"}
	a := newTestAdapter(t, backend)

	md, err := a.GenerateReport(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("GenerateReport error = %v", err)
	}
	if md != "## Overall Tier: Dabbler\n\nSome text" {
		t.Errorf("markdown = %q", md)
	}
}

func TestAdapter_GenerateReport_HTTPError(t *testing.T) {
	backend := &stubBackend{chatStatus: http.StatusServiceUnavailable}
	a := newTestAdapter(t, backend)

	_, err := a.GenerateReport(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("error = nil, want unavailable")
	}
	var de *core.DomainError
	if !errors.As(err, &de) || de.Category != core.ErrCatUnavailable {
		t.Errorf("err = %v, want provider_unavailable DomainError", err)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"done":true}`, `{"done":true}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := ExtractJSON(tt.in); got != tt.want {
			t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{Model: "m"}); err == nil {
		t.Error("New without name = nil error")
	}
	if _, err := New(Config{Name: "p"}); err == nil {
		t.Error("New without model = nil error")
	}
}
