package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	if err != nil {
		t.Fatalf("marshal completion: %v", err)
	}
	return b
}

func TestOpenAIProviderAnalyze(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write(completionBody(t, marshalPayload(t, validPayload())))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "gpt-4o-mini", "secret-key")
	got, err := p.Analyze(context.Background(), "testnet airdrop is live")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if gotAuth != "Bearer secret-key" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", gotReq.Model)
	}
	if gotReq.MaxTokens != maxOutputTokens || gotReq.Temperature != temperature {
		t.Fatalf("sampling params wrong: %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("message layout wrong: %+v", gotReq.Messages)
	}
	if got.Category != "Testnet Program" || got.PotentialScore != 8 {
		t.Fatalf("result wrong: %+v", got)
	}
}

func TestOpenAIProviderServerError(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"type": "server_error", "message": "overloaded"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "gpt-4o-mini", "k")
	if _, err := p.Analyze(context.Background(), "corpus"); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestOpenAIProviderMalformedCompletion(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	cases := map[string]http.HandlerFunc{
		"garbage body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		},
		"no choices": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		},
		"non-contract content": func(w http.ResponseWriter, r *http.Request) {
			w.Write(completionBody(t, "I'm sorry, I cannot help with that."))
		},
	}
	for name, handler := range cases {
		srv := httptest.NewServer(handler)
		p := NewOpenAIProvider(srv.URL, "gpt-4o-mini", "k")
		if _, err := p.Analyze(context.Background(), "corpus"); err == nil {
			t.Errorf("%s: expected error", name)
		}
		srv.Close()
	}
}

func TestOpenAIProviderUnreachable(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	// Reserve a port, then close it so the dial is refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewOpenAIProvider(url, "gpt-4o-mini", "k")
	if _, err := p.Analyze(context.Background(), "corpus"); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}
