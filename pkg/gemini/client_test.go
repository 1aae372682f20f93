package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func candidateResponse(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
			},
		},
	})
	return string(body)
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGetResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}
		w.Write([]byte(candidateResponse("* first point\n- second point\nplain line")))
	}))
	defer srv.Close()

	c, err := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	got, err := c.GetResponse(context.Background(), "hello")
	if err != nil {
		t.Fatalf("get response: %v", err)
	}
	want := "first point\nsecond point\nplain line"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateTamilToHindi(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Write([]byte(candidateResponse("  नमस्ते  ")))
	}))
	defer srv.Close()

	c, _ := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	got, err := c.TranslateTamilToHindi(context.Background(), "வணக்கம்")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "नमस्ते" {
		t.Errorf("got %q, want trimmed translation", got)
	}
	if !strings.Contains(gotPrompt, "வணக்கம்") || !strings.Contains(gotPrompt, "Tamil sentence to Hindi") {
		t.Errorf("unexpected prompt: %q", gotPrompt)
	}
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key invalid","code":403}}`))
	}))
	defer srv.Close()

	c, _ := NewClient("bad-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	if _, err := c.GetResponse(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"asterisk bullets", "* one\n* two", "one\ntwo"},
		{"dash bullets", "- one\n- two", "one\ntwo"},
		{"unicode bullets", "• one\n• two", "one\ntwo"},
		{"indented bullets", "  * one", "one"},
		{"untouched text", "hello there", "hello there"},
		{"mixed", "* bullet\nplain", "bullet\nplain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResponse(tt.input); got != tt.want {
				t.Errorf("CleanResponse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
