package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jayamurugan-31/zara/pkg/assistant"
)

type stubAI struct {
	reply string
}

func (s *stubAI) GetResponse(ctx context.Context, prompt string) (string, error) {
	return s.reply, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	app, err := assistant.New(
		assistant.Config{ExportDir: t.TempDir()},
		assistant.Collaborators{AI: &stubAI{reply: "வணக்கம்!"}},
	)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return NewServer(app, "0")
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var view StateView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Mode != "Standby" || view.Status != "Ready" || view.Listening {
		t.Errorf("view = %+v, want idle state", view)
	}
	if view.SessionID == "" {
		t.Error("session_id missing")
	}
}

func TestCommandEndpoint(t *testing.T) {
	s := newTestServer(t)

	body := bytes.NewBufferString(`{"command":"hello zara, how are you"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/command", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Reply != "வணக்கம்!" {
		t.Errorf("reply = %q", out.Reply)
	}

	if got := s.zara.Log().Len(); got != 2 {
		t.Errorf("log has %d entries, want user + assistant", got)
	}
}

func TestCommandEndpointEmpty(t *testing.T) {
	s := newTestServer(t)

	body := bytes.NewBufferString(`{"command":"   "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/command", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty command", resp.StatusCode)
	}
	if s.zara.Log().Len() != 0 {
		t.Error("empty command must not be logged")
	}
}

func TestConversationClear(t *testing.T) {
	s := newTestServer(t)

	if _, err := s.zara.Dispatcher().Dispatch(context.Background(), "hello there"); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	resp, err := s.app.Test(httptest.NewRequest(http.MethodPost, "/api/conversation/clear", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if s.zara.Log().Len() != 0 {
		t.Error("conversation not cleared")
	}

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/api/conversation", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var views []ConversationView
	if err := json.NewDecoder(resp.Body).Decode(&views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("conversation = %+v, want empty", views)
	}
}

func TestConversationExport(t *testing.T) {
	s := newTestServer(t)

	if _, err := s.zara.Dispatcher().Dispatch(context.Background(), "hello there"); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	resp, err := s.app.Test(httptest.NewRequest(http.MethodPost, "/api/conversation/export", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		File string `json:"file"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := os.Stat(out.File); err != nil {
		t.Errorf("export file not created: %v", err)
	}
}

func TestListenStopClearsFlag(t *testing.T) {
	s := newTestServer(t)
	s.zara.Session().SetListening(true)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodPost, "/api/listen/stop", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if s.zara.Session().Listening() {
		t.Error("listening flag still set after stop")
	}
}
