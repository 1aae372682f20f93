package conversation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	ts := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestAppendOrder(t *testing.T) {
	l, err := Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	_ = l.Append(RoleUser, "vanakkam")
	_ = l.Append(RoleAssistant, "வணக்கம்! நான் ஜாரா.")
	_ = l.Append(RoleUser, "what is the time")

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Role != RoleUser || entries[0].Message != "vanakkam" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Role != RoleAssistant {
		t.Errorf("unexpected second entry role: %s", entries[1].Role)
	}
}

func TestAppendWritesLogLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation_log.txt")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer l.Close()
	l.now = fixedClock()

	if err := l.Append(RoleUser, "open gesture"); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	want := "[2025-06-01 10:30:00] User: open gesture\n"
	if string(data) != want {
		t.Errorf("log line = %q, want %q", string(data), want)
	}
}

func TestClearIsIdempotentAndLeavesDiskAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation_log.txt")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer l.Close()

	_ = l.Append(RoleUser, "hello")
	_ = l.Append(RoleAssistant, "hi there")

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("expected empty log after clear, got %d entries", l.Len())
	}

	// Second clear is a no-op.
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("expected empty log after second clear, got %d entries", l.Len())
	}

	// The durable file keeps both lines.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("expected 2 lines on disk, got %d", got)
	}

	// Appending after clear still reaches the file.
	_ = l.Append(RoleUser, "again")
	data, _ = os.ReadFile(path)
	if got := strings.Count(string(data), "\n"); got != 3 {
		t.Errorf("expected 3 lines on disk, got %d", got)
	}
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	l, err := Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l.now = fixedClock()

	_ = l.Append(RoleUser, "play lofi beats")
	_ = l.Append(RoleAssistant, "lofi beats Spotify இல் தேடுகிறேன்.")

	path, err := l.Export(dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "zara_conversation_20250601_103000_") {
		t.Errorf("unexpected export file name: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	var doc struct {
		ExportTime   string `json:"export_time"`
		Conversation []struct {
			Timestamp string `json:"timestamp"`
			Role      string `json:"role"`
			Message   string `json:"message"`
		} `json:"conversation"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}

	if doc.ExportTime == "" {
		t.Error("export_time missing")
	}
	if len(doc.Conversation) != 2 {
		t.Fatalf("expected 2 exported entries, got %d", len(doc.Conversation))
	}
	if doc.Conversation[0].Role != "User" || doc.Conversation[0].Message != "play lofi beats" {
		t.Errorf("unexpected first exported entry: %+v", doc.Conversation[0])
	}
	if doc.Conversation[0].Timestamp != "2025-06-01 10:30:00" {
		t.Errorf("unexpected timestamp format: %s", doc.Conversation[0].Timestamp)
	}
}
