package conversation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// exportDocument is the JSON export envelope.
type exportDocument struct {
	ExportTime   string        `json:"export_time"`
	Conversation []exportEntry `json:"conversation"`
}

type exportEntry struct {
	Timestamp string `json:"timestamp"`
	Role      Role   `json:"role"`
	Message   string `json:"message"`
}

// WriteJSON writes the current in-memory conversation to w as JSON:
//
//	{"export_time": <ISO-8601>, "conversation": [{timestamp, role, message}, ...]}
func (l *Log) WriteJSON(w io.Writer) error {
	l.mu.Lock()
	doc := exportDocument{
		ExportTime:   l.now().Format(time.RFC3339),
		Conversation: make([]exportEntry, 0, len(l.entries)),
	}
	for _, e := range l.entries {
		doc.Conversation = append(doc.Conversation, exportEntry{
			Timestamp: e.Timestamp.Format(TimestampLayout),
			Role:      e.Role,
			Message:   e.Message,
		})
	}
	l.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("conversation: encode export: %w", err)
	}
	return nil
}

// Export writes a JSON snapshot into dir and returns the created file
// path. File names carry a timestamp plus a short unique suffix so
// repeated exports within one second don't collide.
func (l *Log) Export(dir string) (string, error) {
	name := fmt.Sprintf("zara_conversation_%s_%s.json",
		l.now().Format("20060102_150405"), uuid.NewString()[:8])
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("conversation: create export file: %w", err)
	}
	defer f.Close()

	if err := l.WriteJSON(f); err != nil {
		return "", err
	}
	return path, nil
}
