// Package conversation maintains the assistant's conversation log: an
// append-only in-memory record of everything said by the user and the
// assistant, mirrored line-by-line into a durable text file.
//
// The on-disk log is an audit trail and is never truncated; Clear only
// empties the in-memory view.
package conversation

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Role identifies who produced a log entry.
type Role string

const (
	RoleUser      Role = "User"
	RoleAssistant Role = "Assistant"
)

// TimestampLayout is the format used for log lines and JSON export.
const TimestampLayout = "2006-01-02 15:04:05"

// Entry is a single conversation exchange.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Role      Role      `json:"role"`
	Message   string    `json:"message"`
}

// Log is the append-only conversation record. Safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	file    *os.File

	// now is the clock, injectable for tests.
	now func() time.Time
}

// Open creates a Log backed by the append-only file at path. If path is
// empty the log is memory-only.
func Open(path string) (*Log, error) {
	l := &Log{now: time.Now}
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("conversation: open log file: %w", err)
		}
		l.file = f
	}
	return l, nil
}

// Append records a message. The entry is appended to memory and, when a
// log file is configured, written as one line:
//
//	[2006-01-02 15:04:05] User: message
func (l *Log) Append(role Role, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{Timestamp: l.now(), Role: role, Message: message}
	l.entries = append(l.entries, entry)

	if l.file == nil {
		return nil
	}
	line := fmt.Sprintf("[%s] %s: %s\n", entry.Timestamp.Format(TimestampLayout), role, message)
	if _, err := l.file.WriteString(line); err != nil {
		return fmt.Errorf("conversation: write log line: %w", err)
	}
	return nil
}

// Entries returns a copy of the in-memory log in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of in-memory entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear empties the in-memory log. The on-disk file is untouched.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Close releases the underlying log file, if any.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
