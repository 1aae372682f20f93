package speech

import (
	"context"
	"sync"
)

// Mock implements Listener and Speaker for testing.
type Mock struct {
	mu sync.Mutex

	// Transcripts are returned by Listen in order. Once exhausted,
	// Listen returns ErrClosed.
	Transcripts []string
	next        int

	// Spoken captures everything passed to Speak.
	Spoken []string

	// Configurable behavior overrides.
	ListenFunc func(ctx context.Context) (string, error)
	SpeakFunc  func(ctx context.Context, text string) error
}

// NewMock creates a Mock that will replay the given transcripts.
func NewMock(transcripts ...string) *Mock {
	return &Mock{Transcripts: transcripts}
}

// Listen implements Listener.
func (m *Mock) Listen(ctx context.Context) (string, error) {
	if m.ListenFunc != nil {
		return m.ListenFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next >= len(m.Transcripts) {
		return "", ErrClosed
	}
	text := m.Transcripts[m.next]
	m.next++
	return text, nil
}

// Speak implements Speaker.
func (m *Mock) Speak(ctx context.Context, text string) error {
	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Spoken = append(m.Spoken, text)
	return nil
}

// SpokenMessages returns a copy of everything spoken so far.
func (m *Mock) SpokenMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Spoken))
	copy(out, m.Spoken)
	return out
}

var (
	_ Listener = (*Mock)(nil)
	_ Speaker  = (*Mock)(nil)
)
