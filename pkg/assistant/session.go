package assistant

import (
	"sync"

	"github.com/google/uuid"
)

// Mode is the assistant's current high-level activity, visible to the
// presentation layer.
type Mode int

const (
	ModeStandby Mode = iota
	ModeVoiceInput
	ModeGesture
	ModeGif
	ModeMusic
	ModeTranslator
	ModeAIChat
)

// String returns the mode label shown in the dashboard.
func (m Mode) String() string {
	switch m {
	case ModeVoiceInput:
		return "Voice Input"
	case ModeGesture:
		return "Gesture Recognition"
	case ModeGif:
		return "GIF Display"
	case ModeMusic:
		return "Music Player"
	case ModeTranslator:
		return "Translator"
	case ModeAIChat:
		return "AI Chat"
	default:
		return "Standby"
	}
}

// Status is the assistant's processing state.
type Status int

const (
	StatusReady Status = iota
	StatusListening
	StatusProcessing
	StatusError
)

// String returns the status label shown in the dashboard.
func (s Status) String() string {
	switch s {
	case StatusListening:
		return "Listening"
	case StatusProcessing:
		return "Processing"
	case StatusError:
		return "Error"
	default:
		return "Ready"
	}
}

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	SessionID string
	Mode      Mode
	Status    Status
	Listening bool
}

// Session is the process-wide mutable assistant state. It is shared
// between the main request cycle and the background capture task, so
// every mutation happens under the lock and maintains the invariant
// that Listening implies StatusListening.
type Session struct {
	id string

	mu        sync.Mutex
	mode      Mode
	status    Status
	listening bool

	// onChange receives a snapshot after every mutation. Set once
	// during wiring, before any mutation happens.
	onChange func(Snapshot)
}

// NewSession creates a Session in (Standby, Ready, not listening).
func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// OnChange registers the state-change notification callback.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{SessionID: s.id, Mode: s.mode, Status: s.status, Listening: s.listening}
}

// SetMode changes the current mode.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.notifyLocked()
}

// SetStatus changes the processing status. Moving away from
// StatusListening clears the listening flag to keep the invariant.
func (s *Session) SetStatus(st Status) {
	s.mu.Lock()
	s.status = st
	if st != StatusListening {
		s.listening = false
	}
	s.notifyLocked()
}

// SetListening flips the listening flag. Enabling it forces
// StatusListening; disabling it returns a listening session to Ready.
func (s *Session) SetListening(v bool) {
	s.mu.Lock()
	s.listening = v
	if v {
		s.status = StatusListening
	} else if s.status == StatusListening {
		s.status = StatusReady
	}
	s.notifyLocked()
}

// Listening reports whether the session is currently listening. Mode
// loops poll this at the top of each iteration as their best-effort
// stop signal.
func (s *Session) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

// Reset returns the session to (Standby, Ready, not listening).
func (s *Session) Reset() {
	s.mu.Lock()
	s.mode = ModeStandby
	s.status = StatusReady
	s.listening = false
	s.notifyLocked()
}

// notifyLocked fires the change callback outside the lock and releases
// it. Callers must hold the lock.
func (s *Session) notifyLocked() {
	fn := s.onChange
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
