// Package gesture launches the hand-gesture recognition window. The
// recognizer is a separate program with its own camera loop; the
// assistant only spawns it fire-and-forget and reports the outcome.
package gesture

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/jayamurugan-31/zara/internal/log"
)

// Status texts spoken to the user. The assistant addresses its
// operator in Tamil.
const (
	StatusOpened   = "கை சைகை விண்டோ திறக்கப்படுகிறது..."
	StatusNotFound = "கை சைகை கோப்பு காணவில்லை."
	StatusFailed   = "கை சைகை முறை செயல்படவில்லை."
)

// ErrScriptNotFound indicates the recognizer program is missing.
var ErrScriptNotFound = errors.New("gesture: recognizer script not found")

// Launcher spawns the external gesture recognizer.
type Launcher struct {
	// ScriptPath is the recognizer program to run.
	ScriptPath string

	// Interpreter runs the script; empty means execute ScriptPath
	// directly.
	Interpreter string

	// start launches the process without waiting; injectable for tests.
	start func(name string, args ...string) error
}

// NewLauncher creates a Launcher for the given recognizer script. A
// non-empty interpreter (e.g. "python3") is prepended to the command.
func NewLauncher(scriptPath, interpreter string) *Launcher {
	return &Launcher{
		ScriptPath:  scriptPath,
		Interpreter: interpreter,
		start: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			if err := cmd.Start(); err != nil {
				return err
			}
			go func() { _ = cmd.Wait() }()
			return nil
		},
	}
}

// Open launches the gesture window without blocking on its lifetime.
// The returned text is always a user-facing status; the error carries
// the underlying cause for logging.
func (l *Launcher) Open() (string, error) {
	if _, err := os.Stat(l.ScriptPath); err != nil {
		log.Warn("gesture recognizer missing", "path", l.ScriptPath)
		return StatusNotFound, fmt.Errorf("%w: %s", ErrScriptNotFound, l.ScriptPath)
	}

	name, args := l.ScriptPath, []string(nil)
	if l.Interpreter != "" {
		name, args = l.Interpreter, []string{l.ScriptPath}
	}
	if err := l.start(name, args...); err != nil {
		log.Error("gesture recognizer failed to start", "error", err)
		return StatusFailed, fmt.Errorf("gesture: launch recognizer: %w", err)
	}

	log.Info("gesture window opened", "path", l.ScriptPath)
	return StatusOpened, nil
}
