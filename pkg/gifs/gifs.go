// Package gifs maps trigger words to animated GIF assets and shows the
// matched asset in an external viewer. A missing asset is reported to
// the user, never treated as fatal.
package gifs

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jayamurugan-31/zara/internal/log"
)

// mapping pairs a trigger word with its GIF file name. Slice order is
// precedence: the first trigger contained in the utterance wins.
type mapping struct {
	word string
	file string
}

var gifTable = []mapping{
	{"hello", "hello.gif"},
	{"thank you", "thanks.gif"},
	{"yes", "yes.gif"},
	{"no", "no.gif"},
}

// User-facing status texts.
const (
	MsgNoMatch     = "அந்த வார்த்தைக்கு GIF கிடைக்கவில்லை."
	MsgFileMissing = "GIF கோப்பு காணவில்லை."
)

// Resolver resolves trigger words to GIF paths and displays them.
type Resolver struct {
	// Dir is the directory holding the GIF assets.
	Dir string

	// Viewer is the external viewer command; empty disables display
	// (resolution and existence checks still run).
	Viewer []string

	// start launches the viewer; injectable for tests.
	start func(name string, args ...string) error
}

// NewResolver creates a Resolver over the given asset directory.
func NewResolver(dir string) *Resolver {
	return &Resolver{
		Dir: dir,
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

// Resolve returns the asset path for the first trigger word contained
// in text, or false when no word matches.
func (r *Resolver) Resolve(text string) (string, bool) {
	lc := strings.ToLower(text)
	for _, m := range gifTable {
		if strings.Contains(lc, m.word) {
			return filepath.Join(r.Dir, m.file), true
		}
	}
	return "", false
}

// Show displays the GIF at path. A missing file returns MsgFileMissing
// as the status; a successful display returns an empty status.
func (r *Resolver) Show(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		log.Warn("gif asset missing", "path", path)
		return MsgFileMissing, nil
	}

	if len(r.Viewer) == 0 {
		log.Debug("no gif viewer configured", "path", path)
		return "", nil
	}
	if err := r.start(r.Viewer[0], append(r.Viewer[1:], path)...); err != nil {
		return "", fmt.Errorf("gifs: show %s: %w", path, err)
	}
	log.Info("gif displayed", "path", path)
	return "", nil
}
