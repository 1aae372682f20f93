package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console is a Listener/Speaker pair over a terminal: commands are
// typed instead of spoken, responses are printed. This is the typed
// input path of the assistant and the fallback when no recognizer is
// wired up.
type Console struct {
	mu      sync.Mutex
	scanner *bufio.Scanner
	out     io.Writer

	// Prompt is printed before each read. Defaults to "You: ".
	Prompt string

	// Name labels assistant output lines. Defaults to "Zara".
	Name string
}

// NewConsole creates a Console reading from r and writing to w.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(r),
		out:     w,
		Prompt:  "You: ",
		Name:    "Zara",
	}
}

// Listen reads one line and returns it lower-cased and trimmed.
// Returns ErrClosed on EOF.
func (c *Console) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprint(c.out, c.Prompt)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("speech: read input: %w", err)
		}
		return "", ErrClosed
	}
	return strings.ToLower(strings.TrimSpace(c.scanner.Text())), nil
}

// Speak prints the text as an assistant line.
func (c *Console) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "%s: %s\n", c.Name, text)
	return err
}

var (
	_ Listener = (*Console)(nil)
	_ Speaker  = (*Console)(nil)
)
