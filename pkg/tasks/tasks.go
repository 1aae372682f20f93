// Package tasks executes the assistant's one-shot utility commands:
// opening well-known sites and reporting the time. The handler owns its
// own trigger table; the classifier only asks Matches, the dispatcher
// calls Execute.
package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/jayamurugan-31/zara/internal/browser"
	"github.com/jayamurugan-31/zara/internal/log"
)

// task pairs bilingual trigger substrings with the action to run.
// Table order is precedence; the first containment match wins.
type task struct {
	triggers []string
	run      func(h *Handler) (string, error)
}

func openSite(url, announce string) func(*Handler) (string, error) {
	return func(h *Handler) (string, error) {
		if err := h.openURL(url); err != nil {
			return "", err
		}
		return announce, nil
	}
}

var taskTable = []task{
	{
		triggers: []string{"open youtube", "யூடியூப்", "யூடியூப் திற"},
		run:      openSite("https://www.youtube.com/", "Opening YouTube"),
	},
	{
		triggers: []string{"what is the time", "சமயம் என்ன", "இப்போது நேரம் என்ன"},
		run: func(h *Handler) (string, error) {
			return fmt.Sprintf("The time is %s", h.now().Format("15:04")), nil
		},
	},
	{
		triggers: []string{"open calculator", "கார்பன் கால்குலேட்டர் திற", "கார்பன் கால்குலேட்டர்"},
		run:      openSite("https://glaze.neocities.org/Ticket/templates/", "Opening Carbon Footprint Calculator"),
	},
	{
		triggers: []string{"open jayamurugan portfolio", "ஜெயமுருகன்"},
		run:      openSite("https://jayamurugan-31-portfolio.netlify.app/", "Opening Jayamurugan portfolio"),
	},
	{
		triggers: []string{"open harishwaran portfolio", "ஹரிஷ்வரன்", "ஹரிஷ் வரன்"},
		run:      openSite("https://www.harishwaran.tech/", "Opening Harishwaran portfolio"),
	},
	{
		triggers: []string{"open tastylens", "டேஸ்டிலென்ஸ் திற", "டேஸ்டிலென்ஸ்"},
		run:      openSite("https://tastylensar.vercel.app/", "Opening Tastylens"),
	},
}

// Handler matches and runs general tasks.
type Handler struct {
	// Announce, when set, receives the spoken confirmation for each
	// executed task (wired to the assistant's speaker).
	Announce func(text string)

	openURL func(url string) error
	now     func() time.Time
}

// NewHandler creates a Handler that opens URLs in the system browser.
func NewHandler() *Handler {
	return &Handler{
		openURL: browser.Open,
		now:     time.Now,
	}
}

// Matches reports whether any task trigger is contained in the command.
// It never performs side effects.
func (h *Handler) Matches(command string) bool {
	return h.find(command) != nil
}

// Execute runs the first matching task and returns whether a task
// handled the command.
func (h *Handler) Execute(command string) (bool, error) {
	t := h.find(command)
	if t == nil {
		return false, nil
	}

	text, err := t.run(h)
	if err != nil {
		return true, fmt.Errorf("tasks: %w", err)
	}

	log.Debug("general task executed", "command", command, "response", text)
	if h.Announce != nil && text != "" {
		h.Announce(text)
	}
	return true, nil
}

func (h *Handler) find(command string) *task {
	lc := strings.ToLower(command)
	for i := range taskTable {
		for _, trig := range taskTable[i].triggers {
			if strings.Contains(lc, trig) {
				return &taskTable[i]
			}
		}
	}
	return nil
}
