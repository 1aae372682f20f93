package assistant

import (
	"context"
	"errors"

	"github.com/jayamurugan-31/zara/internal/log"
	"github.com/jayamurugan-31/zara/pkg/conversation"
	"github.com/jayamurugan-31/zara/pkg/intent"
	"github.com/jayamurugan-31/zara/pkg/speech"
)

// MsgWelcome is spoken once when a session starts.
const MsgWelcome = "வணக்கம்! நான் ஜாரா. உங்களுக்கு எப்படி உதவலாம்?"

// App is the assembled assistant: configuration, session state,
// conversation log and dispatcher. It drives the terminal request
// cycle; the web dashboard drives the same dispatcher through its own
// handlers.
type App struct {
	config     Config
	session    *Session
	logbook    *conversation.Log
	dispatcher *Dispatcher
	collab     Collaborators
}

// New assembles an App from configuration and collaborators.
func New(cfg Config, collab Collaborators) (*App, error) {
	logbook, err := conversation.Open(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	session := NewSession()
	return &App{
		config:     cfg,
		session:    session,
		logbook:    logbook,
		dispatcher: NewDispatcher(session, logbook, collab),
		collab:     collab,
	}, nil
}

// Session returns the shared session state.
func (a *App) Session() *Session { return a.session }

// Log returns the conversation log.
func (a *App) Log() *conversation.Log { return a.logbook }

// Dispatcher returns the command dispatcher.
func (a *App) Dispatcher() *Dispatcher { return a.dispatcher }

// Config returns the app configuration.
func (a *App) Config() Config { return a.config }

// Collaborators returns the wired external capabilities.
func (a *App) Collaborators() Collaborators { return a.collab }

// Run drives the terminal session: greet, then listen and dispatch
// until the listener closes or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	log.Info("session started", "session_id", a.session.ID())

	a.sayAndLog(ctx, MsgWelcome)

	for {
		if ctx.Err() != nil {
			return nil
		}

		a.session.SetListening(true)
		text, err := a.collab.Listener.Listen(ctx)
		a.session.SetListening(false)

		switch {
		case errors.Is(err, speech.ErrClosed), errors.Is(err, context.Canceled):
			return nil
		case errors.Is(err, speech.ErrTimeout):
			continue
		case err != nil:
			log.Warn("listen failed", "error", err)
			continue
		}

		res, err := a.dispatcher.Dispatch(ctx, text)
		if errors.Is(err, intent.ErrEmptyInput) {
			continue
		}
		if err != nil {
			log.Error("dispatch failed", "error", err)
			continue
		}
		if res.Text != "" && a.collab.Speaker != nil {
			if err := a.collab.Speaker.Speak(ctx, res.Text); err != nil {
				log.Warn("speech output failed", "error", err)
			}
		}
	}
}

// Close releases the conversation log.
func (a *App) Close() error {
	return a.logbook.Close()
}

// sayAndLog speaks text and records it as an Assistant entry.
func (a *App) sayAndLog(ctx context.Context, text string) {
	if err := a.logbook.Append(conversation.RoleAssistant, text); err != nil {
		log.Warn("conversation log write failed", "error", err)
	}
	if a.collab.Speaker != nil {
		if err := a.collab.Speaker.Speak(ctx, text); err != nil {
			log.Warn("speech output failed", "error", err)
		}
	}
}
