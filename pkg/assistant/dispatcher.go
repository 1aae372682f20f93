package assistant

import (
	"context"

	"github.com/jayamurugan-31/zara/internal/log"
	"github.com/jayamurugan-31/zara/pkg/conversation"
	"github.com/jayamurugan-31/zara/pkg/intent"
	"github.com/jayamurugan-31/zara/pkg/speech"
)

// User-facing reply strings. Zara answers in Tamil.
const (
	// MsgSongClarify asks which song to play when the command named none.
	MsgSongClarify = "எந்த பாடலை கேட்க விரும்புகிறீர்கள்?"

	// MsgFailure is the generic reply when a collaborator fails.
	MsgFailure = "மன்னிக்கவும், செயல்படுத்தும்போது ஒரு பிழை ஏற்பட்டது. மீண்டும் முயற்சிக்கவும்."

	// MsgTaskDone confirms a general task was executed.
	MsgTaskDone = "சரி, செய்கிறேன்."
)

// AIResponder produces a conversational reply to a free-form prompt.
type AIResponder interface {
	GetResponse(ctx context.Context, prompt string) (string, error)
}

// TamilTranslator translates Tamil text to Hindi.
type TamilTranslator interface {
	TranslateTamilToHindi(ctx context.Context, text string) (string, error)
}

// TaskRunner matches and executes canned utility commands.
type TaskRunner interface {
	Matches(command string) bool
	Execute(command string) (bool, error)
}

// GestureLauncher starts the external gesture recognizer and reports a
// user-facing status string.
type GestureLauncher interface {
	Open() (string, error)
}

// SongPlayer finds and plays a song, returning confirmation text.
type SongPlayer interface {
	SearchAndPlay(ctx context.Context, query string) (string, error)
}

// GifShower maps an utterance to a reaction GIF and displays it.
type GifShower interface {
	Resolve(text string) (string, bool)
	Show(path string) (string, error)
}

// Collaborators are the external capabilities the dispatcher delegates
// to. Any of them may be nil; the matching intents then degrade to the
// generic failure reply.
type Collaborators struct {
	Listener   speech.Listener
	Speaker    speech.Speaker
	AI         AIResponder
	Translator TamilTranslator
	Tasks      TaskRunner
	Gesture    GestureLauncher
	Music      SongPlayer
	Gifs       GifShower
}

// Result is the outcome of dispatching one command.
type Result struct {
	// Text is the reply to speak and show. Empty when the command was
	// handled entirely by a side effect or a mode loop.
	Text string

	// SideEffect marks commands whose main outcome happened outside
	// the conversation (opened a window, ran a mode loop).
	SideEffect bool
}

// Dispatcher classifies commands and routes them to collaborators. It
// owns the request cycle: session state transitions, conversation
// logging and failure containment.
type Dispatcher struct {
	session    *Session
	logbook    *conversation.Log
	classifier *intent.Classifier
	collab     Collaborators
}

// NewDispatcher wires a dispatcher. The classifier consults
// collab.Tasks so canned tasks outrank the AI chat fallback.
func NewDispatcher(session *Session, logbook *conversation.Log, collab Collaborators) *Dispatcher {
	return &Dispatcher{
		session:    session,
		logbook:    logbook,
		classifier: intent.NewClassifier(collab.Tasks),
		collab:     collab,
	}
}

// Dispatch runs one full request cycle for command: classify, log the
// user entry, invoke the matching collaborator, log the reply and
// return it. The only error it returns is intent.ErrEmptyInput; every
// collaborator failure is contained and converted into MsgFailure.
// The session is back in (Standby, Ready) when Dispatch returns.
func (d *Dispatcher) Dispatch(ctx context.Context, command string) (Result, error) {
	res, err := d.classifier.Classify(command)
	if err != nil {
		return Result{}, err
	}
	log.Debug("dispatching command", "intent", res.Intent.String(), "query", res.Query)

	d.logUser(command)

	switch res.Intent {
	case intent.Gesture:
		return d.handleGesture(), nil
	case intent.Gif:
		return d.runGifMode(ctx), nil
	case intent.MusicPlay, intent.SongSearch:
		return d.handleMusic(ctx, res.Query), nil
	case intent.Translate:
		return d.runTranslationMode(ctx), nil
	case intent.GeneralTask:
		return d.handleTask(command), nil
	default:
		return d.handleChat(ctx, command), nil
	}
}

func (d *Dispatcher) handleGesture() Result {
	d.session.SetMode(ModeGesture)
	d.session.SetStatus(StatusProcessing)
	defer d.session.Reset()

	if d.collab.Gesture == nil {
		return d.fail(nil)
	}
	text, err := d.collab.Gesture.Open()
	if err != nil {
		log.Warn("gesture launch failed", "error", err)
	}
	// Open always yields user-facing status text, even on failure.
	d.logAssistant(text)
	return Result{Text: text, SideEffect: true}
}

func (d *Dispatcher) handleMusic(ctx context.Context, query string) Result {
	d.session.SetMode(ModeMusic)
	d.session.SetStatus(StatusProcessing)
	defer d.session.Reset()

	if query == "" {
		d.logAssistant(MsgSongClarify)
		return Result{Text: MsgSongClarify}
	}
	if d.collab.Music == nil {
		return d.fail(nil)
	}
	text, err := d.collab.Music.SearchAndPlay(ctx, query)
	if err != nil {
		return d.fail(err)
	}
	d.logAssistant(text)
	return Result{Text: text, SideEffect: true}
}

func (d *Dispatcher) handleTask(command string) Result {
	d.session.SetStatus(StatusProcessing)
	defer d.session.Reset()

	handled, err := d.collab.Tasks.Execute(command)
	if err != nil {
		return d.fail(err)
	}
	if !handled {
		// Classifier and runner disagree; treat as a miss.
		log.Warn("general task matched but did not execute", "command", command)
		return d.fail(nil)
	}
	d.logAssistant(MsgTaskDone)
	return Result{Text: MsgTaskDone, SideEffect: true}
}

func (d *Dispatcher) handleChat(ctx context.Context, command string) Result {
	d.session.SetMode(ModeAIChat)
	d.session.SetStatus(StatusProcessing)
	defer d.session.Reset()

	if d.collab.AI == nil {
		return d.fail(nil)
	}
	text, err := d.collab.AI.GetResponse(ctx, command)
	if err != nil {
		return d.fail(err)
	}
	d.logAssistant(text)
	return Result{Text: text}
}

// fail records a collaborator failure: status flips to Error for the
// duration of the cycle and the generic failure reply is logged once.
func (d *Dispatcher) fail(err error) Result {
	if err != nil {
		log.Error("collaborator failure", "error", err)
	}
	d.session.SetStatus(StatusError)
	d.logAssistant(MsgFailure)
	return Result{Text: MsgFailure}
}

func (d *Dispatcher) logUser(message string) {
	if err := d.logbook.Append(conversation.RoleUser, message); err != nil {
		log.Warn("conversation log write failed", "error", err)
	}
}

func (d *Dispatcher) logAssistant(message string) {
	if err := d.logbook.Append(conversation.RoleAssistant, message); err != nil {
		log.Warn("conversation log write failed", "error", err)
	}
}
