package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/jayamurugan-31/zara/internal/log"
	"github.com/jayamurugan-31/zara/pkg/gifs"
	"github.com/jayamurugan-31/zara/pkg/speech"
)

// Mode loop reply strings.
const (
	MsgTranslateIntro = "மொழிபெயர்ப்பு முறை. தமிழில் பேசுங்கள், நான் ஹிந்தியில் சொல்கிறேன். நிறுத்த 'niruthu' என்று சொல்லுங்கள்."
	MsgTranslateStop  = "மொழிபெயர்ப்பு முறை நிறுத்தப்பட்டது."
	MsgGifIntro       = "GIF முறையில் கேட்கிறேன்..."
	MsgNotUnderstood  = "உங்கள் பேச்சை புரிந்துகொள்ள முடியவில்லை."
)

// stopPhrases end the translation loop. Matching is exact after
// trimming and lowercasing; the phrase itself is never logged.
var stopPhrases = []string{
	"niruthu",
	"stop",
	"exit",
	"நிறுத்து",
	"நிற்கவும்",
	"வெளியேறு",
	"வெளியே",
}

func isStopPhrase(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, p := range stopPhrases {
		if text == p {
			return true
		}
	}
	return false
}

// runTranslationMode listens for Tamil utterances and speaks the Hindi
// translation of each one until a stop phrase, a closed listener or
// context cancellation ends the loop. Each understood utterance adds
// one User entry and one Assistant entry to the conversation log; the
// stop phrase adds none.
func (d *Dispatcher) runTranslationMode(ctx context.Context) Result {
	d.session.SetMode(ModeTranslator)
	defer d.session.Reset()

	if d.collab.Listener == nil || d.collab.Translator == nil {
		return d.fail(nil)
	}

	d.say(ctx, MsgTranslateIntro)
	d.session.SetListening(true)

	for {
		// An external stop-listening signal lands here, at the top of
		// the next iteration.
		if ctx.Err() != nil || !d.session.Listening() {
			break
		}

		text, err := d.collab.Listener.Listen(ctx)
		switch {
		case errors.Is(err, speech.ErrClosed), errors.Is(err, context.Canceled):
			d.say(ctx, MsgTranslateStop)
			return Result{SideEffect: true}
		case errors.Is(err, speech.ErrTimeout):
			continue
		case err != nil:
			log.Warn("translation mode listen failed", "error", err)
			continue
		case text == "":
			continue
		}

		if isStopPhrase(text) {
			d.say(ctx, MsgTranslateStop)
			return Result{SideEffect: true}
		}

		d.logUser(text)
		d.session.SetStatus(StatusProcessing)

		hindi, err := d.collab.Translator.TranslateTamilToHindi(ctx, text)
		if err != nil {
			log.Error("translation failed", "error", err)
			d.session.SetStatus(StatusError)
			d.logAssistant(MsgFailure)
			d.say(ctx, MsgFailure)
			d.session.SetListening(true)
			continue
		}

		d.logAssistant(hindi)
		d.say(ctx, hindi)
		d.session.SetListening(true)
	}

	d.say(ctx, MsgTranslateStop)
	return Result{SideEffect: true}
}

// runGifMode is a single-shot loop: listen for one utterance, show the
// matching reaction GIF, then return to standby.
func (d *Dispatcher) runGifMode(ctx context.Context) Result {
	d.session.SetMode(ModeGif)
	defer d.session.Reset()

	if d.collab.Listener == nil || d.collab.Gifs == nil {
		return d.fail(nil)
	}

	d.say(ctx, MsgGifIntro)
	d.session.SetListening(true)

	text, err := d.collab.Listener.Listen(ctx)
	if err != nil || text == "" {
		if err != nil && !errors.Is(err, speech.ErrClosed) {
			log.Warn("gif mode listen failed", "error", err)
		}
		d.logAssistant(MsgNotUnderstood)
		d.say(ctx, MsgNotUnderstood)
		return Result{Text: MsgNotUnderstood, SideEffect: true}
	}

	d.logUser(text)
	d.session.SetStatus(StatusProcessing)

	path, ok := d.collab.Gifs.Resolve(text)
	if !ok {
		d.logAssistant(gifs.MsgNoMatch)
		d.say(ctx, gifs.MsgNoMatch)
		return Result{Text: gifs.MsgNoMatch, SideEffect: true}
	}

	status, err := d.collab.Gifs.Show(path)
	if err != nil {
		return d.fail(err)
	}
	if status != "" {
		d.logAssistant(status)
		d.say(ctx, status)
	}
	return Result{Text: status, SideEffect: true}
}

// say speaks text when a speaker is wired; speech failures never break
// the request cycle.
func (d *Dispatcher) say(ctx context.Context, text string) {
	if d.collab.Speaker == nil || text == "" {
		return
	}
	if err := d.collab.Speaker.Speak(ctx, text); err != nil {
		log.Warn("speech output failed", "error", err)
	}
}
