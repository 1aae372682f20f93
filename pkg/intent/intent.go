// Package intent classifies free-text commands into assistant intents.
//
// Classification is deliberately simple: an ordered table of
// (intent, predicate) rules evaluated first-match-wins over a bilingual
// English/Tamil keyword set. The order of the rules defines precedence;
// anything that falls through every rule is answered by the AI chat
// fallback.
package intent

// Intent is the classified purpose of a command.
type Intent int

const (
	// None means no intent was produced (empty input only).
	None Intent = iota
	// Gesture launches the hand-gesture recognition window.
	Gesture
	// Gif enters the single-shot GIF display mode.
	Gif
	// MusicPlay opens the music player from a generic music request.
	MusicPlay
	// SongSearch plays a specific song named after "play".
	SongSearch
	// Translate enters the Tamil to Hindi translation loop.
	Translate
	// GeneralTask is a command recognized by the general-task handler.
	GeneralTask
	// AIChat is the catch-all conversational fallback.
	AIChat
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case Gesture:
		return "gesture"
	case Gif:
		return "gif"
	case MusicPlay:
		return "music_play"
	case SongSearch:
		return "song_search"
	case Translate:
		return "translate"
	case GeneralTask:
		return "general_task"
	case AIChat:
		return "ai_chat"
	default:
		return "none"
	}
}

// Keyword triggers, checked by case-insensitive containment.
// Tamil phrases mirror what the assistant's users actually say.
var (
	gestureKeywords = []string{"gesture", "கை சைகை", "open gesture", "start gesture"}
	gifKeywords     = []string{"gif", "show gif", "display gif", "gif காட்டு"}
	musicKeywords   = []string{"play song", "play music", "spotify", "பாடல் இசை", "இசை இசை", "song play", "music play"}
	translateKeywords = []string{"translator", "translate", "மொழிபெயர்ப்பு", "tamil to hindi"}
)

// Result is the outcome of a classification. Query carries the extracted
// song name for SongSearch and MusicPlay; it is empty for other intents.
type Result struct {
	Intent Intent
	Query  string
}
