package intent

import "strings"

// TaskMatcher reports whether the general-task handler recognizes a
// command. The interface is defined where it's consumed (idiomatic Go);
// tasks.Handler satisfies it.
type TaskMatcher interface {
	Matches(command string) bool
}

// Classifier maps raw commands to intents using an ordered rule table.
type Classifier struct {
	tasks TaskMatcher
	rules []rule
}

// rule pairs an intent with its trigger predicate. The predicate
// receives the lower-cased command and returns the extracted query, if
// any.
type rule struct {
	intent Intent
	match  func(lc string) (bool, string)
}

// NewClassifier creates a Classifier. tasks may be nil, in which case
// the general-task rule never matches.
func NewClassifier(tasks TaskMatcher) *Classifier {
	c := &Classifier{tasks: tasks}
	c.rules = []rule{
		{Gesture, matchAny(gestureKeywords)},
		{Gif, matchAny(gifKeywords)},
		{MusicPlay, c.matchMusic},
		{SongSearch, matchSongSearch},
		{Translate, matchAny(translateKeywords)},
		{GeneralTask, c.matchGeneralTask},
	}
	return c
}

// Classify returns the first matching intent in priority order:
// gesture, gif, music, direct song search, translator, general task,
// and finally the AI chat fallback. Empty or whitespace-only input
// fails with ErrEmptyInput before any rule runs.
func (c *Classifier) Classify(command string) (Result, error) {
	if strings.TrimSpace(command) == "" {
		return Result{Intent: None}, ErrEmptyInput
	}

	lc := strings.ToLower(command)
	for _, r := range c.rules {
		if ok, query := r.match(lc); ok {
			return Result{Intent: r.intent, Query: query}, nil
		}
	}
	return Result{Intent: AIChat}, nil
}

// matchAny builds a containment predicate over a keyword list.
func matchAny(keywords []string) func(string) (bool, string) {
	return func(lc string) (bool, string) {
		for _, kw := range keywords {
			if strings.Contains(lc, kw) {
				return true, ""
			}
		}
		return false, ""
	}
}

// matchMusic matches generic music requests. The query may be empty
// ("open spotify"); the dispatcher asks for clarification in that case.
func (c *Classifier) matchMusic(lc string) (bool, string) {
	ok, _ := matchAny(musicKeywords)(lc)
	if !ok {
		return false, ""
	}
	return true, SongQuery(lc)
}

// matchSongSearch matches "play <song name>": the command must contain
// "play", consist of more than one token, and leave a non-empty
// remainder after the first "play". Otherwise classification falls
// through to the next rule.
func matchSongSearch(lc string) (bool, string) {
	if !strings.Contains(lc, "play") || len(strings.Fields(lc)) <= 1 {
		return false, ""
	}
	query := SongQuery(lc)
	if query == "" {
		return false, ""
	}
	return true, query
}

// matchGeneralTask delegates to the task handler's own pattern table.
// It only asks whether the command matches; the dispatcher performs the
// side effect.
func (c *Classifier) matchGeneralTask(lc string) (bool, string) {
	if c.tasks == nil {
		return false, ""
	}
	return c.tasks.Matches(lc), ""
}

// SongQuery extracts the song name from a command: everything after the
// first occurrence of "play", trimmed of whitespace. Returns "" when
// the command carries no song name.
func SongQuery(command string) string {
	lc := strings.ToLower(command)
	_, after, found := strings.Cut(lc, "play")
	if !found {
		return ""
	}
	return strings.TrimSpace(after)
}
