package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jayamurugan-31/zara/pkg/conversation"
	"github.com/jayamurugan-31/zara/pkg/intent"
)

// Hand-rolled collaborator fakes.

type fakeAI struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeAI) GetResponse(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type fakeTranslator struct {
	err   error
	calls []string
}

func (f *fakeTranslator) TranslateTamilToHindi(ctx context.Context, text string) (string, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return "", f.err
	}
	return "हिंदी(" + text + ")", nil
}

type fakeTasks struct {
	patterns []string
	executed []string
	err      error
}

func (f *fakeTasks) Matches(command string) bool {
	lc := strings.ToLower(command)
	for _, p := range f.patterns {
		if p == lc {
			return true
		}
	}
	return false
}

func (f *fakeTasks) Execute(command string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.executed = append(f.executed, command)
	return f.Matches(command), nil
}

type fakeGesture struct {
	text string
	err  error
}

func (f *fakeGesture) Open() (string, error) { return f.text, f.err }

type fakeMusic struct {
	reply   string
	err     error
	queries []string
}

func (f *fakeMusic) SearchAndPlay(ctx context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	return f.reply, f.err
}

type fakeGifs struct {
	path   string
	status string
	err    error
	shown  []string
}

func (f *fakeGifs) Resolve(text string) (string, bool) {
	if f.path == "" {
		return "", false
	}
	return f.path, true
}

func (f *fakeGifs) Show(path string) (string, error) {
	f.shown = append(f.shown, path)
	return f.status, f.err
}

func newTestDispatcher(t *testing.T, collab Collaborators) (*Dispatcher, *conversation.Log) {
	t.Helper()
	logbook, err := conversation.Open("")
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	return NewDispatcher(NewSession(), logbook, collab), logbook
}

func TestDispatchAIChat(t *testing.T) {
	ai := &fakeAI{reply: "வணக்கம்! நான் நன்றாக இருக்கிறேன்."}
	d, logbook := newTestDispatcher(t, Collaborators{AI: ai})

	res, err := d.Dispatch(context.Background(), "how are you today")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Text != ai.reply {
		t.Errorf("reply = %q, want AI response", res.Text)
	}
	if len(ai.prompts) != 1 || ai.prompts[0] != "how are you today" {
		t.Errorf("AI prompts = %v", ai.prompts)
	}

	entries := logbook.Entries()
	if len(entries) != 2 {
		t.Fatalf("log has %d entries, want user + assistant", len(entries))
	}
	if entries[0].Role != conversation.RoleUser || entries[0].Message != "how are you today" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Role != conversation.RoleAssistant || entries[1].Message != ai.reply {
		t.Errorf("second entry = %+v", entries[1])
	}

	if snap := d.session.Snapshot(); snap.Mode != ModeStandby || snap.Status != StatusReady {
		t.Errorf("session not reset after dispatch: %+v", snap)
	}
}

func TestDispatchEmptyInput(t *testing.T) {
	d, logbook := newTestDispatcher(t, Collaborators{AI: &fakeAI{reply: "x"}})

	_, err := d.Dispatch(context.Background(), "   ")
	if !errors.Is(err, intent.ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if logbook.Len() != 0 {
		t.Error("empty input must not be logged")
	}
}

func TestDispatchCollaboratorFailure(t *testing.T) {
	ai := &fakeAI{err: fmt.Errorf("gemini: boom")}
	d, logbook := newTestDispatcher(t, Collaborators{AI: ai})

	var sawError bool
	d.session.OnChange(func(snap Snapshot) {
		if snap.Status == StatusError {
			sawError = true
		}
	})

	res, err := d.Dispatch(context.Background(), "tell me a joke")
	if err != nil {
		t.Fatalf("collaborator failures must not escape Dispatch: %v", err)
	}
	if res.Text != MsgFailure {
		t.Errorf("reply = %q, want generic failure text", res.Text)
	}
	if !sawError {
		t.Error("session never passed through StatusError")
	}

	var failures int
	for _, e := range logbook.Entries() {
		if e.Role == conversation.RoleAssistant {
			if e.Message != MsgFailure {
				t.Errorf("assistant entry %q, want failure text", e.Message)
			}
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("got %d assistant failure entries, want exactly 1", failures)
	}

	if snap := d.session.Snapshot(); snap.Status != StatusReady || snap.Mode != ModeStandby {
		t.Errorf("session not reset after failure: %+v", snap)
	}
}

func TestDispatchMusicWithQuery(t *testing.T) {
	music := &fakeMusic{reply: "கண்டுபிடித்தேன்."}
	d, _ := newTestDispatcher(t, Collaborators{Music: music})

	res, err := d.Dispatch(context.Background(), "play vaathi coming")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(music.queries) != 1 || music.queries[0] != "vaathi coming" {
		t.Errorf("music queries = %v, want [vaathi coming]", music.queries)
	}
	if res.Text != music.reply {
		t.Errorf("reply = %q", res.Text)
	}
}

func TestDispatchMusicEmptyQuery(t *testing.T) {
	music := &fakeMusic{}
	d, logbook := newTestDispatcher(t, Collaborators{Music: music})

	res, err := d.Dispatch(context.Background(), "open spotify")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Text != MsgSongClarify {
		t.Errorf("reply = %q, want clarification prompt", res.Text)
	}
	if len(music.queries) != 0 {
		t.Errorf("player must not be called without a query, got %v", music.queries)
	}

	entries := logbook.Entries()
	if len(entries) != 2 || entries[1].Message != MsgSongClarify {
		t.Errorf("log = %+v, want clarification as assistant entry", entries)
	}
}

func TestDispatchGesture(t *testing.T) {
	gesture := &fakeGesture{text: "சைகை அங்கீகாரம் திறக்கப்பட்டது."}
	d, logbook := newTestDispatcher(t, Collaborators{Gesture: gesture})

	res, err := d.Dispatch(context.Background(), "open gesture mode")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Text != gesture.text || !res.SideEffect {
		t.Errorf("result = %+v", res)
	}

	entries := logbook.Entries()
	if len(entries) != 2 || entries[1].Message != gesture.text {
		t.Errorf("log = %+v, want gesture status as assistant entry", entries)
	}
}

func TestDispatchGeneralTask(t *testing.T) {
	tasks := &fakeTasks{patterns: []string{"what time is it"}}
	d, _ := newTestDispatcher(t, Collaborators{
		AI:    &fakeAI{reply: "chat"},
		Tasks: tasks,
	})

	res, err := d.Dispatch(context.Background(), "What Time Is It")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(tasks.executed) != 1 || tasks.executed[0] != "What Time Is It" {
		t.Errorf("executed = %v", tasks.executed)
	}
	if !res.SideEffect {
		t.Error("general task result must be marked as side effect")
	}
}

func TestDispatchTaskOutranksChat(t *testing.T) {
	ai := &fakeAI{reply: "chat"}
	tasks := &fakeTasks{patterns: []string{"open youtube"}}
	d, _ := newTestDispatcher(t, Collaborators{AI: ai, Tasks: tasks})

	if _, err := d.Dispatch(context.Background(), "open youtube"); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(ai.prompts) != 0 {
		t.Errorf("AI was consulted for a recognized task: %v", ai.prompts)
	}
}
