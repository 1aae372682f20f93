package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jayamurugan-31/zara/internal/httpc"
)

// ttsEndpoint is the public Google Translate TTS endpoint. The q
// parameter is capped at roughly 200 characters per request.
const (
	ttsEndpoint  = "https://translate.google.com/translate_tts"
	ttsMaxChars  = 200
	DefaultVoice = "ta" // the assistant speaks Tamil by default
)

// playerCommands are tried in order; the first one on PATH wins.
var playerCommands = [][]string{
	{"mpg123", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"afplay"},
}

// GTTS speaks by fetching an mp3 from the Google Translate TTS
// endpoint and piping it through an external audio player, the same
// flow the assistant has always used for its Tamil voice.
type GTTS struct {
	// Lang is the BCP-47 language tag for synthesis ("ta", "hi", ...).
	Lang string

	// Client is the HTTP client; defaults to the shared httpc client.
	Client *http.Client

	// Player overrides auto-detection of the playback command.
	Player []string
}

// NewGTTS creates a speaker for the given language.
func NewGTTS(lang string) *GTTS {
	if lang == "" {
		lang = DefaultVoice
	}
	return &GTTS{Lang: lang, Client: httpc.Client}
}

// Speak synthesizes text and blocks until playback completes.
func (g *GTTS) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	if runes := []rune(text); len(runes) > ttsMaxChars {
		text = string(runes[:ttsMaxChars])
	}

	mp3, err := g.fetch(ctx, text)
	if err != nil {
		return err
	}

	path := filepath.Join(os.TempDir(), "zara-"+uuid.NewString()+".mp3")
	if err := os.WriteFile(path, mp3, 0600); err != nil {
		return fmt.Errorf("speech: write audio file: %w", err)
	}
	defer os.Remove(path)

	return g.play(ctx, path)
}

// fetch downloads the synthesized mp3 for text.
func (g *GTTS) fetch(ctx context.Context, text string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", g.Lang)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ttsEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("speech: build tts request: %w", err)
	}

	client := g.Client
	if client == nil {
		client = httpc.Client
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech: tts request failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// play runs the first available player command on the mp3 file.
func (g *GTTS) play(ctx context.Context, path string) error {
	argv := g.Player
	if argv == nil {
		for _, candidate := range playerCommands {
			if _, err := exec.LookPath(candidate[0]); err == nil {
				argv = candidate
				break
			}
		}
	}
	if len(argv) == 0 {
		return ErrNoPlayer
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speech: play audio: %w", err)
	}
	return nil
}

var _ Speaker = (*GTTS)(nil)
