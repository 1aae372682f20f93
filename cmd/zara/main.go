// Zara - Tamil voice assistant with intent dispatch, a terminal session
// and a real-time web dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lpernett/godotenv"

	"github.com/jayamurugan-31/zara/internal/log"
	"github.com/jayamurugan-31/zara/pkg/assistant"
	"github.com/jayamurugan-31/zara/pkg/gemini"
	"github.com/jayamurugan-31/zara/pkg/gesture"
	"github.com/jayamurugan-31/zara/pkg/gifs"
	"github.com/jayamurugan-31/zara/pkg/music"
	"github.com/jayamurugan-31/zara/pkg/speech"
	"github.com/jayamurugan-31/zara/pkg/tasks"
	"github.com/jayamurugan-31/zara/pkg/web"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg, opts := parseFlags()

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	log.Init(level)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	app, err := newApp(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.web {
		if err := runWeb(ctx, app); err != nil {
			log.Error("web server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	runMenu(ctx, app)
}

// options are the launch choices that aren't assistant configuration.
type options struct {
	web   bool
	voice bool
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() (assistant.Config, options) {
	cfg := assistant.DefaultConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	webMode := flag.Bool("web", false, "Start the web dashboard directly, skipping the menu")
	voice := flag.Bool("voice", false, "Speak responses aloud (needs a local audio player)")
	port := flag.String("port", cfg.WebPort, "Web dashboard port (overrides ZARA_WEB_PORT)")
	logPath := flag.String("log-path", cfg.LogPath, "Conversation log file; empty keeps the log in memory")
	gifDir := flag.String("gif-dir", "", "Directory holding the reaction GIFs")
	exportDir := flag.String("export-dir", cfg.ExportDir, "Directory for JSON conversation exports")
	flag.Parse()

	cfg.Debug = *debug
	cfg.LogPath = *logPath
	cfg.ExportDir = *exportDir

	cfg.LoadEnvConfig()

	// Flags outrank environment overrides.
	if *port != assistant.DefaultWebPort {
		cfg.WebPort = *port
	}
	if *gifDir != "" {
		cfg.GifDir = *gifDir
	}

	return cfg, options{web: *webMode, voice: *voice}
}

// newApp wires every collaborator and assembles the assistant.
func newApp(cfg assistant.Config, opts options) (*assistant.App, error) {
	console := speech.NewConsole(os.Stdin, os.Stdout)

	var speaker speech.Speaker = console
	if opts.voice {
		speaker = fanoutSpeaker{console, speech.NewGTTS(cfg.VoiceLang)}
	}

	ai, err := gemini.NewClient(cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	taskHandler := tasks.NewHandler()
	taskHandler.Announce = func(text string) {
		if err := speaker.Speak(context.Background(), text); err != nil {
			log.Warn("speech output failed", "error", err)
		}
	}

	return assistant.New(cfg, assistant.Collaborators{
		Listener:   console,
		Speaker:    speaker,
		AI:         ai,
		Translator: ai,
		Tasks:      taskHandler,
		Gesture:    gesture.NewLauncher(cfg.GestureScript, cfg.GestureInterpreter),
		Music:      music.NewPlayer(cfg.SpotifyClientID, cfg.SpotifyClientSecret),
		Gifs:       gifs.NewResolver(cfg.GifDir),
	})
}

// runMenu shows the launcher menu until the user exits.
func runMenu(ctx context.Context, app *assistant.App) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Println()
		fmt.Println("=== Zara Voice Assistant ===")
		fmt.Println("1. Terminal session")
		fmt.Println("2. Web dashboard")
		fmt.Println("3. Exit")
		fmt.Print("> ")

		var choice string
		if _, err := fmt.Scanln(&choice); err != nil {
			// EOF or unreadable input ends the program.
			return
		}

		switch choice {
		case "1":
			if err := app.Run(ctx); err != nil {
				log.Error("terminal session failed", "error", err)
			}
		case "2":
			if err := runWeb(ctx, app); err != nil {
				log.Error("web server failed", "error", err)
			}
		case "3", "q", "exit":
			return
		default:
			fmt.Println("Please choose 1, 2 or 3.")
		}
	}
}

// runWeb serves the dashboard until ctx is cancelled.
func runWeb(ctx context.Context, app *assistant.App) error {
	srv := web.NewServer(app, app.Config().WebPort)

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Warn("web server shutdown failed", "error", err)
		}
	}()

	return srv.Start()
}

// fanoutSpeaker speaks through every wired speaker; the console always
// gets the text even when audio playback fails.
type fanoutSpeaker []speech.Speaker

func (f fanoutSpeaker) Speak(ctx context.Context, text string) error {
	var firstErr error
	for _, s := range f {
		if err := s.Speak(ctx, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
