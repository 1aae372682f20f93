// Package assistant wires the intent classifier, session state,
// conversation log and external collaborators into the Zara voice
// assistant core.
package assistant

import "os"

// Default configuration values.
const (
	DefaultLogPath            = "conversation_log.txt"
	DefaultExportDir          = "."
	DefaultGifDir             = "zara_assets/gif_output"
	DefaultGestureScript      = "gesture/gesture.py"
	DefaultGestureInterpreter = "python3"
	DefaultWebPort            = "8501"
	DefaultVoiceLang          = "ta"
)

// Config holds all configuration for the Zara application.
// Flag parsing is done in cmd/zara/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// LogPath is the conversation log file. Empty keeps the log in
	// memory only.
	LogPath string

	// ExportDir is where JSON conversation exports are written.
	ExportDir string

	// GifDir is the directory holding the reaction GIFs.
	GifDir string

	// Gesture recognizer launch settings.
	GestureScript      string
	GestureInterpreter string

	// WebPort is the dashboard listen port.
	WebPort string

	// VoiceLang is the speech synthesis language code.
	VoiceLang string

	// API keys (typically from environment variables).
	GeminiAPIKey        string
	SpotifyClientID     string
	SpotifyClientSecret string
}

// DefaultConfig returns sensible defaults for Zara configuration.
func DefaultConfig() Config {
	return Config{
		LogPath:            DefaultLogPath,
		ExportDir:          DefaultExportDir,
		GifDir:             DefaultGifDir,
		GestureScript:      DefaultGestureScript,
		GestureInterpreter: DefaultGestureInterpreter,
		WebPort:            DefaultWebPort,
		VoiceLang:          DefaultVoiceLang,
	}
}

// LoadEnvConfig loads configuration values from environment variables.
// Call this after flag parsing to apply environment overrides.
func (c *Config) LoadEnvConfig() {
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.SpotifyClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	c.SpotifyClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")

	if dir := os.Getenv("ZARA_GIF_DIR"); dir != "" {
		c.GifDir = dir
	}
	if script := os.Getenv("ZARA_GESTURE_SCRIPT"); script != "" {
		c.GestureScript = script
	}
	if port := os.Getenv("ZARA_WEB_PORT"); port != "" {
		c.WebPort = port
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return &ConfigError{Field: "GeminiAPIKey", Message: "GEMINI_API_KEY environment variable is required"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
