// Package speech defines the narrow interfaces the assistant core uses
// for speech capture and synthesis, plus the bundled implementations:
// a console pair for typed input, a Google Translate TTS speaker, and
// mocks for testing.
//
// Microphone capture and real ASR live outside this process; anything
// satisfying Listener can feed the assistant.
package speech

import "context"

// Listener captures one utterance at a time.
type Listener interface {
	// Listen blocks until a transcript is available and returns it
	// lower-cased. An empty string (with nil error) means nothing was
	// understood; ErrTimeout means the bounded wait elapsed; ErrClosed
	// means the input source is gone and no further Listen calls will
	// succeed.
	Listen(ctx context.Context) (string, error)
}

// Speaker plays a spoken rendition of text.
type Speaker interface {
	// Speak blocks until playback completes.
	Speak(ctx context.Context, text string) error
}
