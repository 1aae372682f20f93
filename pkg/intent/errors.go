package intent

import "errors"

// ErrEmptyInput indicates there was no utterance to classify.
// Callers must not log or dispatch anything when they receive it.
var ErrEmptyInput = errors.New("intent: empty input")
