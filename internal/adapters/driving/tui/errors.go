package tui

import "errors"

// ErrMissingWordService is returned when the word service is not provided.
var ErrMissingWordService = errors.New("tui: word service is required")
