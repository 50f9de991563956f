package domain

import "errors"

// Sentinel errors used across all layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrTooLong            = errors.New("message too long")
	ErrAudioTooLarge      = errors.New("audio too large")
	ErrTranscriptTooShort = errors.New("transcript too short")
)
