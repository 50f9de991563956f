// Package speech converts voice recordings to text via the OpenAI
// transcription API.
package speech

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"worklogbot/internal/config"
)

// Transcriber wraps the OpenAI audio transcription endpoint.
type Transcriber struct {
	api   *openai.Client
	model string
}

// New creates a Transcriber from speech configuration.
func New(cfg config.SpeechConfig) *Transcriber {
	return &Transcriber{
		api:   openai.NewClient(cfg.APIKey),
		model: cfg.Model,
	}
}

// Transcribe sends the audio payload for transcription and returns the
// recognized text. The filename hints the container format to the API.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	resp, err := t.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		Reader:   bytes.NewReader(audio),
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("transcription api call: %w", err)
	}
	return resp.Text, nil
}
