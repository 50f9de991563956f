package ingest

import (
	"context"
	"fmt"
	"strings"

	"worklogbot/internal/domain"
)

// IngestAudio transcribes a voice recording and runs the day pipeline on the
// transcript. Transcripts below the configured minimum abort the flow before
// any store is touched.
func (s *Service) IngestAudio(ctx context.Context, chatID int64, audio []byte, filename string) (*DayResult, error) {
	transcript, err := s.speech.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}

	transcript = strings.TrimSpace(transcript)
	if len([]rune(transcript)) < s.cfg.MinTranscriptLen {
		return nil, fmt.Errorf("ingest audio: %w", domain.ErrTranscriptTooShort)
	}

	entry, outcomes, err := s.persistDay(ctx, chatID, transcript, &transcript)
	if err != nil {
		return nil, err
	}

	return &DayResult{
		Entry:      entry,
		Outcomes:   outcomes,
		Preview:    s.preview(transcript),
		Transcript: transcript,
	}, nil
}
