package ingest

import (
	"context"
	"fmt"
	"strings"

	"worklogbot/internal/domain"
)

// IngestDay runs the full pipeline for a textual day description.
func (s *Service) IngestDay(ctx context.Context, chatID int64, text string) (*DayResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("ingest day: %w: empty description", domain.ErrValidation)
	}
	if len([]rune(text)) > s.cfg.MaxTextLen {
		return nil, fmt.Errorf("ingest day: %w", domain.ErrTooLong)
	}

	entry, outcomes, err := s.persistDay(ctx, chatID, text, nil)
	if err != nil {
		return nil, err
	}

	return &DayResult{
		Entry:    entry,
		Outcomes: outcomes,
		Preview:  s.preview(text),
	}, nil
}
