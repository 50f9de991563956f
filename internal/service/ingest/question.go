package ingest

import (
	"context"
	"fmt"
	"strings"

	"worklogbot/internal/domain"
)

// Question forwards a free-form question to the language model.
func (s *Service) Question(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("question: %w: empty question", domain.ErrValidation)
	}
	if len([]rune(text)) > s.cfg.MaxTextLen {
		return "", fmt.Errorf("question: %w", domain.ErrTooLong)
	}

	answer, err := s.llm.Answer(ctx, text)
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return answer, nil
}
