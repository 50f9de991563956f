// Package ingest orchestrates the day-ingestion pipeline: raw text (or a
// voice transcript) goes to the language model for structuring, the result
// is persisted as a day-log entry, and each extracted record is mirrored to
// the secondary store individually.
package ingest

import (
	"context"
	"log/slog"
	"time"

	"worklogbot/internal/config"
	"worklogbot/internal/domain"
)

// Structurer produces free-text analyses of a day description and answers
// free-form questions.
type Structurer interface {
	StructureDay(ctx context.Context, raw string, ref time.Time) (string, error)
	Answer(ctx context.Context, question string) (string, error)
}

// Transcriber converts a voice recording to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// DayLogRepo is the primary day-log store.
type DayLogRepo interface {
	Create(ctx context.Context, entry *domain.DayLogEntry) (*domain.DayLogEntry, error)
}

// RecordStore is the secondary per-record store.
type RecordStore interface {
	CreateRecord(ctx context.Context, chatID int64, rec domain.WorkRecord) error
}

// Service implements the ingestion operations.
type Service struct {
	llm     Structurer
	speech  Transcriber
	dayLogs DayLogRepo
	records RecordStore
	cfg     config.IngestConfig
	log     *slog.Logger

	now func() time.Time
}

// NewService creates an ingestion service.
func NewService(
	llm Structurer,
	speech Transcriber,
	dayLogs DayLogRepo,
	records RecordStore,
	cfg config.IngestConfig,
	log *slog.Logger,
) *Service {
	return &Service{
		llm:     llm,
		speech:  speech,
		dayLogs: dayLogs,
		records: records,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

// preview caps user-facing echoes of raw input.
func (s *Service) preview(text string) string {
	runes := []rune(text)
	if len(runes) <= s.cfg.PreviewLen {
		return text
	}
	return string(runes[:s.cfg.PreviewLen]) + "…"
}
