package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"worklogbot/internal/domain"
	"worklogbot/internal/recordparse"
)

// RecordOutcome reports the secondary-store result for one extracted record.
type RecordOutcome struct {
	Record domain.WorkRecord
	Err    error
}

// Succeeded reports whether the record reached the secondary store.
func (o RecordOutcome) Succeeded() bool {
	return o.Err == nil
}

// DayResult is the outcome of one day ingestion.
type DayResult struct {
	Entry    *domain.DayLogEntry
	Outcomes []RecordOutcome

	// Preview is the capped echo of the ingested raw text.
	Preview string

	// Transcript is set only for voice ingestions.
	Transcript string
}

// Mirrored counts records that reached the secondary store.
func (r *DayResult) Mirrored() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			n++
		}
	}
	return n
}

// persistDay runs the structure-then-store pipeline for one day description.
// A primary-store failure aborts the whole ingestion; secondary-store
// failures are isolated per record and never fail the flow.
func (s *Service) persistDay(ctx context.Context, chatID int64, raw string, audioText *string) (*domain.DayLogEntry, []RecordOutcome, error) {
	ref := s.now().UTC()

	structured, err := s.llm.StructureDay(ctx, raw, ref)
	if err != nil {
		return nil, nil, fmt.Errorf("structure day: %w", err)
	}

	records := recordparse.Records(structured)
	for i := range records {
		records[i].StampReference(ref)
	}

	entry, err := s.dayLogs.Create(ctx, &domain.DayLogEntry{
		ID:             uuid.New(),
		ChatID:         chatID,
		LogDate:        domain.DateOnly(ref),
		RawText:        raw,
		StructuredText: structured,
		AudioText:      audioText,
		CreatedAt:      ref,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("store day log: %w", err)
	}

	outcomes := make([]RecordOutcome, len(records))
	for i, rec := range records {
		err := s.records.CreateRecord(ctx, chatID, rec)
		outcomes[i] = RecordOutcome{Record: rec, Err: err}
		if err != nil {
			s.log.Warn("record not mirrored to secondary store",
				slog.Int64("chat_id", chatID),
				slog.String("object_name", rec.ObjectName),
				slog.String("error", err.Error()),
			)
		}
	}

	return entry, outcomes, nil
}
