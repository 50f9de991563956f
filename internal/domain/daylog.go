package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultObjectName is used when the structuring collaborator omits the
// work-site name.
const DefaultObjectName = "unnamed"

// DayLogEntry is one ingestion event: the raw narrative a user submitted for
// a date plus the structuring collaborator's output. Entries are append-only
// and immutable once written; a chat may accumulate several per date.
type DayLogEntry struct {
	ID             uuid.UUID
	ChatID         int64
	LogDate        time.Time // date component only, UTC midnight
	RawText        string
	StructuredText string
	AudioText      *string // transcript, set only for voice submissions
	CreatedAt      time.Time
}

// WorkRecord is one structured work-site observation derived from a day log
// entry. Zero or more records are extracted per entry; each is persisted to
// the secondary store independently.
type WorkRecord struct {
	Date       time.Time // UTC midnight
	Time       string    // "HH:MM"
	ObjectName string
	Location   string
	WorkDone   string
	Workers    []string
	Income     float64 // non-negative
}

// StampReference forces the record's date and time to the ingestion moment,
// overriding whatever the structuring collaborator proposed. This keeps the
// primary and secondary stores chronologically consistent even when the
// collaborator hallucinates dates.
func (r *WorkRecord) StampReference(ref time.Time) {
	r.Date = DateOnly(ref)
	r.Time = ref.UTC().Format("15:04")
}

// DateOnly truncates t to UTC midnight.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
