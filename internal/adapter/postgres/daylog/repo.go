// Package daylog implements the primary day-log store on PostgreSQL.
// The day_logs table is append-only: entries are inserted once and never
// updated; retrieval is a range query by (chat_id, log_date).
package daylog

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"worklogbot/internal/adapter/postgres"
	"worklogbot/internal/domain"
)

const table = "day_logs"

var columns = []string{"id", "chat_id", "log_date", "raw_text", "structured_text", "audio_text", "created_at"}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides day-log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new day-log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// row mirrors a day_logs row for scanning.
type row struct {
	ID             uuid.UUID `db:"id"`
	ChatID         int64     `db:"chat_id"`
	LogDate        time.Time `db:"log_date"`
	RawText        string    `db:"raw_text"`
	StructuredText string    `db:"structured_text"`
	AudioText      *string   `db:"audio_text"`
	CreatedAt      time.Time `db:"created_at"`
}

// Create inserts a new day-log entry and returns the persisted entry.
func (r *Repo) Create(ctx context.Context, entry *domain.DayLogEntry) (*domain.DayLogEntry, error) {
	if entry == nil {
		return nil, fmt.Errorf("day_log: %w: entry is required", domain.ErrValidation)
	}

	sql, args, err := qb.Insert(table).
		Columns(columns...).
		Values(
			entry.ID,
			entry.ChatID,
			domain.DateOnly(entry.LogDate),
			entry.RawText,
			entry.StructuredText,
			entry.AudioText,
			entry.CreatedAt,
		).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert day_log: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.db, &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "day_log")
	}

	return out.toDomain(), nil
}

// ListByDate returns all entries for the exact (chatID, date) pair, ordered
// by creation time ascending. An empty result is not an error.
func (r *Repo) ListByDate(ctx context.Context, chatID int64, date time.Time) ([]domain.DayLogEntry, error) {
	sql, args, err := qb.Select(columns...).
		From(table).
		Where(sq.Eq{"chat_id": chatID, "log_date": domain.DateOnly(date)}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list day_logs: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "day_logs")
	}

	entries := make([]domain.DayLogEntry, len(rows))
	for i, rw := range rows {
		entries[i] = *rw.toDomain()
	}
	return entries, nil
}

func (rw row) toDomain() *domain.DayLogEntry {
	return &domain.DayLogEntry{
		ID:             rw.ID,
		ChatID:         rw.ChatID,
		LogDate:        rw.LogDate,
		RawText:        rw.RawText,
		StructuredText: rw.StructuredText,
		AudioText:      rw.AudioText,
		CreatedAt:      rw.CreatedAt,
	}
}
