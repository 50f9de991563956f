// Package browse serves historical day logs: it backs the calendar menu's
// terminal step by packaging a day's entries into a downloadable workbook.
package browse

import (
	"context"
	"fmt"
	"time"

	"worklogbot/internal/domain"
	"worklogbot/internal/export"
)

// DayLogReader lists day-log entries from the primary store.
type DayLogReader interface {
	ListByDate(ctx context.Context, chatID int64, date time.Time) ([]domain.DayLogEntry, error)
}

// File is a named in-memory document ready for delivery.
type File struct {
	Name string
	Data []byte
}

// Service implements day-log browsing.
type Service struct {
	dayLogs DayLogReader
}

// NewService creates a browse service.
func NewService(dayLogs DayLogReader) *Service {
	return &Service{dayLogs: dayLogs}
}

// OpenDay exports all of a chat's entries for one day as a workbook.
// A day with no entries returns domain.ErrNotFound.
func (s *Service) OpenDay(ctx context.Context, chatID int64, date time.Time) (*File, error) {
	entries, err := s.dayLogs.ListByDate(ctx, chatID, date)
	if err != nil {
		return nil, fmt.Errorf("list day logs: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("open day %s: %w", date.Format(time.DateOnly), domain.ErrNotFound)
	}

	data, err := export.DayWorkbook(entries)
	if err != nil {
		return nil, fmt.Errorf("export day: %w", err)
	}

	return &File{Name: export.Filename(date), Data: data}, nil
}
