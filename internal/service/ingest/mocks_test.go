package ingest

import (
	"context"
	"time"

	"worklogbot/internal/domain"
)

type structurerMock struct {
	StructureDayFunc func(ctx context.Context, raw string, ref time.Time) (string, error)
	AnswerFunc       func(ctx context.Context, question string) (string, error)
}

func (m *structurerMock) StructureDay(ctx context.Context, raw string, ref time.Time) (string, error) {
	return m.StructureDayFunc(ctx, raw, ref)
}

func (m *structurerMock) Answer(ctx context.Context, question string) (string, error) {
	return m.AnswerFunc(ctx, question)
}

type transcriberMock struct {
	TranscribeFunc func(ctx context.Context, audio []byte, filename string) (string, error)
}

func (m *transcriberMock) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	return m.TranscribeFunc(ctx, audio, filename)
}

type dayLogRepoMock struct {
	CreateFunc func(ctx context.Context, entry *domain.DayLogEntry) (*domain.DayLogEntry, error)
}

func (m *dayLogRepoMock) Create(ctx context.Context, entry *domain.DayLogEntry) (*domain.DayLogEntry, error) {
	return m.CreateFunc(ctx, entry)
}

type recordStoreMock struct {
	CreateRecordFunc func(ctx context.Context, chatID int64, rec domain.WorkRecord) error
}

func (m *recordStoreMock) CreateRecord(ctx context.Context, chatID int64, rec domain.WorkRecord) error {
	return m.CreateRecordFunc(ctx, chatID, rec)
}
