package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklogbot/internal/calendar"
	"worklogbot/internal/config"
	"worklogbot/internal/domain"
	"worklogbot/internal/service/browse"
	"worklogbot/internal/service/ingest"
)

var testNow = time.Date(2026, time.August, 28, 14, 5, 0, 0, time.UTC)

type senderMock struct {
	messages  []string
	keyboards []string
	menus     []*calendar.Menu
	documents []string
	callbacks []string

	DownloadFileFunc func(ctx context.Context, fileID string) ([]byte, error)
}

func (m *senderMock) SendMessage(_ int64, text string) error {
	m.messages = append(m.messages, text)
	return nil
}

func (m *senderMock) SendReplyKeyboard(_ int64, text string, buttons ...string) error {
	m.keyboards = append(m.keyboards, append([]string{text}, buttons...)...)
	return nil
}

func (m *senderMock) SendMenu(_ int64, menu *calendar.Menu) error {
	m.menus = append(m.menus, menu)
	return nil
}

func (m *senderMock) SendDocument(_ int64, name string, _ []byte) error {
	m.documents = append(m.documents, name)
	return nil
}

func (m *senderMock) AnswerCallback(id string) error {
	m.callbacks = append(m.callbacks, id)
	return nil
}

func (m *senderMock) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	if m.DownloadFileFunc == nil {
		return nil, errors.New("unexpected download")
	}
	return m.DownloadFileFunc(ctx, fileID)
}

type ingestorMock struct {
	IngestDayFunc   func(ctx context.Context, chatID int64, text string) (*ingest.DayResult, error)
	IngestAudioFunc func(ctx context.Context, chatID int64, audio []byte, filename string) (*ingest.DayResult, error)
	QuestionFunc    func(ctx context.Context, text string) (string, error)
}

func (m *ingestorMock) IngestDay(ctx context.Context, chatID int64, text string) (*ingest.DayResult, error) {
	return m.IngestDayFunc(ctx, chatID, text)
}

func (m *ingestorMock) IngestAudio(ctx context.Context, chatID int64, audio []byte, filename string) (*ingest.DayResult, error) {
	return m.IngestAudioFunc(ctx, chatID, audio, filename)
}

func (m *ingestorMock) Question(ctx context.Context, text string) (string, error) {
	return m.QuestionFunc(ctx, text)
}

type browserMock struct {
	OpenDayFunc func(ctx context.Context, chatID int64, date time.Time) (*browse.File, error)
}

func (m *browserMock) OpenDay(ctx context.Context, chatID int64, date time.Time) (*browse.File, error) {
	return m.OpenDayFunc(ctx, chatID, date)
}

type limiterMock struct {
	allow bool
}

func (m *limiterMock) Allow(int64, time.Time) bool { return m.allow }

func newHandler(tg *senderMock, ing *ingestorMock, br *browserMock, allow bool) *Handler {
	h := NewHandler(
		tg, ing, br,
		&limiterMock{allow: allow},
		config.TelegramConfig{MaxAudioBytes: 1024},
		config.IngestConfig{DayPrefix: "Log day", DayTextThreshold: 120, PreviewLen: 200},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	h.now = func() time.Time { return testNow }
	return h
}

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: text,
		},
	}
}

func callbackUpdate(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-1",
			Data:    data,
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		},
	}
}

func dayResult(outcomes ...error) *ingest.DayResult {
	res := &ingest.DayResult{Preview: "preview text"}
	for _, err := range outcomes {
		res.Outcomes = append(res.Outcomes, ingest.RecordOutcome{Err: err})
	}
	return res
}

func TestStart(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	h := newHandler(tg, &ingestorMock{}, &browserMock{}, true)

	h.handleUpdate(context.Background(), textUpdate(42, "/start"))

	require.Len(t, tg.keyboards, 4)
	assert.Equal(t, msgStart, tg.keyboards[0])
	assert.Equal(t, buttonLogDay, tg.keyboards[1])
	assert.Equal(t, buttonTables, tg.keyboards[2])
	assert.Equal(t, buttonQuestion, tg.keyboards[3])
}

func TestLogDayButton(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	h := newHandler(tg, &ingestorMock{}, &browserMock{}, true)

	h.handleUpdate(context.Background(), textUpdate(42, buttonLogDay))

	require.Len(t, tg.messages, 1)
	assert.Equal(t, msgLogDayPrompt, tg.messages[0])
}

func TestTablesButton_SendsYearMenu(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	h := newHandler(tg, &ingestorMock{}, &browserMock{}, true)

	h.handleUpdate(context.Background(), textUpdate(42, buttonTables))

	require.Len(t, tg.menus, 1)
	assert.Equal(t, "Pick a year:", tg.menus[0].Prompt)
	require.Len(t, tg.menus[0].Rows, 3)
	assert.Equal(t, "year_2026", tg.menus[0].Rows[1][0].Token)
}

func TestQuestionButton(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	h := newHandler(tg, &ingestorMock{}, &browserMock{}, true)

	h.handleUpdate(context.Background(), textUpdate(42, buttonQuestion))

	require.Len(t, tg.messages, 1)
	assert.Equal(t, msgQuestionPrompt, tg.messages[0])
}

func TestDayIngestion_ByPrefix(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	ing := &ingestorMock{
		IngestDayFunc: func(_ context.Context, chatID int64, text string) (*ingest.DayResult, error) {
			assert.Equal(t, int64(42), chatID)
			assert.Equal(t, "painted site X", text) // prefix and separator stripped
			return dayResult(nil, errors.New("notion down")), nil
		},
	}
	h := newHandler(tg, ing, &browserMock{}, true)

	h.handleUpdate(context.Background(), textUpdate(42, "log DAY: painted site X"))

	require.Len(t, tg.messages, 1)
	assert.Contains(t, tg.messages[0], "Records extracted: 2")
	assert.Contains(t, tg.messages[0], "1 not mirrored")
	assert.Contains(t, tg.messages[0], "preview text")
}

func TestDayIngestion_ByLength(t *testing.T) {
	t.Parallel()

	called := false
	ing := &ingestorMock{
		IngestDayFunc: func(_ context.Context, _ int64, _ string) (*ingest.DayResult, error) {
			called = true
			return dayResult(), nil
		},
	}
	h := newHandler(&senderMock{}, ing, &browserMock{}, true)

	h.handleUpdate(context.Background(), textUpdate(42, strings.Repeat("a long day ", 20)))

	assert.True(t, called)
}

func TestShortText_GoesToQuestion(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	ing := &ingestorMock{
		QuestionFunc: func(_ context.Context, text string) (string, error) {
			assert.Equal(t, "how are you?", text)
			return "fine", nil
		},
	}
	h := newHandler(tg, ing, &browserMock{}, true)

	h.handleUpdate(context.Background(), textUpdate(42, "how are you?"))

	require.Len(t, tg.messages, 1)
	assert.Equal(t, "fine", tg.messages[0])
}

func TestRateLimited_Dropped(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	ing := &ingestorMock{
		QuestionFunc: func(_ context.Context, _ string) (string, error) {
			t.Fatal("rate-limited message must not reach services")
			return "", nil
		},
	}
	h := newHandler(tg, ing, &browserMock{}, false)

	h.handleUpdate(context.Background(), textUpdate(42, "hello"))

	assert.Empty(t, tg.messages)
}

func TestTooLong_UserReply(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	ing := &ingestorMock{
		IngestDayFunc: func(_ context.Context, _ int64, _ string) (*ingest.DayResult, error) {
			return nil, fmt.Errorf("ingest day: %w", domain.ErrTooLong)
		},
	}
	h := newHandler(tg, ing, &browserMock{}, true)

	h.handleUpdate(context.Background(), textUpdate(42, "Log day: "+strings.Repeat("x", 50)))

	require.Len(t, tg.messages, 1)
	assert.Equal(t, msgTextTooLong, tg.messages[0])
}

func TestVoice_FullFlow(t *testing.T) {
	t.Parallel()

	tg := &senderMock{
		DownloadFileFunc: func(_ context.Context, fileID string) ([]byte, error) {
			assert.Equal(t, "file-1", fileID)
			return []byte{1, 2, 3}, nil
		},
	}
	ing := &ingestorMock{
		IngestAudioFunc: func(_ context.Context, chatID int64, audio []byte, filename string) (*ingest.DayResult, error) {
			assert.Equal(t, int64(42), chatID)
			assert.Equal(t, []byte{1, 2, 3}, audio)
			assert.Equal(t, "voice.ogg", filename)
			res := dayResult(nil)
			res.Transcript = "worked on site X"
			return res, nil
		},
	}
	h := newHandler(tg, ing, &browserMock{}, true)

	h.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat:  &tgbotapi.Chat{ID: 42},
			Voice: &tgbotapi.Voice{FileID: "file-1", FileSize: 512},
		},
	})

	require.Len(t, tg.messages, 1)
	assert.Contains(t, tg.messages[0], "Heard: worked on site X")
	assert.Contains(t, tg.messages[0], "Records extracted: 1")
}

func TestVoice_TooLarge(t *testing.T) {
	t.Parallel()

	tg := &senderMock{
		DownloadFileFunc: func(_ context.Context, _ string) ([]byte, error) {
			t.Fatal("oversized audio must not be downloaded")
			return nil, nil
		},
	}
	h := newHandler(tg, &ingestorMock{}, &browserMock{}, true)

	h.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat:  &tgbotapi.Chat{ID: 42},
			Voice: &tgbotapi.Voice{FileID: "file-1", FileSize: 4096},
		},
	})

	require.Len(t, tg.messages, 1)
	assert.Equal(t, msgAudioTooLarge, tg.messages[0])
}

func TestVoice_ShortTranscript(t *testing.T) {
	t.Parallel()

	tg := &senderMock{
		DownloadFileFunc: func(_ context.Context, _ string) ([]byte, error) {
			return []byte{1}, nil
		},
	}
	ing := &ingestorMock{
		IngestAudioFunc: func(_ context.Context, _ int64, _ []byte, _ string) (*ingest.DayResult, error) {
			return nil, fmt.Errorf("ingest audio: %w", domain.ErrTranscriptTooShort)
		},
	}
	h := newHandler(tg, ing, &browserMock{}, true)

	h.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat:  &tgbotapi.Chat{ID: 42},
			Voice: &tgbotapi.Voice{FileID: "file-1", FileSize: 10},
		},
	})

	require.Len(t, tg.messages, 1)
	assert.Equal(t, msgTranscriptShort, tg.messages[0])
}

func TestCallback_YearToMonths(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	h := newHandler(tg, &ingestorMock{}, &browserMock{}, true)

	h.handleUpdate(context.Background(), callbackUpdate(42, "year_2026"))

	assert.Equal(t, []string{"cb-1"}, tg.callbacks)
	require.Len(t, tg.menus, 1)
	assert.Len(t, tg.menus[0].Buttons(), 12)
}

func TestCallback_DayToDocument(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	br := &browserMock{
		OpenDayFunc: func(_ context.Context, chatID int64, date time.Time) (*browse.File, error) {
			assert.Equal(t, int64(42), chatID)
			assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), date)
			return &browse.File{Name: "day-2026-02-28.xlsx", Data: []byte("xlsx")}, nil
		},
	}
	h := newHandler(tg, &ingestorMock{}, br, true)

	h.handleUpdate(context.Background(), callbackUpdate(42, "day_2026_02_28"))

	require.Len(t, tg.documents, 1)
	assert.Equal(t, "day-2026-02-28.xlsx", tg.documents[0])
}

func TestCallback_EmptyDay(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	br := &browserMock{
		OpenDayFunc: func(_ context.Context, _ int64, _ time.Time) (*browse.File, error) {
			return nil, fmt.Errorf("open day: %w", domain.ErrNotFound)
		},
	}
	h := newHandler(tg, &ingestorMock{}, br, true)

	h.handleUpdate(context.Background(), callbackUpdate(42, "day_2026_02_28"))

	require.Len(t, tg.messages, 1)
	assert.Equal(t, msgNoRecords, tg.messages[0])
	assert.Empty(t, tg.documents)
}

func TestCallback_ForeignDataIgnored(t *testing.T) {
	t.Parallel()

	tg := &senderMock{}
	h := newHandler(tg, &ingestorMock{}, &browserMock{}, true)

	h.handleUpdate(context.Background(), callbackUpdate(42, "something_else"))

	assert.Equal(t, []string{"cb-1"}, tg.callbacks)
	assert.Empty(t, tg.menus)
	assert.Empty(t, tg.messages)
}

func TestServeHTTP_AcksGarbage(t *testing.T) {
	t.Parallel()

	h := newHandler(&senderMock{}, &ingestorMock{}, &browserMock{}, true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/telegram/webhook", strings.NewReader("{not json"))
	h.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
}
