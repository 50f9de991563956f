// Package webhook is the inbound Telegram transport. It decodes webhook
// updates, acknowledges them immediately, and runs each update's flow in its
// own goroutine so slow collaborator calls never block the Bot API.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"worklogbot/internal/calendar"
	"worklogbot/internal/config"
	"worklogbot/internal/domain"
	"worklogbot/internal/service/browse"
	"worklogbot/internal/service/ingest"
)

// Sender is the outbound Telegram surface the handler needs.
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendReplyKeyboard(chatID int64, text string, buttons ...string) error
	SendMenu(chatID int64, menu *calendar.Menu) error
	SendDocument(chatID int64, name string, data []byte) error
	AnswerCallback(callbackID string) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// Ingestor runs the day-ingestion and question flows.
type Ingestor interface {
	IngestDay(ctx context.Context, chatID int64, text string) (*ingest.DayResult, error)
	IngestAudio(ctx context.Context, chatID int64, audio []byte, filename string) (*ingest.DayResult, error)
	Question(ctx context.Context, text string) (string, error)
}

// Browser serves historical day logs.
type Browser interface {
	OpenDay(ctx context.Context, chatID int64, date time.Time) (*browse.File, error)
}

// Limiter throttles inbound messages per chat.
type Limiter interface {
	Allow(chatID int64, now time.Time) bool
}

// Handler processes Telegram webhook updates.
type Handler struct {
	tg      Sender
	ingest  Ingestor
	browse  Browser
	limiter Limiter

	telegramCfg config.TelegramConfig
	ingestCfg   config.IngestConfig
	log         *slog.Logger

	now func() time.Time
}

// NewHandler creates a webhook handler.
func NewHandler(
	tg Sender,
	ingestSvc Ingestor,
	browseSvc Browser,
	limiter Limiter,
	telegramCfg config.TelegramConfig,
	ingestCfg config.IngestConfig,
	log *slog.Logger,
) *Handler {
	return &Handler{
		tg:          tg,
		ingest:      ingestSvc,
		browse:      browseSvc,
		limiter:     limiter,
		telegramCfg: telegramCfg,
		ingestCfg:   ingestCfg,
		log:         log,
		now:         time.Now,
	}
}

// ServeHTTP decodes one update and acknowledges it. The flow itself runs
// detached from the request context: Telegram retries non-200 responses, and
// a retried ingestion would duplicate records.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.Warn("undecodable webhook update", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusOK)
		return
	}

	w.WriteHeader(http.StatusOK)

	go h.handleUpdate(context.Background(), update)
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if !h.limiter.Allow(chatID, h.now()) {
		h.log.Debug("message dropped by rate limit", slog.Int64("chat_id", chatID))
		return
	}

	switch {
	case msg.Voice != nil:
		h.handleAudio(ctx, chatID, msg.Voice.FileID, int64(msg.Voice.FileSize), "voice.ogg")
	case msg.Audio != nil:
		name := msg.Audio.FileName
		if name == "" {
			name = "audio.mp3"
		}
		h.handleAudio(ctx, chatID, msg.Audio.FileID, int64(msg.Audio.FileSize), name)
	case msg.Text != "":
		h.handleText(ctx, chatID, msg.Text)
	}
}

func (h *Handler) handleText(ctx context.Context, chatID int64, text string) {
	text = strings.TrimSpace(text)

	switch text {
	case "/start":
		h.send(chatID, func() error {
			return h.tg.SendReplyKeyboard(chatID, msgStart, buttonLogDay, buttonTables, buttonQuestion)
		})
		return
	case buttonLogDay:
		h.send(chatID, func() error { return h.tg.SendMessage(chatID, msgLogDayPrompt) })
		return
	case buttonTables:
		menu := calendar.Entry(h.now())
		h.send(chatID, func() error { return h.tg.SendMenu(chatID, &menu) })
		return
	case buttonQuestion:
		h.send(chatID, func() error { return h.tg.SendMessage(chatID, msgQuestionPrompt) })
		return
	}

	if day, ok := h.dayDescription(text); ok {
		h.runDayIngestion(ctx, chatID, day)
		return
	}

	h.runQuestion(ctx, chatID, text)
}

// dayDescription classifies free text: the configured prefix always marks a
// day description (and is stripped before structuring, separators included),
// and so does length above the threshold.
func (h *Handler) dayDescription(text string) (string, bool) {
	if strings.HasPrefix(strings.ToLower(text), strings.ToLower(h.ingestCfg.DayPrefix)) {
		rest := text[len(h.ingestCfg.DayPrefix):]
		return strings.TrimLeft(rest, ":- \t"), true
	}
	if len([]rune(text)) > h.ingestCfg.DayTextThreshold {
		return text, true
	}
	return "", false
}

func (h *Handler) runDayIngestion(ctx context.Context, chatID int64, text string) {
	res, err := h.ingest.IngestDay(ctx, chatID, text)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	h.send(chatID, func() error { return h.tg.SendMessage(chatID, dayReply(res)) })
}

func (h *Handler) runQuestion(ctx context.Context, chatID int64, text string) {
	answer, err := h.ingest.Question(ctx, text)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	h.send(chatID, func() error { return h.tg.SendMessage(chatID, answer) })
}

func (h *Handler) handleAudio(ctx context.Context, chatID int64, fileID string, size int64, filename string) {
	if size > h.telegramCfg.MaxAudioBytes {
		h.replyError(chatID, fmt.Errorf("audio of %d bytes: %w", size, domain.ErrAudioTooLarge))
		return
	}

	audio, err := h.tg.DownloadFile(ctx, fileID)
	if err != nil {
		h.log.Error("audio download failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
		h.send(chatID, func() error { return h.tg.SendMessage(chatID, msgProcessingFailed) })
		return
	}

	res, err := h.ingest.IngestAudio(ctx, chatID, audio, filename)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.send(chatID, func() error {
		return h.tg.SendMessage(chatID, fmt.Sprintf("Heard: %s\n\n%s", res.Transcript, dayReply(res)))
	})
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if err := h.tg.AnswerCallback(cb.ID); err != nil {
		h.log.Warn("callback ack failed", slog.String("error", err.Error()))
	}

	if cb.Message == nil || !calendar.IsToken(cb.Data) {
		return
	}
	chatID := cb.Message.Chat.ID

	step, err := calendar.Next(cb.Data, h.now())
	if err != nil {
		h.log.Warn("malformed calendar token",
			slog.Int64("chat_id", chatID),
			slog.String("token", cb.Data),
		)
		return
	}

	if step.Menu != nil {
		h.send(chatID, func() error { return h.tg.SendMenu(chatID, step.Menu) })
		return
	}

	file, err := h.browse.OpenDay(ctx, chatID, *step.Date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.send(chatID, func() error { return h.tg.SendMessage(chatID, msgNoRecords) })
			return
		}
		h.log.Error("day export failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
		h.send(chatID, func() error { return h.tg.SendMessage(chatID, msgProcessingFailed) })
		return
	}

	h.send(chatID, func() error { return h.tg.SendDocument(chatID, file.Name, file.Data) })
}

// dayReply builds the confirmation message after a successful ingestion.
func dayReply(res *ingest.DayResult) string {
	var b strings.Builder
	b.WriteString("Day logged.\n")
	fmt.Fprintf(&b, "Records extracted: %d", len(res.Outcomes))
	if failed := len(res.Outcomes) - res.Mirrored(); failed > 0 {
		fmt.Fprintf(&b, " (%d not mirrored to the table)", failed)
	}
	b.WriteString("\n\n")
	b.WriteString(res.Preview)
	return b.String()
}

// replyError maps flow errors to user-facing replies.
func (h *Handler) replyError(chatID int64, err error) {
	var reply string
	switch {
	case errors.Is(err, domain.ErrTooLong):
		reply = msgTextTooLong
	case errors.Is(err, domain.ErrAudioTooLarge):
		reply = msgAudioTooLarge
	case errors.Is(err, domain.ErrTranscriptTooShort):
		reply = msgTranscriptShort
	default:
		h.log.Error("update processing failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
		reply = msgProcessingFailed
	}
	h.send(chatID, func() error { return h.tg.SendMessage(chatID, reply) })
}

// send runs one outbound call and logs a failure; there is nothing else to
// do with a send error on this transport.
func (h *Handler) send(chatID int64, fn func() error) {
	if err := fn(); err != nil {
		h.log.Error("telegram send failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}
