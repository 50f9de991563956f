// Package telegram wraps the Bot API for outbound messaging and file
// downloads. The webhook transport owns inbound update handling.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"worklogbot/internal/calendar"
	"worklogbot/internal/config"
)

// Client is the outbound side of the bot.
type Client struct {
	bot  *tgbotapi.BotAPI
	http *http.Client
}

// New authorizes against the Bot API and returns a Client.
func New(cfg config.TelegramConfig) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("authorize bot: %w", err)
	}
	return &Client{bot: bot, http: http.DefaultClient}, nil
}

// SendMessage sends plain text to a chat.
func (c *Client) SendMessage(chatID int64, text string) error {
	if _, err := c.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendReplyKeyboard sends text with a persistent reply keyboard of one
// button per row.
func (c *Client) SendReplyKeyboard(chatID int64, text string, buttons ...string) error {
	rows := make([][]tgbotapi.KeyboardButton, len(buttons))
	for i, b := range buttons {
		rows[i] = tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(b))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	msg.ReplyMarkup = kb

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("send reply keyboard: %w", err)
	}
	return nil
}

// SendMenu renders a calendar menu as an inline keyboard.
func (c *Client) SendMenu(chatID int64, menu *calendar.Menu) error {
	rows := make([][]tgbotapi.InlineKeyboardButton, len(menu.Rows))
	for i, row := range menu.Rows {
		btns := make([]tgbotapi.InlineKeyboardButton, len(row))
		for j, b := range row {
			btns[j] = tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Token)
		}
		rows[i] = btns
	}

	msg := tgbotapi.NewMessage(chatID, menu.Prompt)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("send menu: %w", err)
	}
	return nil
}

// SendDocument uploads an in-memory file to a chat.
func (c *Client) SendDocument(chatID int64, name string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := c.bot.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query so the client stops showing
// a progress indicator.
func (c *Client) AnswerCallback(callbackID string) error {
	if _, err := c.bot.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

// DownloadFile fetches a Telegram-hosted file by its file ID.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := c.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build file request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file body: %w", err)
	}
	return data, nil
}
