package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-anon-relay/internal/domain/ports/adapter"
)

// Ensure interface compliance
var _ adapter.Sender = (*RealSender)(nil)

// RealSender delivers outbound actions through the Bot API. Calls are
// fire-and-forget from the router's perspective; the router logs failures and
// keeps going.
type RealSender struct {
	bot *tgbotapi.BotAPI
}

func NewRealSender(token string) (*RealSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api client: %w", err)
	}
	return &RealSender{bot: bot}, nil
}

func (s *RealSender) SendText(_ context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup := inlineMarkup(rows); markup != nil {
		msg.ReplyMarkup = *markup
	}
	_, err := s.bot.Send(msg)
	return err
}

func (s *RealSender) SendPhoto(_ context.Context, chatID int64, fileID, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	_, err := s.bot.Send(photo)
	return err
}

// SendAnimation goes through Params directly: AnimationConfig has no
// width/height fields, and resending a server-side file id with its original
// dimensions keeps the platform from re-probing the file.
func (s *RealSender) SendAnimation(_ context.Context, chatID int64, fileID string, meta adapter.AnimationMeta, caption string) error {
	params := tgbotapi.Params{"animation": fileID}
	params.AddNonZero64("chat_id", chatID)
	params.AddNonZero("duration", meta.Duration)
	params.AddNonZero("width", meta.Width)
	params.AddNonZero("height", meta.Height)
	params.AddNonEmpty("caption", caption)

	_, err := s.bot.MakeRequest("sendAnimation", params)
	return err
}

func (s *RealSender) AnswerCallback(_ context.Context, queryID, text string) error {
	_, err := s.bot.Request(tgbotapi.NewCallback(queryID, text))
	return err
}

func inlineMarkup(rows [][]adapter.InlineButton) *tgbotapi.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		keyboard = append(keyboard, buttons)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(keyboard...)
	return &markup
}
