package telegram

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-anon-relay/internal/domain/ports/adapter"
)

// Ensure interface compliance
var _ adapter.Sender = (*NoopSender)(nil)

// NoopSender implements adapter.Sender for local/dev runs. It logs outbound
// actions instead of calling the real Bot API.
type NoopSender struct {
	log *zerolog.Logger
}

func NewNoopSender(logger *zerolog.Logger) *NoopSender {
	return &NoopSender{log: logger}
}

func (s *NoopSender) SendText(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info().Int64("chat_id", chatID).Int("button_rows", len(rows)).Str("text", text).Msg("[noop] sendMessage")
	return nil
}

func (s *NoopSender) SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info().Int64("chat_id", chatID).Str("file_id", fileID).Str("caption", caption).Msg("[noop] sendPhoto")
	return nil
}

func (s *NoopSender) SendAnimation(ctx context.Context, chatID int64, fileID string, meta adapter.AnimationMeta, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info().Int64("chat_id", chatID).Str("file_id", fileID).Int("duration", meta.Duration).Msg("[noop] sendAnimation")
	return nil
}

func (s *NoopSender) AnswerCallback(ctx context.Context, queryID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info().Str("query_id", queryID).Str("text", text).Msg("[noop] answerCallbackQuery")
	return nil
}
