package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
}

// AnimationMeta carries the attributes the platform needs to render a
// forwarded animation without re-probing the file.
type AnimationMeta struct {
	Duration int
	Width    int
	Height   int
}

// Sender is the outbound capability to the messaging platform. Every call is
// best-effort: the caller logs failures and moves on, there is no retry.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error
	SendAnimation(ctx context.Context, chatID int64, fileID string, meta AnimationMeta, caption string) error
	AnswerCallback(ctx context.Context, queryID, text string) error
}
