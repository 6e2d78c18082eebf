package usecase

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-anon-relay/internal/domain/model"
	"telegram-anon-relay/internal/domain/ports/adapter"
	"telegram-anon-relay/internal/domain/ports/repository"
	"telegram-anon-relay/internal/infra/logging"
	"telegram-anon-relay/internal/infra/metrics"
)

const (
	sendCommandPrefix = "/send"

	mainMenuText   = "Pick a chat and your next messages will be delivered there anonymously."
	menuButtonText = "Send message"
	chooseChatText = "Choose a chat to relay into:"
	writeNowText   = "Write your message now"

	anonymousHandle = "anonymous"
)

// Compile-time check
var _ RelayUseCase = (*relayUC)(nil)

// RelayUseCase classifies each inbound update and dispatches it: join
// commands mutate the membership store, button clicks drive target selection,
// and private messages are forwarded into the sender's current target.
type RelayUseCase interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update) error
}

type relayUC struct {
	members repository.MembershipRepository
	targets repository.RelayTargetRepository
	sender  adapter.Sender
	log     *zerolog.Logger
}

func NewRelayUseCase(members repository.MembershipRepository, targets repository.RelayTargetRepository, sender adapter.Sender, logger *zerolog.Logger) *relayUC {
	return &relayUC{members: members, targets: targets, sender: sender, log: logger}
}

// updateKind is the explicit classification of the update envelope. A message
// takes priority when both fields are somehow present.
type updateKind int

const (
	updateNone updateKind = iota
	updateMessage
	updateCallback
)

func (k updateKind) String() string {
	switch k {
	case updateMessage:
		return "message"
	case updateCallback:
		return "callback"
	default:
		return "none"
	}
}

func classify(upd tgbotapi.Update) updateKind {
	switch {
	case upd.Message != nil:
		return updateMessage
	case upd.CallbackQuery != nil:
		return updateCallback
	default:
		return updateNone
	}
}

// HandleUpdate never fails on outbound send or persistence errors; those are
// logged and absorbed so the remaining independent actions of the update
// still run. A non-nil error means the router itself broke.
func (u *relayUC) HandleUpdate(ctx context.Context, upd tgbotapi.Update) error {
	defer logging.TraceDuration(u.log, "RelayUC.HandleUpdate")()

	kind := classify(upd)
	metrics.IncUpdateReceived(kind.String())

	switch kind {
	case updateMessage:
		u.handleMessage(ctx, upd.Message)
	case updateCallback:
		u.handleCallback(ctx, upd.CallbackQuery)
	default:
		logging.With(ctx, u.log).Info().Int("update_id", upd.UpdateID).Msg("update carries neither message nor callback, skipping")
	}
	return nil
}

func (u *relayUC) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	ctx = logging.WithChatID(ctx, msg.Chat.ID)
	if msg.From != nil {
		ctx = logging.WithTgID(ctx, msg.From.ID)
	}

	if strings.HasPrefix(msg.Text, sendCommandPrefix) {
		u.handleSendCommand(ctx, msg)
		return
	}
	if msg.Chat.IsPrivate() {
		u.relayPrivateMessage(ctx, msg)
	}
}

func (u *relayUC) handleSendCommand(ctx context.Context, msg *tgbotapi.Message) {
	from := msg.From
	if from == nil || from.IsBot {
		return
	}

	if msg.Chat.IsPrivate() {
		u.sendMainMenu(ctx, msg.Chat.ID)
		return
	}

	added := u.members.AddMember(from.ID, msg.Chat.ID, msg.Chat.Title)
	if added {
		metrics.IncMembershipJoin()
		if err := u.members.Save(); err != nil {
			metrics.IncSnapshotSaveFailure()
			logging.With(ctx, u.log).Error().Err(err).Msg("membership snapshot save failed, in-memory state stays authoritative")
		}
	}

	handle := anonymousHandle
	if from.UserName != "" {
		handle = "@" + from.UserName
	}
	text := fmt.Sprintf("%s can now relay into this chat", handle)
	if !added {
		text = fmt.Sprintf("%s can already relay into this chat", handle)
	}
	u.send(ctx, msg.Chat.ID, text, nil)
}

// relayPrivateMessage forwards text, the first photo and an animation
// independently; any subset of the three may be present and each forward
// failure leaves the others unaffected.
func (u *relayUC) relayPrivateMessage(ctx context.Context, msg *tgbotapi.Message) {
	from := msg.From
	if from == nil {
		return
	}

	target, ok := u.targets.Target(from.ID)
	if !ok {
		u.sendMainMenu(ctx, msg.Chat.ID)
		return
	}

	if msg.Text != "" {
		if err := u.sender.SendText(ctx, target, msg.Text, nil); err != nil {
			u.logSendError(ctx, err, target)
		} else {
			metrics.IncRelayForward("text")
		}
	}
	if len(msg.Photo) > 0 {
		photo := largestPhoto(msg.Photo)
		if err := u.sender.SendPhoto(ctx, target, photo.FileID, msg.Caption); err != nil {
			u.logSendError(ctx, err, target)
		} else {
			metrics.IncRelayForward("photo")
		}
	}
	if msg.Animation != nil {
		meta := adapter.AnimationMeta{
			Duration: msg.Animation.Duration,
			Width:    msg.Animation.Width,
			Height:   msg.Animation.Height,
		}
		if err := u.sender.SendAnimation(ctx, target, msg.Animation.FileID, meta, msg.Caption); err != nil {
			u.logSendError(ctx, err, target)
		} else {
			metrics.IncRelayForward("animation")
		}
	}
}

func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best
}

func (u *relayUC) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.From.IsBot {
		return
	}
	ctx = logging.WithTgID(ctx, cb.From.ID)

	action, err := model.ParseAction(cb.Data)
	if err != nil {
		logging.With(ctx, u.log).Info().Err(err).Msg("unrecognized callback data, skipping")
		return
	}

	switch action.Kind {
	case model.ActionSend:
		u.offerChatSelection(ctx, cb)
	case model.ActionSendTo:
		u.selectTarget(ctx, cb, action.ChatID)
	}
}

// offerChatSelection lists the clicker's chats as a button grid in the chat
// where the prompt lived. Chats without a title cannot be labeled and are
// skipped; with nothing to list the whole click is a no-op, ack included.
func (u *relayUC) offerChatSelection(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chats := u.members.ChatsForUser(cb.From.ID)

	rows := make([][]adapter.InlineButton, 0, len(chats))
	for _, chat := range chats {
		if chat.Title == "" {
			continue
		}
		rows = append(rows, []adapter.InlineButton{{
			Text: chat.Title,
			Data: model.SendToAction(chat.ID).String(),
		}})
	}
	if len(rows) == 0 {
		logging.With(ctx, u.log).Debug().Msg("user has no selectable chats, ignoring selection request")
		return
	}
	if cb.Message == nil {
		logging.With(ctx, u.log).Debug().Msg("callback without originating message, nowhere to post the chat list")
		return
	}

	u.send(ctx, cb.Message.Chat.ID, chooseChatText, rows)
	u.answer(ctx, cb.ID)
}

func (u *relayUC) selectTarget(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64) {
	if err := u.targets.SetTarget(cb.From.ID, chatID); err != nil {
		logging.With(ctx, u.log).Error().Err(err).Int64("target_chat_id", chatID).Msg("relay target upsert failed")
	}
	u.answer(ctx, cb.ID)
	if cb.Message != nil {
		u.send(ctx, cb.Message.Chat.ID, writeNowText, nil)
	}
}

func (u *relayUC) sendMainMenu(ctx context.Context, chatID int64) {
	rows := [][]adapter.InlineButton{{{
		Text: menuButtonText,
		Data: model.SendAction().String(),
	}}}
	u.send(ctx, chatID, mainMenuText, rows)
}

func (u *relayUC) send(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) {
	if err := u.sender.SendText(ctx, chatID, text, rows); err != nil {
		u.logSendError(ctx, err, chatID)
	}
}

func (u *relayUC) answer(ctx context.Context, queryID string) {
	if err := u.sender.AnswerCallback(ctx, queryID, ""); err != nil {
		metrics.IncSendError()
		logging.With(ctx, u.log).Error().Err(err).Str("query_id", queryID).Msg("callback acknowledgement failed")
	}
}

func (u *relayUC) logSendError(ctx context.Context, err error, chatID int64) {
	metrics.IncSendError()
	logging.With(ctx, u.log).Error().Err(err).Int64("target_chat_id", chatID).Msg("outbound send failed")
}
