package model

import (
	"fmt"
	"strconv"
	"strings"

	"telegram-anon-relay/internal/domain"
)

// ActionKind discriminates the payloads carried in inline button callback
// data.
type ActionKind int

const (
	// ActionSend asks the bot to list the clicker's chats for selection.
	ActionSend ActionKind = iota
	// ActionSendTo selects a concrete chat as the clicker's relay target.
	ActionSendTo
)

const (
	sendToken    = "send"
	sendToPrefix = "send_to:"
)

// Action is an inline button payload, encoded as a single string token:
// "send" or "send_to:<chat_id>".
type Action struct {
	Kind   ActionKind
	ChatID int64 // set only for ActionSendTo
}

func SendAction() Action {
	return Action{Kind: ActionSend}
}

func SendToAction(chatID int64) Action {
	return Action{Kind: ActionSendTo, ChatID: chatID}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionSendTo:
		return sendToPrefix + strconv.FormatInt(a.ChatID, 10)
	default:
		return sendToken
	}
}

// ParseAction decodes callback data back into an Action.
func ParseAction(data string) (Action, error) {
	switch {
	case data == sendToken:
		return SendAction(), nil
	case strings.HasPrefix(data, sendToPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, sendToPrefix), 10, 64)
		if err != nil {
			return Action{}, fmt.Errorf("%w: bad chat id in %q", domain.ErrUnknownAction, data)
		}
		return SendToAction(id), nil
	default:
		return Action{}, fmt.Errorf("%w: %q", domain.ErrUnknownAction, data)
	}
}
