package repository

import "telegram-anon-relay/internal/domain/model"

// MembershipRepository is the port for the chat membership registry: which
// users opted into relaying for which group-like chats.
type MembershipRepository interface {
	// ChatsForUser returns snapshot copies of every chat the user belongs
	// to, in no particular order.
	ChatsForUser(userID int64) []model.ChatInfo
	// AddMember records the membership, creating the chat record on first
	// join. Returns true only when the membership is new; callers use that
	// to decide whether to persist and which confirmation to send.
	AddMember(userID, chatID int64, title string) bool
	// Save rewrites the durable snapshot from current state. A failure is
	// non-fatal: in-memory state stays authoritative until the next
	// successful save.
	Save() error
}

// RelayTargetRepository is the port for the per-user relay target: the chat a
// user's private messages are currently forwarded into.
type RelayTargetRepository interface {
	Target(userID int64) (chatID int64, ok bool)
	SetTarget(userID, chatID int64) error
}
