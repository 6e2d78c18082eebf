package store

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/tidwall/buntdb"

	"telegram-anon-relay/internal/domain/ports/repository"
)

var _ repository.RelayTargetRepository = (*RelayTargets)(nil)

// RelayTargets records, per user, the chat their private messages are
// forwarded into. It deliberately sits in its own buntdb instance rather than
// behind the membership lock: target reads happen on every private message,
// membership writes only on joins, and the two must not contend.
type RelayTargets struct {
	db  *buntdb.DB
	log *zerolog.Logger
}

// OpenRelayTargets opens the registry at path. An empty path keeps targets
// in memory only; selections then do not survive a restart, which is
// acceptable since users can always re-pick from the menu.
func OpenRelayTargets(path string, logger *zerolog.Logger) (*RelayTargets, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open relay target registry: %w", err)
	}
	return &RelayTargets{db: db, log: logger}, nil
}

func (r *RelayTargets) Close() error {
	return r.db.Close()
}

func targetKey(userID int64) string {
	return "target:" + strconv.FormatInt(userID, 10)
}

func (r *RelayTargets) Target(userID int64) (int64, bool) {
	var raw string
	err := r.db.View(func(tx *buntdb.Tx) error {
		var err error
		raw, err = tx.Get(targetKey(userID))
		return err
	})
	if err != nil {
		if !errors.Is(err, buntdb.ErrNotFound) {
			r.log.Error().Err(err).Int64("tg_id", userID).Msg("relay target lookup failed")
		}
		return 0, false
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		r.log.Error().Err(err).Str("value", raw).Int64("tg_id", userID).Msg("relay target entry is not a chat id")
		return 0, false
	}
	return chatID, true
}

func (r *RelayTargets) SetTarget(userID, chatID int64) error {
	err := r.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(targetKey(userID), strconv.FormatInt(chatID, 10), nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("store relay target: %w", err)
	}
	return nil
}
