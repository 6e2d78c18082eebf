package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"telegram-anon-relay/internal/domain"
	"telegram-anon-relay/internal/domain/model"
	"telegram-anon-relay/internal/domain/ports/repository"
)

var _ repository.MembershipRepository = (*MembershipStore)(nil)

// MembershipStore keeps the chat -> members mapping together with its reverse
// user -> chats index. A single RWMutex guards both so readers never observe
// one side updated without the other. The durable form is a pretty-printed
// JSON array of ChatInfo records, rewritten wholesale on each Save.
type MembershipStore struct {
	path string
	log  *zerolog.Logger

	mu        sync.RWMutex
	chats     map[int64]*chatRecord
	userChats map[int64]map[int64]struct{}
}

type chatRecord struct {
	id      int64
	title   string
	members map[int64]struct{}
}

func (r *chatRecord) snapshot() model.ChatInfo {
	members := make([]int64, 0, len(r.members))
	for id := range r.members {
		members = append(members, id)
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return model.ChatInfo{ID: r.id, Title: r.title, Members: members}
}

// OpenMembership loads the snapshot at path, rebuilding the reverse index
// from every record's member set. A missing file yields an empty store; a
// file that exists but does not parse is fatal.
func OpenMembership(path string, logger *zerolog.Logger) (*MembershipStore, error) {
	s := &MembershipStore{
		path:      path,
		log:       logger,
		chats:     make(map[int64]*chatRecord),
		userChats: make(map[int64]map[int64]struct{}),
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read membership snapshot: %w", err)
	}

	var records []model.ChatInfo
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptSnapshot, path, err)
	}

	for _, rec := range records {
		chat := &chatRecord{id: rec.ID, title: rec.Title, members: make(map[int64]struct{}, len(rec.Members))}
		for _, userID := range rec.Members {
			chat.members[userID] = struct{}{}
			s.indexMembership(userID, rec.ID)
		}
		s.chats[rec.ID] = chat
	}
	logger.Info().Int("chats", len(s.chats)).Int("users", len(s.userChats)).Msg("membership snapshot loaded")
	return s, nil
}

// indexMembership is only called while holding the write lock (or before the
// store is shared, during Open).
func (s *MembershipStore) indexMembership(userID, chatID int64) {
	set := s.userChats[userID]
	if set == nil {
		set = make(map[int64]struct{})
		s.userChats[userID] = set
	}
	set[chatID] = struct{}{}
}

func (s *MembershipStore) ChatsForUser(userID int64) []model.ChatInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ChatInfo, 0, len(s.userChats[userID]))
	for chatID := range s.userChats[userID] {
		if chat, ok := s.chats[chatID]; ok {
			out = append(out, chat.snapshot())
		}
	}
	return out
}

func (s *MembershipStore) AddMember(userID, chatID int64, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.chats[chatID]
	if chat == nil {
		chat = &chatRecord{id: chatID, title: title, members: make(map[int64]struct{})}
		s.chats[chatID] = chat
	}
	if _, exists := chat.members[userID]; exists {
		return false
	}
	chat.members[userID] = struct{}{}
	s.indexMembership(userID, chatID)
	return true
}

// Save serializes under a read lock into a cloned slice, then writes the file
// with no lock held so readers are never blocked on filesystem I/O.
func (s *MembershipStore) Save() error {
	s.mu.RLock()
	records := make([]model.ChatInfo, 0, len(s.chats))
	for _, chat := range s.chats {
		records = append(records, chat.snapshot())
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize membership snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write membership snapshot: %w", err)
	}
	return nil
}
