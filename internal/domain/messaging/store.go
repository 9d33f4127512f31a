package messaging

import (
	"context"
	"sort"
	"sync"
	"time"

	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Store interface {
	CreateConversation(ctx context.Context, conversation *Conversation) error
	GetConversation(ctx context.Context, id ulid.ULID) (*Conversation, error)
	// FindConversation devolve ErrConversationNotFound quando o par ainda nao conversou.
	FindConversation(ctx context.Context, participantA, participantB ulid.ULID, helpRequestID *ulid.ULID) (*Conversation, error)
	ListConversations(ctx context.Context, participantID ulid.ULID, pagination *pkg.PaginationParams) ([]*Conversation, int64, error)

	CreateMessage(ctx context.Context, message *Message) error
	ListMessages(ctx context.Context, conversationID ulid.ULID, pagination *pkg.PaginationParams) ([]*Message, int64, error)
	LastMessage(ctx context.Context, conversationID ulid.ULID) (*Message, error)
	MarkRead(ctx context.Context, conversationID, readerID ulid.ULID, readAt time.Time) (int64, error)
	CountUnread(ctx context.Context, conversationID, readerID ulid.ULID) (int64, error)
}

type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[ulid.ULID]*Conversation
	messages      map[ulid.ULID][]*Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[ulid.ULID]*Conversation),
		messages:      make(map[ulid.ULID][]*Message),
	}
}

func (s *MemoryStore) CreateConversation(ctx context.Context, conversation *Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[conversation.Id]; exists {
		return appErrors.NewConflictError("Conversa")
	}
	for _, c := range s.conversations {
		if c.ParticipantA == conversation.ParticipantA && c.ParticipantB == conversation.ParticipantB &&
			sameHelpRequest(c.HelpRequestId, conversation.HelpRequestId) {
			return appErrors.NewConflictError("Conversa")
		}
	}
	clone := *conversation
	s.conversations[conversation.Id] = &clone
	return nil
}

func (s *MemoryStore) GetConversation(ctx context.Context, id ulid.ULID) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conversations[id]
	if !ok {
		return nil, appErrors.ErrConversationNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *MemoryStore) FindConversation(ctx context.Context, participantA, participantB ulid.ULID, helpRequestID *ulid.ULID) (*Conversation, error) {
	a, b := orderPair(participantA, participantB)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.conversations {
		if c.ParticipantA == a && c.ParticipantB == b && sameHelpRequest(c.HelpRequestId, helpRequestID) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, appErrors.ErrConversationNotFound
}

func (s *MemoryStore) ListConversations(ctx context.Context, participantID ulid.ULID, pagination *pkg.PaginationParams) ([]*Conversation, int64, error) {
	pagination = pkg.NormalizePagination(pagination)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*Conversation
	for _, c := range s.conversations {
		if c.HasParticipant(participantID) {
			clone := *c
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].Id.Compare(matched[j].Id) > 0
	})

	return page(matched, pagination), int64(len(matched)), nil
}

func (s *MemoryStore) CreateMessage(ctx context.Context, message *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[message.ConversationId]
	if !ok {
		return appErrors.ErrConversationNotFound
	}
	clone := *message
	s.messages[message.ConversationId] = append(s.messages[message.ConversationId], &clone)
	c.UpdatedAt = message.CreatedAt
	return nil
}

func (s *MemoryStore) ListMessages(ctx context.Context, conversationID ulid.ULID, pagination *pkg.PaginationParams) ([]*Message, int64, error) {
	pagination = pkg.NormalizePagination(pagination)

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[conversationID]
	out := make([]*Message, 0, len(stored))
	for _, m := range stored {
		out = append(out, copyMessage(m))
	}
	return page(out, pagination), int64(len(out)), nil
}

func (s *MemoryStore) LastMessage(ctx context.Context, conversationID ulid.ULID) (*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[conversationID]
	if len(stored) == 0 {
		return nil, nil
	}
	return copyMessage(stored[len(stored)-1]), nil
}

func (s *MemoryStore) MarkRead(ctx context.Context, conversationID, readerID ulid.ULID, readAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for _, m := range s.messages[conversationID] {
		if m.SenderId == readerID || m.ReadAt != nil {
			continue
		}
		at := readAt
		m.ReadAt = &at
		updated++
	}
	return updated, nil
}

func (s *MemoryStore) CountUnread(ctx context.Context, conversationID, readerID ulid.ULID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, m := range s.messages[conversationID] {
		if m.SenderId != readerID && m.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func copyMessage(m *Message) *Message {
	clone := *m
	if m.ReadAt != nil {
		at := *m.ReadAt
		clone.ReadAt = &at
	}
	return &clone
}

func page[T any](items []T, pagination *pkg.PaginationParams) []T {
	start := pagination.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + pagination.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
