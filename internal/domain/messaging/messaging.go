package messaging

import (
	"bytes"
	"time"

	"github.com/oklog/ulid/v2"
)

// Conversation guarda o par de participantes ordenado (ParticipantA < ParticipantB).
type Conversation struct {
	Id            ulid.ULID  `json:"id"`
	ParticipantA  ulid.ULID  `json:"participantA"`
	ParticipantB  ulid.ULID  `json:"participantB"`
	HelpRequestId *ulid.ULID `json:"helpRequestId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (c *Conversation) HasParticipant(userID ulid.ULID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// Other devolve o outro participante da conversa.
func (c *Conversation) Other(userID ulid.ULID) ulid.ULID {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

type Message struct {
	Id             ulid.ULID  `json:"id"`
	ConversationId ulid.ULID  `json:"conversationId"`
	SenderId       ulid.ULID  `json:"senderId"`
	Body           string     `json:"body"`
	CreatedAt      time.Time  `json:"createdAt"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
}

type ConversationSummary struct {
	Conversation *Conversation `json:"conversation"`
	LastMessage  *Message      `json:"lastMessage,omitempty"`
	UnreadCount  int64         `json:"unreadCount"`
}

func orderPair(a, b ulid.ULID) (ulid.ULID, ulid.ULID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

func sameHelpRequest(a, b *ulid.ULID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
