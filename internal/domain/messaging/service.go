package messaging

import (
	"context"
	"strings"
	"time"

	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/shared"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/logger"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
)

const (
	SubjectMessageSent = "message.sent"

	maxBodyLength = 2000
)

type HelpRequestGetter interface {
	GetByID(ctx context.Context, id ulid.ULID) (*helprequest.HelpRequest, error)
}

type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

type Service struct {
	Store        Store
	HelpRequests HelpRequestGetter
	Events       Publisher
	shared.BaseService
}

func NewService(store Store, helpRequests HelpRequestGetter, events Publisher, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Store:        store,
		HelpRequests: helpRequests,
		Events:       events,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

type MessageSentEvent struct {
	MessageId      string    `json:"messageId"`
	ConversationId string    `json:"conversationId"`
	SenderId       string    `json:"senderId"`
	RecipientId    string    `json:"recipientId"`
	SentAt         time.Time `json:"sentAt"`
}

// StartConversation devolve a conversa existente do par (e pedido) ou cria uma nova.
// O bool indica se a conversa foi criada agora.
func (s *Service) StartConversation(ctx context.Context, actorID, participantID ulid.ULID, helpRequestID *ulid.ULID) (*Conversation, bool, error) {
	if actorID == participantID {
		return nil, false, appErrors.NewValidationError("participant_id", "não pode ser o próprio usuário")
	}
	if err := s.EnsureUserExists(ctx, participantID); err != nil {
		return nil, false, err
	}
	if helpRequestID != nil && s.HelpRequests != nil {
		if _, err := s.HelpRequests.GetByID(ctx, *helpRequestID); err != nil {
			return nil, false, err
		}
	}

	existing, err := s.Store.FindConversation(ctx, actorID, participantID, helpRequestID)
	if err == nil {
		return existing, false, nil
	}
	if !appErrors.HasCode(err, appErrors.ErrConversationNotFound) {
		return nil, false, err
	}

	a, b := orderPair(actorID, participantID)
	now := pkg.SetTimestamps()
	conversation := &Conversation{
		Id:            pkg.GenerateULIDObject(),
		ParticipantA:  a,
		ParticipantB:  b,
		HelpRequestId: helpRequestID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.CreateConversation(ctx, conversation); err != nil {
		if !appErrors.HasCode(err, appErrors.ErrConflict) {
			return nil, false, err
		}
		// Outra chamada criou a conversa do par entre a busca e a insercao.
		existing, findErr := s.Store.FindConversation(ctx, actorID, participantID, helpRequestID)
		if findErr != nil {
			return nil, false, findErr
		}
		return existing, false, nil
	}

	logger.Info().
		Str("conversation_id", conversation.Id.String()).
		Msg("Conversa iniciada")

	return conversation, true, nil
}

func (s *Service) Send(ctx context.Context, conversationID, senderID ulid.ULID, body string) (*Message, error) {
	conversation, err := s.participantConversation(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, appErrors.NewValidationError("body", "é obrigatório")
	}
	if len([]rune(body)) > maxBodyLength {
		return nil, appErrors.NewValidationError("body", "deve ter no máximo 2000 caracteres")
	}

	message := &Message{
		Id:             pkg.GenerateULIDObject(),
		ConversationId: conversation.Id,
		SenderId:       senderID,
		Body:           body,
		CreatedAt:      pkg.SetTimestamps(),
	}
	if err := s.Store.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	s.publishSent(ctx, conversation, message)
	return message, nil
}

func (s *Service) Conversations(ctx context.Context, actorID ulid.ULID, pagination *pkg.PaginationParams) ([]*ConversationSummary, int64, error) {
	conversations, total, err := s.Store.ListConversations(ctx, actorID, pagination)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*ConversationSummary, 0, len(conversations))
	for _, c := range conversations {
		last, err := s.Store.LastMessage(ctx, c.Id)
		if err != nil {
			return nil, 0, err
		}
		unread, err := s.Store.CountUnread(ctx, c.Id, actorID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, &ConversationSummary{
			Conversation: c,
			LastMessage:  last,
			UnreadCount:  unread,
		})
	}
	return out, total, nil
}

// Messages lista as mensagens da conversa, da mais antiga para a mais recente.
func (s *Service) Messages(ctx context.Context, conversationID, actorID ulid.ULID, pagination *pkg.PaginationParams) ([]*Message, int64, error) {
	if _, err := s.participantConversation(ctx, conversationID, actorID); err != nil {
		return nil, 0, err
	}
	return s.Store.ListMessages(ctx, conversationID, pagination)
}

// MarkRead marca como lidas as mensagens recebidas pelo ator e devolve quantas mudaram.
func (s *Service) MarkRead(ctx context.Context, conversationID, actorID ulid.ULID) (int64, error) {
	if _, err := s.participantConversation(ctx, conversationID, actorID); err != nil {
		return 0, err
	}
	return s.Store.MarkRead(ctx, conversationID, actorID, pkg.SetTimestamps())
}

func (s *Service) participantConversation(ctx context.Context, conversationID, actorID ulid.ULID) (*Conversation, error) {
	conversation, err := s.Store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(actorID) {
		return nil, appErrors.ErrResourceNotOwned
	}
	return conversation, nil
}

func (s *Service) publishSent(ctx context.Context, conversation *Conversation, message *Message) {
	if s.Events == nil {
		return
	}

	event := MessageSentEvent{
		MessageId:      message.Id.String(),
		ConversationId: conversation.Id.String(),
		SenderId:       message.SenderId.String(),
		RecipientId:    conversation.Other(message.SenderId).String(),
		SentAt:         message.CreatedAt,
	}
	if err := s.Events.Publish(ctx, SubjectMessageSent, event); err != nil {
		logger.Warn().
			Err(err).
			Str("message_id", message.Id.String()).
			Msg("Falha ao publicar evento de mensagem enviada")
	}
}
