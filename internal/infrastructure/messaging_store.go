package infrastructure

import (
	"context"
	"errors"
	"time"

	"Fundbridge/internal/domain/messaging"
	"Fundbridge/internal/domain/shared"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type MessagingStore struct {
	DB *gorm.DB
}

// conversationDB repete o pedido em HelpRequestKey ("" sem pedido) porque NULL nao colide em indice unico.
type conversationDB struct {
	Id             string    `gorm:"type:varchar(26);primaryKey"`
	ParticipantA   string    `gorm:"type:varchar(26);not null;uniqueIndex:idx_conversations_pair,priority:1"`
	ParticipantB   string    `gorm:"type:varchar(26);not null;uniqueIndex:idx_conversations_pair,priority:2;index"`
	HelpRequestId  *string   `gorm:"type:varchar(26)"`
	HelpRequestKey string    `gorm:"type:varchar(26);not null;default:'';uniqueIndex:idx_conversations_pair,priority:3"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (conversationDB) TableName() string {
	return "conversations"
}

type messageDB struct {
	Id             string    `gorm:"type:varchar(26);primaryKey"`
	ConversationId string    `gorm:"type:varchar(26);not null;index"`
	SenderId       string    `gorm:"type:varchar(26);not null"`
	Body           string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"not null"`
	ReadAt         *time.Time
}

func (messageDB) TableName() string {
	return "messages"
}

func toDomainConversation(cdb *conversationDB) (*messaging.Conversation, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	a, err := pkg.ParseULID(cdb.ParticipantA)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	b, err := pkg.ParseULID(cdb.ParticipantB)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	helpRequestID, err := pkg.ParseOptionalULID(cdb.HelpRequestId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &messaging.Conversation{
		Id:            id,
		ParticipantA:  a,
		ParticipantB:  b,
		HelpRequestId: helpRequestID,
		CreatedAt:     cdb.CreatedAt,
		UpdatedAt:     cdb.UpdatedAt,
	}, nil
}

func toDBConversation(c *messaging.Conversation) *conversationDB {
	cdb := &conversationDB{
		Id:           c.Id.String(),
		ParticipantA: c.ParticipantA.String(),
		ParticipantB: c.ParticipantB.String(),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.HelpRequestId != nil {
		id := c.HelpRequestId.String()
		cdb.HelpRequestId = &id
		cdb.HelpRequestKey = id
	}
	return cdb
}

func toDomainMessage(mdb *messageDB) (*messaging.Message, error) {
	id, err := pkg.ParseULID(mdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	conversationID, err := pkg.ParseULID(mdb.ConversationId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	senderID, err := pkg.ParseULID(mdb.SenderId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &messaging.Message{
		Id:             id,
		ConversationId: conversationID,
		SenderId:       senderID,
		Body:           mdb.Body,
		CreatedAt:      mdb.CreatedAt,
		ReadAt:         mdb.ReadAt,
	}, nil
}

func (s *MessagingStore) CreateConversation(ctx context.Context, c *messaging.Conversation) error {
	if err := s.DB.WithContext(ctx).Table("conversations").Create(toDBConversation(c)).Error; err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.NewConflictError("Conversa").WithError(err)
		}
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *MessagingStore) GetConversation(ctx context.Context, id ulid.ULID) (*messaging.Conversation, error) {
	var cdb conversationDB
	if err := s.DB.WithContext(ctx).Table("conversations").Where("id = ?", id.String()).First(&cdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrConversationNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainConversation(&cdb)
}

func (s *MessagingStore) FindConversation(ctx context.Context, participantA, participantB ulid.ULID, helpRequestID *ulid.ULID) (*messaging.Conversation, error) {
	a, b := participantA.String(), participantB.String()
	if a > b {
		a, b = b, a
	}

	key := ""
	if helpRequestID != nil {
		key = helpRequestID.String()
	}
	query := s.DB.WithContext(ctx).Table("conversations").
		Where("participant_a = ? AND participant_b = ? AND help_request_key = ?", a, b, key)

	var cdb conversationDB
	if err := query.First(&cdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrConversationNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainConversation(&cdb)
}

func (s *MessagingStore) ListConversations(ctx context.Context, participantID ulid.ULID, pagination *pkg.PaginationParams) ([]*messaging.Conversation, int64, error) {
	id := participantID.String()
	query := s.DB.WithContext(ctx).Table("conversations").Where("participant_a = ? OR participant_b = ?", id, id)

	out, total, err := pkg.Paginate(query, pagination, "updated_at DESC, id DESC", toDomainConversation)
	if err != nil {
		return nil, 0, wrapDatabaseError(err)
	}
	return out, total, nil
}

func (s *MessagingStore) CreateMessage(ctx context.Context, m *messaging.Message) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table("conversations").Where("id = ?", m.ConversationId.String()).Update("updated_at", m.CreatedAt)
		if result.Error != nil {
			return appErrors.NewDatabaseError(result.Error)
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrConversationNotFound
		}

		mdb := &messageDB{
			Id:             m.Id.String(),
			ConversationId: m.ConversationId.String(),
			SenderId:       m.SenderId.String(),
			Body:           m.Body,
			CreatedAt:      m.CreatedAt,
			ReadAt:         m.ReadAt,
		}
		if err := tx.Table("messages").Create(mdb).Error; err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return nil
	})
}

func (s *MessagingStore) ListMessages(ctx context.Context, conversationID ulid.ULID, pagination *pkg.PaginationParams) ([]*messaging.Message, int64, error) {
	query := s.DB.WithContext(ctx).Table("messages").Where("conversation_id = ?", conversationID.String())

	out, total, err := pkg.Paginate(query, pagination, "created_at ASC, id ASC", toDomainMessage)
	if err != nil {
		return nil, 0, wrapDatabaseError(err)
	}
	return out, total, nil
}

func (s *MessagingStore) LastMessage(ctx context.Context, conversationID ulid.ULID) (*messaging.Message, error) {
	var mdb messageDB
	err := s.DB.WithContext(ctx).Table("messages").
		Where("conversation_id = ?", conversationID.String()).
		Order("created_at DESC, id DESC").
		First(&mdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainMessage(&mdb)
}

func (s *MessagingStore) MarkRead(ctx context.Context, conversationID, readerID ulid.ULID, readAt time.Time) (int64, error) {
	result := s.DB.WithContext(ctx).Table("messages").
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID.String(), readerID.String()).
		Update("read_at", readAt)
	if result.Error != nil {
		return 0, appErrors.NewDatabaseError(result.Error)
	}
	return result.RowsAffected, nil
}

func (s *MessagingStore) CountUnread(ctx context.Context, conversationID, readerID ulid.ULID) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Table("messages").
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID.String(), readerID.String()).
		Count(&count).Error
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return count, nil
}
