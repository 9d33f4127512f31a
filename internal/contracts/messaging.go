package contracts

import "Fundbridge/internal/domain/messaging"

type ConversationCreateRequest struct {
	ParticipantID string  `json:"participant_id" binding:"required"`
	HelpRequestID *string `json:"help_request_id"`
}

type ConversationResponse struct {
	Conversation *messaging.Conversation `json:"conversation"`
	Created      bool                    `json:"created"`
}

type MessageCreateRequest struct {
	Body string `json:"body" binding:"required"`
}

type MessageSentResponse struct {
	Message *messaging.Message `json:"message"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}
