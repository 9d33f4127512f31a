package routes

import (
	"net/http"

	"Fundbridge/internal/contracts"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/gin-gonic/gin"
)

// ListConversations godoc
// @Summary      Conversas do ator com última mensagem e não lidas
// @Tags         conversations
// @Produce      json
// @Param        X-Actor-ID  header  string  true  "ULID do ator"
// @Success      200  {object}  pkg.PaginatedResponse[messaging.ConversationSummary]
// @Router       /conversations [get]
func (h *Handler) ListConversations(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	items, total, err := h.MessagingService.Conversations(c.Request.Context(), userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}

// StartConversation godoc
// @Summary      Inicia (ou reabre) uma conversa com outro usuário
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header    string                               true  "ULID do ator"
// @Param        body        body      contracts.ConversationCreateRequest  true  "Participante"
// @Success      200         {object}  contracts.ConversationResponse
// @Success      201         {object}  contracts.ConversationResponse
// @Router       /conversations [post]
func (h *Handler) StartConversation(c *gin.Context) {
	var body contracts.ConversationCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	participantID, err := pkg.ParseULID(body.ParticipantID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("participant_id", "formato inválido"))
		return
	}
	helpRequestID, err := pkg.ParseOptionalULID(body.HelpRequestID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("help_request_id", "formato inválido"))
		return
	}

	conversation, created, err := h.MessagingService.StartConversation(c.Request.Context(), userID, participantID, helpRequestID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, contracts.ConversationResponse{Conversation: conversation, Created: created})
}

// ListMessages godoc
// @Summary      Mensagens da conversa, da mais antiga para a mais recente
// @Tags         conversations
// @Produce      json
// @Param        X-Actor-ID  header  string  true  "ULID do ator"
// @Param        id          path    string  true  "ULID da conversa"
// @Success      200  {object}  pkg.PaginatedResponse[messaging.Message]
// @Router       /conversations/{id}/messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	id, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	items, total, err := h.MessagingService.Messages(c.Request.Context(), id, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}

// SendMessage godoc
// @Summary      Envia uma mensagem na conversa
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header    string                          true  "ULID do ator"
// @Param        id          path      string                          true  "ULID da conversa"
// @Param        body        body      contracts.MessageCreateRequest  true  "Mensagem"
// @Success      201         {object}  contracts.MessageSentResponse
// @Router       /conversations/{id}/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	var body contracts.MessageCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	id, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	message, err := h.MessagingService.Send(c.Request.Context(), id, userID, body.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.MessageSentResponse{Message: message})
}

// MarkConversationRead godoc
// @Summary      Marca como lidas as mensagens recebidas
// @Tags         conversations
// @Produce      json
// @Param        X-Actor-ID  header    string  true  "ULID do ator"
// @Param        id          path      string  true  "ULID da conversa"
// @Success      200         {object}  contracts.MarkReadResponse
// @Router       /conversations/{id}/read [post]
func (h *Handler) MarkConversationRead(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	id, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.MessagingService.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MarkReadResponse{Updated: updated})
}
