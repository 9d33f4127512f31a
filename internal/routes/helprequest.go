package routes

import (
	"net/http"
	"strings"

	"Fundbridge/internal/contracts"
	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/pkg"

	"github.com/gin-gonic/gin"
)

// ListHelpRequests godoc
// @Summary      Lista pedidos de ajuda
// @Tags         help-requests
// @Produce      json
// @Param        X-Actor-ID  header  string  true   "ULID do ator"
// @Param        status      query   string  false  "OPEN, FUNDED ou CLOSED"
// @Param        kind        query   string  false  "FINANCIAL ou TECHNICAL"
// @Param        page        query   int     false  "Página"
// @Param        limit       query   int     false  "Itens por página"
// @Success      200  {object}  pkg.PaginatedResponse[helprequest.HelpRequest]
// @Router       /help-requests [get]
func (h *Handler) ListHelpRequests(c *gin.Context) {
	filters := &helprequest.Filters{}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := helprequest.Status(strings.ToUpper(raw))
		filters.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("kind")); raw != "" {
		kind := helprequest.Kind(strings.ToUpper(raw))
		filters.Kind = &kind
	}

	pagination := h.parsePagination(c)
	items, total, err := h.HelpRequestService.List(c.Request.Context(), filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}

// CreateHelpRequest godoc
// @Summary      Abre um pedido de ajuda (apenas empreendedores)
// @Tags         help-requests
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header    string                              true  "ULID do ator"
// @Param        body        body      contracts.HelpRequestCreateRequest  true  "Pedido"
// @Success      201         {object}  contracts.HelpRequestResponse
// @Failure      403         {object}  contracts.ErrorResponse
// @Router       /help-requests [post]
func (h *Handler) CreateHelpRequest(c *gin.Context) {
	var body contracts.HelpRequestCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.HelpRequestService.Create(c.Request.Context(), helprequest.CreateInput{
		OwnerId:         userID,
		Kind:            helprequest.Kind(body.Kind),
		Title:           body.Title,
		Description:     body.Description,
		RequestedAmount: body.RequestedAmount,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.HelpRequestResponse{HelpRequest: entity})
}

// ListMyHelpRequests godoc
// @Summary      Pedidos abertos pelo ator
// @Tags         help-requests
// @Produce      json
// @Param        X-Actor-ID  header  string  true  "ULID do ator"
// @Success      200  {object}  pkg.PaginatedResponse[helprequest.HelpRequest]
// @Router       /help-requests/mine [get]
func (h *Handler) ListMyHelpRequests(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	items, total, err := h.HelpRequestService.ListByOwner(c.Request.Context(), userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}

// GetHelpRequest godoc
// @Summary      Detalha um pedido de ajuda
// @Tags         help-requests
// @Produce      json
// @Param        X-Actor-ID  header    string  true  "ULID do ator"
// @Param        id          path      string  true  "ULID do pedido"
// @Success      200         {object}  contracts.HelpRequestResponse
// @Failure      404         {object}  contracts.ErrorResponse
// @Router       /help-requests/{id} [get]
func (h *Handler) GetHelpRequest(c *gin.Context) {
	id, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.HelpRequestService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.HelpRequestResponse{HelpRequest: entity})
}

// CloseHelpRequest godoc
// @Summary      Encerra um pedido aberto (apenas o dono)
// @Tags         help-requests
// @Produce      json
// @Param        X-Actor-ID  header    string  true  "ULID do ator"
// @Param        id          path      string  true  "ULID do pedido"
// @Success      200         {object}  contracts.MessageResponse
// @Router       /help-requests/{id}/close [post]
func (h *Handler) CloseHelpRequest(c *gin.Context) {
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

	if err := h.HelpRequestService.Close(c.Request.Context(), id, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Pedido de ajuda encerrado com sucesso"})
}

// GetAcceptedAmount godoc
// @Summary      Soma das propostas financeiras aceitas do pedido
// @Tags         help-requests
// @Produce      json
// @Param        X-Actor-ID  header    string  true  "ULID do ator"
// @Param        id          path      string  true  "ULID do pedido"
// @Success      200         {object}  contracts.AcceptedAmountResponse
// @Router       /help-requests/{id}/accepted-amount [get]
func (h *Handler) GetAcceptedAmount(c *gin.Context) {
	id, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.HelpRequestService.GetByID(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AcceptedAmountResponse{
		HelpRequestId:  id.String(),
		AcceptedAmount: h.ProposalService.AcceptedAmount(ctx, id),
	})
}

// GetHelpRequestProgress godoc
// @Summary      Progresso de financiamento do pedido
// @Tags         funding
// @Produce      json
// @Param        X-Actor-ID  header    string  true  "ULID do ator"
// @Param        id          path      string  true  "ULID do pedido"
// @Success      200         {object}  contracts.RequestProgressResponse
// @Router       /help-requests/{id}/progress [get]
func (h *Handler) GetHelpRequestProgress(c *gin.Context) {
	id, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	summary, err := h.FundingService.RequestSummary(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RequestProgressResponse{
		HelpRequestId: summary.HelpRequestId.String(),
		Status:        string(summary.Status),
		Progress:      contracts.NewProgressResponse(summary.Progress),
	})
}
