package routes

import (
	"net/http"
	"strings"

	"Fundbridge/internal/contracts"
	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/proposal"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/gin-gonic/gin"
)

func parseView(c *gin.Context) proposal.View {
	return proposal.View(strings.ToLower(strings.TrimSpace(c.DefaultQuery("view", string(proposal.ViewSent)))))
}

// ListProposals godoc
// @Summary      Propostas enviadas ou recebidas pelo ator
// @Tags         proposals
// @Produce      json
// @Param        X-Actor-ID  header  string  true   "ULID do ator"
// @Param        view        query   string  false  "sent (padrão) ou received"
// @Success      200  {object}  pkg.PaginatedResponse[proposal.Proposal]
// @Router       /proposals [get]
func (h *Handler) ListProposals(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	items, total, err := h.ProposalService.ListForActor(c.Request.Context(), userID, parseView(c), pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}

// CreateProposal godoc
// @Summary      Envia uma proposta para um pedido aberto
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header    string                           true  "ULID do ator"
// @Param        body        body      contracts.ProposalCreateRequest  true  "Proposta"
// @Success      201         {object}  contracts.ProposalResponse
// @Failure      409         {object}  contracts.ErrorResponse
// @Router       /proposals [post]
func (h *Handler) CreateProposal(c *gin.Context) {
	var body contracts.ProposalCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	helpRequestID, err := pkg.ParseULID(body.HelpRequestID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("help_request_id", "formato inválido"))
		return
	}

	input := proposal.CreateInput{
		AuthorId:      userID,
		HelpRequestId: helpRequestID,
		Kind:          helprequest.Kind(body.Kind),
		Message:       body.Message,
		Amount:        body.Amount,
	}
	if input.Kind == helprequest.KindTechnical {
		input.Technical = &proposal.TechnicalTerms{
			Expertise:     body.Expertise,
			HoursPerWeek:  body.HoursPerWeek,
			DurationWeeks: body.DurationWeeks,
		}
	}

	entity, err := h.ProposalService.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.ProposalResponse{Proposal: entity})
}

// ListProposalProgress godoc
// @Summary      Progresso de financiamento das propostas financeiras do ator
// @Tags         funding
// @Produce      json
// @Param        X-Actor-ID  header  string  true   "ULID do ator"
// @Param        view        query   string  false  "sent (padrão) ou received"
// @Success      200  {object}  pkg.PaginatedResponse[contracts.ProposalProgressResponse]
// @Router       /proposals/progress [get]
func (h *Handler) ListProposalProgress(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	items, total, err := h.FundingService.ProgressForActor(c.Request.Context(), userID, parseView(c), pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]contracts.ProposalProgressResponse, 0, len(items))
	for _, item := range items {
		out = append(out, contracts.NewProposalProgressResponse(item))
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(out, pagination.Page, pagination.Limit, total))
}

// GetProposal godoc
// @Summary      Detalha uma proposta (autor ou dono do pedido)
// @Tags         proposals
// @Produce      json
// @Param        X-Actor-ID  header    string  true  "ULID do ator"
// @Param        id          path      string  true  "ULID da proposta"
// @Success      200         {object}  contracts.ProposalResponse
// @Router       /proposals/{id} [get]
func (h *Handler) GetProposal(c *gin.Context) {
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

	entity, err := h.ProposalService.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ProposalResponse{Proposal: entity})
}

// UpdateProposalStatus godoc
// @Summary      Aceita ou recusa uma proposta pendente (dono do pedido)
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID  header    string                           true  "ULID do ator"
// @Param        id          path      string                           true  "ULID da proposta"
// @Param        body        body      contracts.ProposalStatusRequest  true  "ACCEPTED ou REFUSED"
// @Success      200         {object}  contracts.ProposalResponse
// @Failure      409         {object}  contracts.ErrorResponse
// @Failure      422         {object}  contracts.ErrorResponse
// @Router       /proposals/{id}/status [patch]
func (h *Handler) UpdateProposalStatus(c *gin.Context) {
	var body contracts.ProposalStatusRequest
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

	status, ok := proposal.ParseStatus(body.Status)
	if !ok {
		h.respondError(c, appErrors.ErrInvalidStatusTransition.WithDetails(map[string]interface{}{
			"target": body.Status,
		}))
		return
	}

	entity, err := h.ProposalService.UpdateStatus(c.Request.Context(), id, userID, status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ProposalResponse{Proposal: entity})
}

// DeleteProposal godoc
// @Summary      Retira uma proposta pendente (autor)
// @Tags         proposals
// @Param        X-Actor-ID  header  string  true  "ULID do ator"
// @Param        id          path    string  true  "ULID da proposta"
// @Success      204
// @Router       /proposals/{id} [delete]
func (h *Handler) DeleteProposal(c *gin.Context) {
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

	if err := h.ProposalService.Withdraw(c.Request.Context(), id, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProposalProgress godoc
// @Summary      Progresso atual e projetado de uma proposta financeira
// @Tags         funding
// @Produce      json
// @Param        X-Actor-ID  header    string  true  "ULID do ator"
// @Param        id          path      string  true  "ULID da proposta"
// @Success      200         {object}  contracts.ProposalProgressResponse
// @Router       /proposals/{id}/progress [get]
func (h *Handler) GetProposalProgress(c *gin.Context) {
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

	progress, err := h.FundingService.ProgressForProposal(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.NewProposalProgressResponse(progress))
}
