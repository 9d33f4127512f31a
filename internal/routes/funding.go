package routes

import (
	"net/http"

	"Fundbridge/internal/contracts"
	"Fundbridge/internal/domain/funding"

	"github.com/gin-gonic/gin"
)

// PreviewFunding godoc
// @Summary      Calcula o progresso para valores arbitrários
// @Description  Entradas ausentes, inválidas ou negativas contam como zero.
// @Tags         funding
// @Accept       json
// @Produce      json
// @Param        body  body      contracts.FundingPreviewRequest  true  "Valores"
// @Success      200   {object}  contracts.ProgressResponse
// @Router       /funding/preview [post]
func (h *Handler) PreviewFunding(c *gin.Context) {
	var body contracts.FundingPreviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	progress := h.FundingService.Preview(funding.PreviewInput{
		RequestedAmount: body.RequestedAmount,
		AcceptedAmount:  body.AcceptedAmount,
		ProposalAmount:  body.ProposalAmount,
		ProposalStatus:  body.ProposalStatus,
	})

	c.JSON(http.StatusOK, contracts.NewProgressResponse(progress))
}
