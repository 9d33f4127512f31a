package contracts

import (
	"Fundbridge/internal/domain/proposal"

	"github.com/shopspring/decimal"
)

type ProposalCreateRequest struct {
	HelpRequestID string          `json:"help_request_id" binding:"required"`
	Kind          string          `json:"kind" binding:"required,oneof=FINANCIAL TECHNICAL"`
	Message       string          `json:"message" binding:"omitempty,max=2000"`
	Amount        decimal.Decimal `json:"amount"`
	Expertise     string          `json:"expertise" binding:"omitempty,max=150"`
	HoursPerWeek  int             `json:"hours_per_week" binding:"omitempty,gte=1,lte=80"`
	DurationWeeks int             `json:"duration_weeks" binding:"omitempty,gte=0"`
}

type ProposalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ProposalResponse struct {
	Proposal *proposal.Proposal `json:"proposal"`
}
