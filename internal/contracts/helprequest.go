package contracts

import (
	"Fundbridge/internal/domain/helprequest"

	"github.com/shopspring/decimal"
)

type HelpRequestCreateRequest struct {
	Kind            string          `json:"kind" binding:"required,oneof=FINANCIAL TECHNICAL"`
	Title           string          `json:"title" binding:"required,max=150"`
	Description     string          `json:"description" binding:"omitempty,max=5000"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

type HelpRequestResponse struct {
	HelpRequest *helprequest.HelpRequest `json:"helpRequest"`
}

type AcceptedAmountResponse struct {
	HelpRequestId  string          `json:"helpRequestId"`
	AcceptedAmount decimal.Decimal `json:"acceptedAmount"`
}
