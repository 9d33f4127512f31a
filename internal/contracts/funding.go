package contracts

import (
	"Fundbridge/internal/domain/funding"

	"github.com/shopspring/decimal"
)

// ProgressResponse e a forma publica do calculo: valores em string, percentuais com duas casas.
type ProgressResponse struct {
	RequestedAmount          decimal.Decimal `json:"requestedAmount"`
	CurrentProgressPercent   decimal.Decimal `json:"currentProgressPercent"`
	ProjectedProgressPercent decimal.Decimal `json:"projectedProgressPercent"`
	RemainingAmount          decimal.Decimal `json:"remainingAmount"`
	DisplayedAcceptedAmount  decimal.Decimal `json:"displayedAcceptedAmount"`
	DisplayedPendingAmount   decimal.Decimal `json:"displayedPendingAmount"`
}

func NewProgressResponse(p funding.Progress) ProgressResponse {
	return ProgressResponse{
		RequestedAmount:          p.RequestedAmount,
		CurrentProgressPercent:   p.CurrentProgressPercent.Round(2),
		ProjectedProgressPercent: p.ProjectedProgressPercent.Round(2),
		RemainingAmount:          p.RemainingAmount,
		DisplayedAcceptedAmount:  p.DisplayedAcceptedAmount,
		DisplayedPendingAmount:   p.DisplayedPendingAmount,
	}
}

type ProposalProgressResponse struct {
	ProposalId    string           `json:"proposalId"`
	HelpRequestId string           `json:"helpRequestId"`
	Status        string           `json:"status"`
	Amount        decimal.Decimal  `json:"amount"`
	Progress      ProgressResponse `json:"progress"`
}

func NewProposalProgressResponse(p *funding.ProposalProgress) ProposalProgressResponse {
	return ProposalProgressResponse{
		ProposalId:    p.ProposalId.String(),
		HelpRequestId: p.HelpRequestId.String(),
		Status:        string(p.Status),
		Amount:        p.Amount,
		Progress:      NewProgressResponse(p.Progress),
	}
}

type RequestProgressResponse struct {
	HelpRequestId string           `json:"helpRequestId"`
	Status        string           `json:"status"`
	Progress      ProgressResponse `json:"progress"`
}

// FundingPreviewRequest aceita numeros, strings ou nulos em qualquer campo.
type FundingPreviewRequest struct {
	RequestedAmount interface{} `json:"requested_amount"`
	AcceptedAmount  interface{} `json:"accepted_amount"`
	ProposalAmount  interface{} `json:"proposal_amount"`
	ProposalStatus  interface{} `json:"proposal_status"`
}
