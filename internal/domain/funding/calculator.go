package funding

import (
	"Fundbridge/internal/domain/proposal"
	"Fundbridge/internal/pkg"

	"github.com/shopspring/decimal"
)

// Candidate e a proposta exibida: so o valor e o status importam para o calculo.
type Candidate struct {
	Amount decimal.Decimal
	Status proposal.Status
}

func CandidateFrom(p *proposal.Proposal) (Candidate, bool) {
	if p == nil || !p.IsFinancial() {
		return Candidate{}, false
	}
	return Candidate{Amount: p.Financial.Amount, Status: p.Status}, true
}

type Progress struct {
	RequestedAmount          decimal.Decimal `json:"requestedAmount"`
	CurrentProgressPercent   decimal.Decimal `json:"currentProgressPercent"`
	ProjectedProgressPercent decimal.Decimal `json:"projectedProgressPercent"`
	RemainingAmount          decimal.Decimal `json:"remainingAmount"`
	DisplayedAcceptedAmount  decimal.Decimal `json:"displayedAcceptedAmount"`
	DisplayedPendingAmount   decimal.Decimal `json:"displayedPendingAmount"`
}

// Calculate monta as duas faixas da barra de progresso de um pedido.
//
// acceptedAmount ja inclui todas as propostas aceitas, inclusive a exibida quando ela
// estiver ACCEPTED, entao apenas uma proposta PENDING entra na projecao. Valores
// negativos sao tratados como zero e requestedAmount zero produz 0%.
func Calculate(requestedAmount, acceptedAmount decimal.Decimal, candidate Candidate) Progress {
	requested := pkg.CoerceAmount(requestedAmount)
	accepted := pkg.CoerceAmount(acceptedAmount)

	pending := decimal.Zero
	if candidate.Status == proposal.StatusPending {
		pending = pkg.CoerceAmount(candidate.Amount)
	}

	projected := accepted.Add(pending)

	remaining := requested.Sub(projected)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Progress{
		RequestedAmount:          requested,
		CurrentProgressPercent:   pkg.ClampPercent(pkg.Percent(accepted, requested)),
		ProjectedProgressPercent: pkg.ClampPercent(pkg.Percent(projected, requested)),
		RemainingAmount:          remaining,
		DisplayedAcceptedAmount:  accepted,
		DisplayedPendingAmount:   pending,
	}
}
