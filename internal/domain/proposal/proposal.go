package proposal

import (
	"strings"
	"time"

	"Fundbridge/internal/domain/helprequest"
	appErrors "Fundbridge/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRefused  Status = "REFUSED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRefused:
		return true
	}
	return false
}

// ParseStatus aceita qualquer caixa; valores desconhecidos devolvem "" e false.
func ParseStatus(raw string) (Status, bool) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", false
	}
	return status, true
}

type View string

const (
	ViewSent     View = "sent"
	ViewReceived View = "received"
)

// Proposal e uma variante: Kind decide qual dos termos esta preenchido.
type Proposal struct {
	Id            ulid.ULID        `json:"id"`
	HelpRequestId ulid.ULID        `json:"helpRequestId"`
	AuthorId      ulid.ULID        `json:"authorId"`
	Kind          helprequest.Kind `json:"kind"`
	Status        Status           `json:"status"`
	Message       string           `json:"message"`
	Financial     *FinancialTerms  `json:"financial,omitempty"`
	Technical     *TechnicalTerms  `json:"technical,omitempty"`
	DecidedAt     *time.Time       `json:"decidedAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// FinancialTerms carrega uma copia do RequestedAmount do pedido feita no momento da proposta.
type FinancialTerms struct {
	Amount          decimal.Decimal `json:"amount"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
}

type TechnicalTerms struct {
	Expertise     string `json:"expertise"`
	HoursPerWeek  int    `json:"hoursPerWeek"`
	DurationWeeks int    `json:"durationWeeks"`
}

func (p *Proposal) IsFinancial() bool {
	return p.Kind == helprequest.KindFinancial && p.Financial != nil
}

func (p *Proposal) IsTechnical() bool {
	return p.Kind == helprequest.KindTechnical && p.Technical != nil
}

func (p *Proposal) IsPending() bool {
	return p.Status == StatusPending
}

// ValidateVariant garante que exatamente um dos termos existe e corresponde ao Kind.
func (p *Proposal) ValidateVariant() error {
	switch p.Kind {
	case helprequest.KindFinancial:
		if p.Financial == nil || p.Technical != nil {
			return appErrors.NewValidationError("kind", "proposta financeira exige apenas os termos financeiros")
		}
		if !p.Financial.Amount.IsPositive() {
			return appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
	case helprequest.KindTechnical:
		if p.Technical == nil || p.Financial != nil {
			return appErrors.NewValidationError("kind", "proposta técnica exige apenas os termos técnicos")
		}
		if strings.TrimSpace(p.Technical.Expertise) == "" {
			return appErrors.NewValidationError("expertise", "é obrigatório")
		}
		if p.Technical.HoursPerWeek <= 0 || p.Technical.HoursPerWeek > 80 {
			return appErrors.NewValidationError("hours_per_week", "deve estar entre 1 e 80")
		}
		if p.Technical.DurationWeeks < 0 {
			return appErrors.NewValidationError("duration_weeks", "não pode ser negativo")
		}
	default:
		return appErrors.NewValidationError("kind", "deve ser FINANCIAL ou TECHNICAL")
	}
	return nil
}
