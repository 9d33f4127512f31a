package helprequest

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindFinancial Kind = "FINANCIAL"
	KindTechnical Kind = "TECHNICAL"
)

func (k Kind) IsValid() bool {
	return k == KindFinancial || k == KindTechnical
}

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusFunded Status = "FUNDED"
	StatusClosed Status = "CLOSED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusFunded, StatusClosed:
		return true
	}
	return false
}

// HelpRequest e o pedido de ajuda de um empreendedor. Pedidos tecnicos tem RequestedAmount zero.
type HelpRequest struct {
	Id              ulid.ULID       `json:"id"`
	OwnerId         ulid.ULID       `json:"ownerId"`
	Kind            Kind            `json:"kind"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (h *HelpRequest) IsOwnedBy(userID ulid.ULID) bool {
	return h.OwnerId == userID
}
