package proposal

import (
	"context"
	"time"

	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, proposal *Proposal) error
	GetByID(ctx context.Context, id ulid.ULID) (*Proposal, error)
	Delete(ctx context.Context, id ulid.ULID) error
	// kind vazio lista todas as variantes.
	ListByAuthor(ctx context.Context, authorID ulid.ULID, kind helprequest.Kind, pagination *pkg.PaginationParams) ([]*Proposal, int64, error)
	ListByHelpRequestOwner(ctx context.Context, ownerID ulid.ULID, kind helprequest.Kind, pagination *pkg.PaginationParams) ([]*Proposal, int64, error)
	SumAccepted(ctx context.Context, helpRequestID ulid.ULID) (decimal.Decimal, error)
	UpdateStatus(ctx context.Context, id ulid.ULID, status Status, decidedAt time.Time) error

	// WithinTransaction executa fn com um Repository ligado a mesma transacao.
	WithinTransaction(ctx context.Context, fn func(tx Repository) error) error
	// LockHelpRequest le o pedido com lock de linha (no-op no SQLite).
	LockHelpRequest(ctx context.Context, helpRequestID ulid.ULID) (*helprequest.HelpRequest, error)
	UpdateHelpRequestStatus(ctx context.Context, helpRequestID ulid.ULID, status helprequest.Status) error
}
