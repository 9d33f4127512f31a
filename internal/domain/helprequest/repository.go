package helprequest

import (
	"context"

	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Filters struct {
	Status *Status
	Kind   *Kind
}

type Repository interface {
	Create(ctx context.Context, request *HelpRequest) error
	GetByID(ctx context.Context, id ulid.ULID) (*HelpRequest, error)
	List(ctx context.Context, filters *Filters, pagination *pkg.PaginationParams) ([]*HelpRequest, int64, error)
	GetByOwnerID(ctx context.Context, ownerID ulid.ULID, pagination *pkg.PaginationParams) ([]*HelpRequest, int64, error)
	UpdateStatus(ctx context.Context, id ulid.ULID, status Status) error
}
