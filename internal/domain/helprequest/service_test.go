package helprequest_test

import (
	"context"
	"testing"

	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/shared"
	"Fundbridge/internal/domain/user"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type fakeRepository struct {
	requests map[ulid.ULID]*helprequest.HelpRequest
	listFn   func(ctx context.Context, filters *helprequest.Filters, pagination *pkg.PaginationParams) ([]*helprequest.HelpRequest, int64, error)
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{requests: make(map[ulid.ULID]*helprequest.HelpRequest)}
}

func (f *fakeRepository) Create(ctx context.Context, request *helprequest.HelpRequest) error {
	clone := *request
	f.requests[request.Id] = &clone
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id ulid.ULID) (*helprequest.HelpRequest, error) {
	if r, ok := f.requests[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, appErrors.ErrHelpRequestNotFound
}

func (f *fakeRepository) List(ctx context.Context, filters *helprequest.Filters, pagination *pkg.PaginationParams) ([]*helprequest.HelpRequest, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filters, pagination)
	}
	return nil, 0, nil
}

func (f *fakeRepository) GetByOwnerID(ctx context.Context, ownerID ulid.ULID, pagination *pkg.PaginationParams) ([]*helprequest.HelpRequest, int64, error) {
	var out []*helprequest.HelpRequest
	for _, r := range f.requests {
		if r.OwnerId == ownerID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, id ulid.ULID, status helprequest.Status) error {
	r, ok := f.requests[id]
	if !ok {
		return appErrors.ErrHelpRequestNotFound
	}
	r.Status = status
	return nil
}

type fakeUsers struct {
	users map[ulid.ULID]*user.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUsers) Exists(ctx context.Context, id ulid.ULID) error {
	_, err := f.GetByID(ctx, id)
	return err
}

func newService(t *testing.T) (*helprequest.Service, *fakeRepository, ulid.ULID, ulid.ULID) {
	t.Helper()

	owner := &user.User{Id: ulid.Make(), Name: "Ana", Role: user.RoleEntrepreneur}
	investor := &user.User{Id: ulid.Make(), Name: "Bruno", Role: user.RoleInvestor}
	users := &fakeUsers{users: map[ulid.ULID]*user.User{owner.Id: owner, investor.Id: investor}}

	repo := newFakeRepository()
	svc := helprequest.NewService(repo, users, shared.NewUserCheckerService(users))
	return svc, repo, owner.Id, investor.Id
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo, owner, investor := newService(t)

	tests := []struct {
		name    string
		input   helprequest.CreateInput
		wantErr *appErrors.AppError
	}{
		{
			name: "financial request",
			input: helprequest.CreateInput{
				OwnerId: owner, Kind: helprequest.KindFinancial, Title: " Forno ", RequestedAmount: decimal.NewFromInt(1500),
			},
		},
		{
			name: "technical request ignores amount",
			input: helprequest.CreateInput{
				OwnerId: owner, Kind: helprequest.KindTechnical, Title: "Marketing", RequestedAmount: decimal.NewFromInt(99),
			},
		},
		{
			name:    "investor cannot open requests",
			input:   helprequest.CreateInput{OwnerId: investor, Kind: helprequest.KindFinancial, Title: "X", RequestedAmount: decimal.NewFromInt(1)},
			wantErr: appErrors.ErrForbidden,
		},
		{
			name:    "unknown owner",
			input:   helprequest.CreateInput{OwnerId: ulid.Make(), Kind: helprequest.KindFinancial, Title: "X", RequestedAmount: decimal.NewFromInt(1)},
			wantErr: appErrors.ErrUserNotFound,
		},
		{
			name:    "financial request without amount",
			input:   helprequest.CreateInput{OwnerId: owner, Kind: helprequest.KindFinancial, Title: "X"},
			wantErr: appErrors.ErrValidation,
		},
		{
			name:    "blank title",
			input:   helprequest.CreateInput{OwnerId: owner, Kind: helprequest.KindTechnical, Title: "   "},
			wantErr: appErrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Create(ctx, tt.input)
			if tt.wantErr != nil {
				if !appErrors.HasCode(err, tt.wantErr) {
					t.Fatalf("expected %s, got %v", tt.wantErr.Code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Status != helprequest.StatusOpen {
				t.Fatalf("expected OPEN, got %s", got.Status)
			}
			if got.Kind == helprequest.KindTechnical && !got.RequestedAmount.IsZero() {
				t.Fatalf("technical request must not carry an amount, got %s", got.RequestedAmount)
			}
			if _, ok := repo.requests[got.Id]; !ok {
				t.Fatalf("expected request to be persisted")
			}
		})
	}
}

func TestServiceClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo, owner, investor := newService(t)

	request, err := svc.Create(ctx, helprequest.CreateInput{
		OwnerId: owner, Kind: helprequest.KindFinancial, Title: "Forno", RequestedAmount: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Close(ctx, request.Id, investor); !appErrors.HasCode(err, appErrors.ErrResourceNotOwned) {
		t.Fatalf("expected not owned, got %v", err)
	}
	if err := svc.Close(ctx, request.Id, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.requests[request.Id].Status != helprequest.StatusClosed {
		t.Fatalf("expected CLOSED, got %s", repo.requests[request.Id].Status)
	}
	if err := svc.Close(ctx, request.Id, owner); !appErrors.HasCode(err, appErrors.ErrHelpRequestNotOpen) {
		t.Fatalf("expected not open, got %v", err)
	}
}

func TestServiceListValidatesFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo, owner, _ := newService(t)

	called := false
	repo.listFn = func(ctx context.Context, filters *helprequest.Filters, pagination *pkg.PaginationParams) ([]*helprequest.HelpRequest, int64, error) {
		called = true
		return nil, 0, nil
	}

	bad := helprequest.Status("PAUSED")
	if _, _, err := svc.List(ctx, &helprequest.Filters{Status: &bad}, nil); err == nil {
		t.Fatalf("expected validation error")
	}
	if called {
		t.Fatalf("repository must not be queried with invalid filters")
	}

	open := helprequest.StatusOpen
	if _, _, err := svc.List(ctx, &helprequest.Filters{Status: &open}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected repository query")
	}

	if _, _, err := svc.ListByOwner(ctx, ulid.Make(), nil); !appErrors.HasCode(err, appErrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
	if _, total, err := svc.ListByOwner(ctx, owner, nil); err != nil || total != 0 {
		t.Fatalf("expected empty list, got %d %v", total, err)
	}
}
