package helprequest

import (
	"context"
	"strings"

	"Fundbridge/internal/domain/shared"
	"Fundbridge/internal/domain/user"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type UserLookup interface {
	GetByID(ctx context.Context, id ulid.ULID) (*user.User, error)
}

type Service struct {
	Repository Repository
	Users      UserLookup
	shared.BaseService
}

func NewService(repo Repository, users UserLookup, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		Users:      users,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

type CreateInput struct {
	OwnerId         ulid.ULID
	Kind            Kind
	Title           string
	Description     string
	RequestedAmount decimal.Decimal
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*HelpRequest, error) {
	owner, err := s.Users.GetByID(ctx, input.OwnerId)
	if err != nil {
		return nil, err
	}
	if owner.Role != user.RoleEntrepreneur {
		return nil, appErrors.ErrForbidden.WithDetails(map[string]interface{}{
			"reason": "apenas empreendedores podem abrir pedidos de ajuda",
		})
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Kind == KindTechnical {
		input.RequestedAmount = decimal.Zero
	}
	if err := Validate(input); err != nil {
		return nil, err
	}

	now := pkg.SetTimestamps()
	entity := &HelpRequest{
		Id:              pkg.GenerateULIDObject(),
		OwnerId:         input.OwnerId,
		Kind:            input.Kind,
		Title:           input.Title,
		Description:     input.Description,
		RequestedAmount: input.RequestedAmount,
		Status:          StatusOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*HelpRequest, error) {
	return s.Repository.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *Filters, pagination *pkg.PaginationParams) ([]*HelpRequest, int64, error) {
	if filters != nil {
		if filters.Status != nil && !filters.Status.IsValid() {
			return nil, 0, appErrors.NewValidationError("status", "deve ser OPEN, FUNDED ou CLOSED")
		}
		if filters.Kind != nil && !filters.Kind.IsValid() {
			return nil, 0, appErrors.NewValidationError("kind", "deve ser FINANCIAL ou TECHNICAL")
		}
	}
	return s.Repository.List(ctx, filters, pagination)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID ulid.ULID, pagination *pkg.PaginationParams) ([]*HelpRequest, int64, error) {
	if err := s.EnsureUserExists(ctx, ownerID); err != nil {
		return nil, 0, err
	}
	return s.Repository.GetByOwnerID(ctx, ownerID, pagination)
}

func (s *Service) Close(ctx context.Context, id, actorID ulid.ULID) error {
	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !request.IsOwnedBy(actorID) {
		return appErrors.ErrResourceNotOwned
	}
	if request.Status != StatusOpen {
		return appErrors.ErrHelpRequestNotOpen
	}
	return s.Repository.UpdateStatus(ctx, id, StatusClosed)
}

func Validate(input CreateInput) error {
	if !input.Kind.IsValid() {
		return appErrors.NewValidationError("kind", "deve ser FINANCIAL ou TECHNICAL")
	}
	if input.Title == "" {
		return appErrors.NewValidationError("title", "é obrigatório")
	}
	if len([]rune(input.Title)) > 150 {
		return appErrors.NewValidationError("title", "deve ter no máximo 150 caracteres")
	}
	if input.Kind == KindFinancial && !input.RequestedAmount.IsPositive() {
		return appErrors.NewValidationError("requested_amount", "deve ser maior que zero")
	}
	return nil
}
