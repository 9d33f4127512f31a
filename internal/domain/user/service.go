package user

import (
	"context"
	"net/mail"
	"strings"

	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) Create(ctx context.Context, user *User) error {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Bio = strings.TrimSpace(user.Bio)

	if err := Validate(user); err != nil {
		return err
	}

	existing, err := s.Repository.GetByEmail(ctx, user.Email)
	if err != nil && !appErrors.HasCode(err, appErrors.ErrUserNotFound) {
		return err
	}
	if existing != nil {
		return appErrors.ErrEmailAlreadyExists
	}

	user.Id = pkg.GenerateULIDObject()
	now := pkg.SetTimestamps()
	user.CreatedAt = now
	user.UpdatedAt = now

	return s.Repository.Create(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*User, error) {
	user, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Exists(ctx context.Context, userID ulid.ULID) error {
	_, err := s.GetByID(ctx, userID)
	return err
}

// UpdateProfile altera apenas os campos informados (nil mantem o valor atual).
func (s *Service) UpdateProfile(ctx context.Context, userID ulid.ULID, name, bio *string) (*User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, appErrors.NewValidationError("name", "não pode estar vazio")
		}
		user.Name = trimmed
	}
	if bio != nil {
		user.Bio = strings.TrimSpace(*bio)
	}
	user.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func Validate(user *User) error {
	if user.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return appErrors.NewValidationError("email", "inválido")
	}
	if !user.Role.IsValid() {
		return appErrors.NewValidationError("role", "deve ser ENTREPRENEUR, INVESTOR ou MENTOR")
	}
	if len([]rune(user.Bio)) > 500 {
		return appErrors.NewValidationError("bio", "deve ter no máximo 500 caracteres")
	}
	return nil
}

type UserServiceAdapter struct {
	service *Service
}

func NewUserServiceAdapter(service *Service) *UserServiceAdapter {
	return &UserServiceAdapter{service: service}
}

func (a *UserServiceAdapter) Exists(ctx context.Context, userID ulid.ULID) error {
	return a.service.Exists(ctx, userID)
}
