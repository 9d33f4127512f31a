package shared

import (
	"context"

	appErrors "Fundbridge/internal/errors"

	"github.com/oklog/ulid/v2"
)

// UserCheckerService confirma que o ator ou participante informado esta cadastrado.
type UserCheckerService struct {
	users UserChecker
}

func NewUserCheckerService(users UserChecker) *UserCheckerService {
	return &UserCheckerService{users: users}
}

// EnsureUserExists devolve ErrUserNotFound para ids desconhecidos e propaga
// qualquer outra falha (ex.: banco fora do ar) sem mascara-la como ausencia.
func (s *UserCheckerService) EnsureUserExists(ctx context.Context, userID ulid.ULID) error {
	if s == nil || s.users == nil {
		return appErrors.ErrInternalServer
	}
	if userID == (ulid.ULID{}) {
		return appErrors.ErrUserNotFound.WithDetails(map[string]interface{}{"user_id": ""})
	}

	err := s.users.Exists(ctx, userID)
	switch {
	case err == nil:
		return nil
	case appErrors.HasCode(err, appErrors.ErrUserNotFound):
		return appErrors.ErrUserNotFound.WithError(err).WithDetails(map[string]interface{}{
			"user_id": userID.String(),
		})
	default:
		return err
	}
}

// BaseService e embutido pelos services que recebem ids de usuario de fora.
type BaseService struct {
	UserChecker *UserCheckerService
}

func (b *BaseService) EnsureUserExists(ctx context.Context, userID ulid.ULID) error {
	return b.UserChecker.EnsureUserExists(ctx, userID)
}
