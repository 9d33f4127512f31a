package shared

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// UserChecker responde se um usuario existe; ErrUserNotFound quando nao existe.
type UserChecker interface {
	Exists(ctx context.Context, userID ulid.ULID) error
}
