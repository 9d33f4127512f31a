package middleware

import (
	"context"
	"net/http"
	"strings"

	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	HeaderActorID = "X-Actor-ID"
	ContextUserID = "user_id"
)

type ActorChecker interface {
	EnsureUserExists(ctx context.Context, userID ulid.ULID) error
}

// ActorMiddleware identifica o ator pelo cabecalho X-Actor-ID. Nao ha autenticacao:
// o cabecalho apenas precisa apontar para um usuario existente.
func ActorMiddleware(checker ActorChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderActorID))
		if raw == "" {
			abortWith(c, appErrors.ErrUnauthorized.WithDetails(map[string]interface{}{
				"header": HeaderActorID,
			}))
			return
		}

		actorID, err := pkg.ParseULID(raw)
		if err != nil {
			abortWith(c, appErrors.ErrUnauthorized.WithDetails(map[string]interface{}{
				"header": HeaderActorID,
				"reason": "formato inválido",
			}))
			return
		}

		if err := checker.EnsureUserExists(c.Request.Context(), actorID); err != nil {
			if appErrors.HasCode(err, appErrors.ErrUserNotFound) {
				abortWith(c, appErrors.ErrUnauthorized.WithError(err))
				return
			}
			abortWith(c, appErrors.FromError(err))
			return
		}

		c.Set(ContextUserID, actorID.String())
		c.Next()
	}
}

func abortWith(c *gin.Context, err *appErrors.AppError) {
	payload := gin.H{
		"error":   err.Code,
		"message": err.Message,
	}
	if len(err.Details) > 0 {
		payload["details"] = err.Details
	}
	status := err.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, payload)
}
