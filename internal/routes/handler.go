package routes

import (
	"context"
	"strconv"

	"Fundbridge/internal/domain/funding"
	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/messaging"
	"Fundbridge/internal/domain/proposal"
	"Fundbridge/internal/domain/user"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/logger"
	"Fundbridge/internal/middleware"
	"Fundbridge/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Handler struct {
	UserService        *user.Service
	HelpRequestService *helprequest.Service
	ProposalService    *proposal.Service
	FundingService     *funding.Service
	MessagingService   *messaging.Service

	// HealthCheck e opcional; quando presente o /health reflete o banco.
	HealthCheck func(ctx context.Context) error
}

func (h *Handler) GetUserIDFromContext(c *gin.Context) (ulid.ULID, error) {
	userIDStr, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	raw, ok := userIDStr.(string)
	if !ok {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	userID, err := pkg.ParseULID(raw)
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	return userID, nil
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	return pkg.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", strconv.Itoa(pkg.DefaultPageLimit)))
}

func (h *Handler) parseIDParam(c *gin.Context, name string) (ulid.ULID, error) {
	raw := c.Param(name)
	if raw == "" {
		return ulid.ULID{}, appErrors.NewValidationError(name, "é obrigatório")
	}
	id, err := pkg.ParseULID(raw)
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError(name, "formato inválido")
	}
	return id, nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error()
	if appErr.StatusCode < 500 {
		event = logger.Warn()
	}
	event = event.Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}

func (h *Handler) respondBindError(c *gin.Context, err error) {
	h.respondError(c, appErrors.ParseValidationErrors(err))
}
