package fx

import (
	"context"

	"Fundbridge/internal/domain/funding"
	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/messaging"
	"Fundbridge/internal/domain/proposal"
	"Fundbridge/internal/domain/user"
	"Fundbridge/internal/routes"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// RoutesModule fornece o handler HTTP
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
	),
)

func newHandler(
	db *gorm.DB,
	userSvc *user.Service,
	helpRequestSvc *helprequest.Service,
	proposalSvc *proposal.Service,
	fundingSvc *funding.Service,
	messagingSvc *messaging.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:        userSvc,
		HelpRequestService: helpRequestSvc,
		ProposalService:    proposalSvc,
		FundingService:     fundingSvc,
		MessagingService:   messagingSvc,
		HealthCheck: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}
