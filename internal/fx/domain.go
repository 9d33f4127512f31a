package fx

import (
	"Fundbridge/internal/domain/funding"
	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/messaging"
	"Fundbridge/internal/domain/proposal"
	"Fundbridge/internal/domain/shared"
	"Fundbridge/internal/domain/user"
	"Fundbridge/internal/infrastructure"
	"Fundbridge/internal/infrastructure/events"
	"Fundbridge/internal/metrics"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		// User services
		newUserService,
		newUserServiceAdapter,
		newUserCheckerService,

		newHelpRequestService,

		// Proposal depende de help request e publica eventos de decisão
		newProposalService,

		newFundingService,
		newMessagingService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserServiceAdapter(userSvc *user.Service) *user.UserServiceAdapter {
	return user.NewUserServiceAdapter(userSvc)
}

func newUserCheckerService(adapter *user.UserServiceAdapter) *shared.UserCheckerService {
	return shared.NewUserCheckerService(adapter)
}

func newHelpRequestService(
	repo *infrastructure.HelpRequestRepository,
	userSvc *user.Service,
	userChecker *shared.UserCheckerService,
) *helprequest.Service {
	return helprequest.NewService(repo, userSvc, userChecker)
}

func newProposalService(
	repo *infrastructure.ProposalRepository,
	helpRequestSvc *helprequest.Service,
	userSvc *user.Service,
	publisher events.Publisher,
	m *metrics.Metrics,
) *proposal.Service {
	return proposal.NewService(repo, helpRequestSvc, userSvc, publisher, m)
}

func newFundingService(
	proposalSvc *proposal.Service,
	helpRequestSvc *helprequest.Service,
	m *metrics.Metrics,
) *funding.Service {
	return funding.NewService(proposalSvc, helpRequestSvc, m)
}

func newMessagingService(
	store messaging.Store,
	helpRequestSvc *helprequest.Service,
	publisher events.Publisher,
	userChecker *shared.UserCheckerService,
) *messaging.Service {
	return messaging.NewService(store, helpRequestSvc, publisher, userChecker)
}
