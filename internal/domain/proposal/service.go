package proposal

import (
	"context"
	"strings"
	"time"

	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/user"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/logger"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

const SubjectProposalDecided = "proposal.decided"

type HelpRequestGetter interface {
	GetByID(ctx context.Context, id ulid.ULID) (*helprequest.HelpRequest, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id ulid.ULID) (*user.User, error)
}

type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

type DecisionRecorder interface {
	ProposalDecided(status string)
}

type Service struct {
	Repository   Repository
	HelpRequests HelpRequestGetter
	Users        UserLookup
	Events       Publisher
	Metrics      DecisionRecorder
}

func NewService(repo Repository, helpRequests HelpRequestGetter, users UserLookup, events Publisher, metrics DecisionRecorder) *Service {
	return &Service{
		Repository:   repo,
		HelpRequests: helpRequests,
		Users:        users,
		Events:       events,
		Metrics:      metrics,
	}
}

type CreateInput struct {
	AuthorId      ulid.ULID
	HelpRequestId ulid.ULID
	Kind          helprequest.Kind
	Message       string
	Amount        decimal.Decimal
	Technical     *TechnicalTerms
}

type DecidedEvent struct {
	ProposalId    string          `json:"proposalId"`
	HelpRequestId string          `json:"helpRequestId"`
	AuthorId      string          `json:"authorId"`
	DecidedBy     string          `json:"decidedBy"`
	Kind          string          `json:"kind"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	DecidedAt     time.Time       `json:"decidedAt"`
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Proposal, error) {
	author, err := s.Users.GetByID(ctx, input.AuthorId)
	if err != nil {
		return nil, err
	}
	if author.Role == user.RoleEntrepreneur {
		return nil, appErrors.ErrForbidden.WithDetails(map[string]interface{}{
			"reason": "empreendedores não enviam propostas",
		})
	}

	request, err := s.HelpRequests.GetByID(ctx, input.HelpRequestId)
	if err != nil {
		return nil, err
	}
	if request.IsOwnedBy(input.AuthorId) {
		return nil, appErrors.NewValidationError("help_request_id", "não pode receber proposta do próprio autor")
	}
	if request.Status != helprequest.StatusOpen {
		return nil, appErrors.ErrHelpRequestNotOpen
	}
	if input.Kind != request.Kind {
		return nil, appErrors.NewValidationError("kind", "deve ser igual ao tipo do pedido de ajuda")
	}

	now := pkg.SetTimestamps()
	entity := &Proposal{
		Id:            pkg.GenerateULIDObject(),
		HelpRequestId: request.Id,
		AuthorId:      input.AuthorId,
		Kind:          input.Kind,
		Status:        StatusPending,
		Message:       strings.TrimSpace(input.Message),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch input.Kind {
	case helprequest.KindFinancial:
		entity.Financial = &FinancialTerms{
			Amount:          input.Amount,
			RequestedAmount: request.RequestedAmount,
		}
	case helprequest.KindTechnical:
		if input.Technical != nil {
			terms := *input.Technical
			terms.Expertise = strings.TrimSpace(terms.Expertise)
			entity.Technical = &terms
		}
	}

	if err := entity.ValidateVariant(); err != nil {
		return nil, err
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Get devolve a proposta se o ator for o autor ou o dono do pedido.
func (s *Service) Get(ctx context.Context, id, actorID ulid.ULID) (*Proposal, error) {
	entity, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.AuthorId == actorID {
		return entity, nil
	}

	request, err := s.HelpRequests.GetByID(ctx, entity.HelpRequestId)
	if err != nil {
		return nil, err
	}
	if !request.IsOwnedBy(actorID) {
		return nil, appErrors.ErrResourceNotOwned
	}
	return entity, nil
}

func (s *Service) ListForActor(ctx context.Context, actorID ulid.ULID, view View, pagination *pkg.PaginationParams) ([]*Proposal, int64, error) {
	return s.listForActor(ctx, actorID, view, "", pagination)
}

// ListFinancialForActor filtra no banco, entao o total conta apenas propostas financeiras.
func (s *Service) ListFinancialForActor(ctx context.Context, actorID ulid.ULID, view View, pagination *pkg.PaginationParams) ([]*Proposal, int64, error) {
	return s.listForActor(ctx, actorID, view, helprequest.KindFinancial, pagination)
}

func (s *Service) listForActor(ctx context.Context, actorID ulid.ULID, view View, kind helprequest.Kind, pagination *pkg.PaginationParams) ([]*Proposal, int64, error) {
	switch view {
	case ViewSent, "":
		return s.Repository.ListByAuthor(ctx, actorID, kind, pagination)
	case ViewReceived:
		return s.Repository.ListByHelpRequestOwner(ctx, actorID, kind, pagination)
	default:
		return nil, 0, appErrors.NewValidationError("view", "deve ser sent ou received")
	}
}

// AcceptedAmount soma as propostas financeiras aceitas do pedido. Falhas viram zero.
func (s *Service) AcceptedAmount(ctx context.Context, helpRequestID ulid.ULID) decimal.Decimal {
	total, err := s.Repository.SumAccepted(ctx, helpRequestID)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("help_request_id", helpRequestID.String()).
			Msg("Falha ao consultar valor aceito, usando zero")
		return decimal.Zero
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

func (s *Service) UpdateStatus(ctx context.Context, proposalID, actorID ulid.ULID, target Status) (*Proposal, error) {
	if target != StatusAccepted && target != StatusRefused {
		return nil, appErrors.ErrInvalidStatusTransition.WithDetails(map[string]interface{}{
			"target": string(target),
		})
	}

	entity, err := s.Repository.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	request, err := s.HelpRequests.GetByID(ctx, entity.HelpRequestId)
	if err != nil {
		return nil, err
	}
	if !request.IsOwnedBy(actorID) {
		return nil, appErrors.ErrResourceNotOwned
	}

	var decided *Proposal
	err = s.Repository.WithinTransaction(ctx, func(tx Repository) error {
		locked, err := tx.LockHelpRequest(ctx, entity.HelpRequestId)
		if err != nil {
			return err
		}

		current, err := tx.GetByID(ctx, proposalID)
		if err != nil {
			return err
		}
		if !current.IsPending() {
			return appErrors.ErrProposalAlreadyDecided
		}

		if target == StatusAccepted {
			if locked.Status != helprequest.StatusOpen {
				return appErrors.ErrHelpRequestNotOpen
			}
			if current.IsFinancial() {
				if err := acceptWithinRequested(ctx, tx, locked, current); err != nil {
					return err
				}
			}
		}

		now := pkg.SetTimestamps()
		if err := tx.UpdateStatus(ctx, current.Id, target, now); err != nil {
			return err
		}
		current.Status = target
		current.DecidedAt = &now
		current.UpdatedAt = now
		decided = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("proposal_id", decided.Id.String()).
		Str("help_request_id", decided.HelpRequestId.String()).
		Str("status", string(decided.Status)).
		Msg("Proposta decidida")

	if s.Metrics != nil {
		s.Metrics.ProposalDecided(string(decided.Status))
	}
	s.publishDecided(ctx, decided, actorID)

	return decided, nil
}

// acceptWithinRequested recusa o aceite se o total aceito passar do valor solicitado e
// marca o pedido como FUNDED quando o total fecha exatamente.
func acceptWithinRequested(ctx context.Context, tx Repository, request *helprequest.HelpRequest, candidate *Proposal) error {
	accepted, err := tx.SumAccepted(ctx, request.Id)
	if err != nil {
		return err
	}

	newTotal := accepted.Add(candidate.Financial.Amount)
	if newTotal.GreaterThan(request.RequestedAmount) {
		return appErrors.ErrProposalExceedsRequested.WithDetails(map[string]interface{}{
			"requestedAmount": request.RequestedAmount.String(),
			"acceptedAmount":  accepted.String(),
			"proposalAmount":  candidate.Financial.Amount.String(),
		})
	}

	if newTotal.Equal(request.RequestedAmount) {
		return tx.UpdateHelpRequestStatus(ctx, request.Id, helprequest.StatusFunded)
	}
	return nil
}

func (s *Service) publishDecided(ctx context.Context, p *Proposal, decidedBy ulid.ULID) {
	if s.Events == nil {
		return
	}

	event := DecidedEvent{
		ProposalId:    p.Id.String(),
		HelpRequestId: p.HelpRequestId.String(),
		AuthorId:      p.AuthorId.String(),
		DecidedBy:     decidedBy.String(),
		Kind:          string(p.Kind),
		Status:        string(p.Status),
		Amount:        decimal.Zero,
	}
	if p.Financial != nil {
		event.Amount = p.Financial.Amount
	}
	if p.DecidedAt != nil {
		event.DecidedAt = *p.DecidedAt
	}

	if err := s.Events.Publish(ctx, SubjectProposalDecided, event); err != nil {
		logger.Warn().
			Err(err).
			Str("proposal_id", p.Id.String()).
			Msg("Falha ao publicar evento de proposta decidida")
	}
}

// Withdraw remove uma proposta ainda pendente; somente o autor pode retirar.
func (s *Service) Withdraw(ctx context.Context, proposalID, actorID ulid.ULID) error {
	entity, err := s.Repository.GetByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if entity.AuthorId != actorID {
		return appErrors.ErrResourceNotOwned
	}
	if !entity.IsPending() {
		return appErrors.ErrProposalAlreadyDecided
	}
	return s.Repository.Delete(ctx, proposalID)
}
