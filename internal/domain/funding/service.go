package funding

import (
	"context"

	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/proposal"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type ProposalSource interface {
	Get(ctx context.Context, id, actorID ulid.ULID) (*proposal.Proposal, error)
	ListFinancialForActor(ctx context.Context, actorID ulid.ULID, view proposal.View, pagination *pkg.PaginationParams) ([]*proposal.Proposal, int64, error)
	AcceptedAmount(ctx context.Context, helpRequestID ulid.ULID) decimal.Decimal
}

type HelpRequestGetter interface {
	GetByID(ctx context.Context, id ulid.ULID) (*helprequest.HelpRequest, error)
}

type CalculationRecorder interface {
	FundingCalculated()
}

type Service struct {
	Proposals    ProposalSource
	HelpRequests HelpRequestGetter
	Metrics      CalculationRecorder
}

func NewService(proposals ProposalSource, helpRequests HelpRequestGetter, metrics CalculationRecorder) *Service {
	return &Service{
		Proposals:    proposals,
		HelpRequests: helpRequests,
		Metrics:      metrics,
	}
}

type ProposalProgress struct {
	ProposalId    ulid.ULID       `json:"proposalId"`
	HelpRequestId ulid.ULID       `json:"helpRequestId"`
	Status        proposal.Status `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Progress      Progress        `json:"progress"`
}

type RequestProgress struct {
	HelpRequestId ulid.ULID          `json:"helpRequestId"`
	Status        helprequest.Status `json:"status"`
	Progress      Progress           `json:"progress"`
}

// PreviewInput aceita valores soltos (string, numero, nulo) vindos do cliente.
type PreviewInput struct {
	RequestedAmount interface{}
	AcceptedAmount  interface{}
	ProposalAmount  interface{}
	ProposalStatus  interface{}
}

func (s *Service) ProgressForProposal(ctx context.Context, proposalID, actorID ulid.ULID) (*ProposalProgress, error) {
	p, err := s.Proposals.Get(ctx, proposalID, actorID)
	if err != nil {
		return nil, err
	}

	candidate, ok := CandidateFrom(p)
	if !ok {
		return nil, appErrors.NewValidationError("kind", "proposta técnica não possui progresso financeiro")
	}

	accepted := s.Proposals.AcceptedAmount(ctx, p.HelpRequestId)
	return s.build(p, candidate, accepted), nil
}

// ProgressForActor calcula o progresso das propostas financeiras do ator; o total conta so essas.
// Cada pedido e consultado uma unica vez.
func (s *Service) ProgressForActor(ctx context.Context, actorID ulid.ULID, view proposal.View, pagination *pkg.PaginationParams) ([]*ProposalProgress, int64, error) {
	proposals, total, err := s.Proposals.ListFinancialForActor(ctx, actorID, view, pagination)
	if err != nil {
		return nil, 0, err
	}

	acceptedByRequest := make(map[ulid.ULID]decimal.Decimal)
	for _, p := range proposals {
		if !p.IsFinancial() {
			continue
		}
		if _, seen := acceptedByRequest[p.HelpRequestId]; seen {
			continue
		}
		acceptedByRequest[p.HelpRequestId] = s.Proposals.AcceptedAmount(ctx, p.HelpRequestId)
	}

	out := make([]*ProposalProgress, 0, len(proposals))
	for _, p := range proposals {
		candidate, ok := CandidateFrom(p)
		if !ok {
			continue
		}
		out = append(out, s.build(p, candidate, acceptedByRequest[p.HelpRequestId]))
	}
	return out, total, nil
}

func (s *Service) RequestSummary(ctx context.Context, helpRequestID ulid.ULID) (*RequestProgress, error) {
	request, err := s.HelpRequests.GetByID(ctx, helpRequestID)
	if err != nil {
		return nil, err
	}

	accepted := s.Proposals.AcceptedAmount(ctx, request.Id)
	s.record()

	return &RequestProgress{
		HelpRequestId: request.Id,
		Status:        request.Status,
		Progress:      Calculate(request.RequestedAmount, accepted, Candidate{}),
	}, nil
}

func (s *Service) Preview(input PreviewInput) Progress {
	candidate := Candidate{Amount: pkg.CoerceAmount(input.ProposalAmount)}
	if raw, ok := input.ProposalStatus.(string); ok {
		if status, valid := proposal.ParseStatus(raw); valid {
			candidate.Status = status
		}
	}

	s.record()
	return Calculate(pkg.CoerceAmount(input.RequestedAmount), pkg.CoerceAmount(input.AcceptedAmount), candidate)
}

func (s *Service) build(p *proposal.Proposal, candidate Candidate, accepted decimal.Decimal) *ProposalProgress {
	s.record()
	return &ProposalProgress{
		ProposalId:    p.Id,
		HelpRequestId: p.HelpRequestId,
		Status:        p.Status,
		Amount:        candidate.Amount,
		Progress:      Calculate(p.Financial.RequestedAmount, accepted, candidate),
	}
}

func (s *Service) record() {
	if s.Metrics != nil {
		s.Metrics.FundingCalculated()
	}
}
