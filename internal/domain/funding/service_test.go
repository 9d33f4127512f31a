package funding_test

import (
	"context"
	"testing"

	"Fundbridge/internal/domain/funding"
	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/proposal"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type fakeProposalSource struct {
	getFn    func(ctx context.Context, id, actorID ulid.ULID) (*proposal.Proposal, error)
	listFn   func(ctx context.Context, actorID ulid.ULID, view proposal.View, pagination *pkg.PaginationParams) ([]*proposal.Proposal, int64, error)
	accepted map[ulid.ULID]decimal.Decimal
	lookups  map[ulid.ULID]int
}

func (f *fakeProposalSource) Get(ctx context.Context, id, actorID ulid.ULID) (*proposal.Proposal, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id, actorID)
	}
	return nil, appErrors.ErrProposalNotFound
}

func (f *fakeProposalSource) ListFinancialForActor(ctx context.Context, actorID ulid.ULID, view proposal.View, pagination *pkg.PaginationParams) ([]*proposal.Proposal, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, actorID, view, pagination)
	}
	return nil, 0, nil
}

func (f *fakeProposalSource) AcceptedAmount(ctx context.Context, helpRequestID ulid.ULID) decimal.Decimal {
	if f.lookups == nil {
		f.lookups = make(map[ulid.ULID]int)
	}
	f.lookups[helpRequestID]++
	if v, ok := f.accepted[helpRequestID]; ok {
		return v
	}
	return decimal.Zero
}

type fakeHelpRequests struct {
	requests map[ulid.ULID]*helprequest.HelpRequest
}

func (f *fakeHelpRequests) GetByID(ctx context.Context, id ulid.ULID) (*helprequest.HelpRequest, error) {
	if r, ok := f.requests[id]; ok {
		return r, nil
	}
	return nil, appErrors.ErrHelpRequestNotFound
}

type countingRecorder struct {
	calls int
}

func (c *countingRecorder) FundingCalculated() {
	c.calls++
}

func financialProposal(helpRequestID ulid.ULID, amount, requested string, status proposal.Status) *proposal.Proposal {
	return &proposal.Proposal{
		Id:            ulid.Make(),
		HelpRequestId: helpRequestID,
		AuthorId:      ulid.Make(),
		Kind:          helprequest.KindFinancial,
		Status:        status,
		Financial: &proposal.FinancialTerms{
			Amount:          d(amount),
			RequestedAmount: d(requested),
		},
	}
}

func TestServiceProgressForProposal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	requestID := ulid.Make()
	actorID := ulid.Make()

	pending := financialProposal(requestID, "200", "1000", proposal.StatusPending)
	technical := &proposal.Proposal{
		Id:            ulid.Make(),
		HelpRequestId: requestID,
		Kind:          helprequest.KindTechnical,
		Status:        proposal.StatusPending,
		Technical:     &proposal.TechnicalTerms{Expertise: "marketing", HoursPerWeek: 5},
	}

	source := &fakeProposalSource{
		getFn: func(ctx context.Context, id, actor ulid.ULID) (*proposal.Proposal, error) {
			switch id {
			case pending.Id:
				return pending, nil
			case technical.Id:
				return technical, nil
			}
			return nil, appErrors.ErrProposalNotFound
		},
		accepted: map[ulid.ULID]decimal.Decimal{requestID: d("400")},
	}
	recorder := &countingRecorder{}
	svc := funding.NewService(source, &fakeHelpRequests{}, recorder)

	t.Run("financial proposal", func(t *testing.T) {
		got, err := svc.ProgressForProposal(ctx, pending.Id, actorID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Progress.CurrentProgressPercent.Equal(d("40")) || !got.Progress.ProjectedProgressPercent.Equal(d("60")) {
			t.Fatalf("unexpected progress %+v", got.Progress)
		}
		if !got.Progress.RemainingAmount.Equal(d("400")) {
			t.Fatalf("expected remaining 400, got %s", got.Progress.RemainingAmount)
		}
		if recorder.calls != 1 {
			t.Fatalf("expected one recorded calculation, got %d", recorder.calls)
		}
	})

	t.Run("technical proposal is rejected", func(t *testing.T) {
		_, err := svc.ProgressForProposal(ctx, technical.Id, actorID)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing proposal", func(t *testing.T) {
		_, err := svc.ProgressForProposal(ctx, ulid.Make(), actorID)
		if !appErrors.HasCode(err, appErrors.ErrProposalNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestServiceProgressForActorLooksUpEachRequestOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first := ulid.Make()
	second := ulid.Make()

	proposals := []*proposal.Proposal{
		financialProposal(first, "100", "1000", proposal.StatusPending),
		financialProposal(first, "300", "1000", proposal.StatusAccepted),
		financialProposal(second, "50", "200", proposal.StatusPending),
		{
			Id:            ulid.Make(),
			HelpRequestId: second,
			Kind:          helprequest.KindTechnical,
			Status:        proposal.StatusPending,
			Technical:     &proposal.TechnicalTerms{Expertise: "design", HoursPerWeek: 2},
		},
	}

	source := &fakeProposalSource{
		listFn: func(ctx context.Context, actorID ulid.ULID, view proposal.View, pagination *pkg.PaginationParams) ([]*proposal.Proposal, int64, error) {
			if view != proposal.ViewSent {
				t.Fatalf("expected sent view, got %s", view)
			}
			return onlyFinancial(proposals)
		},
		accepted: map[ulid.ULID]decimal.Decimal{
			first:  d("300"),
			second: d("200"),
		},
	}
	svc := funding.NewService(source, &fakeHelpRequests{}, nil)

	got, total, err := svc.ProgressForActor(ctx, ulid.Make(), proposal.ViewSent, &pkg.PaginationParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3 counting only financial proposals, got %d", total)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 financial entries, got %d", len(got))
	}
	if source.lookups[first] != 1 || source.lookups[second] != 1 {
		t.Fatalf("expected one lookup per request, got %v", source.lookups)
	}

	if !got[0].Progress.CurrentProgressPercent.Equal(d("30")) || !got[0].Progress.ProjectedProgressPercent.Equal(d("40")) {
		t.Fatalf("unexpected pending progress %+v", got[0].Progress)
	}
	if !got[1].Progress.ProjectedProgressPercent.Equal(got[1].Progress.CurrentProgressPercent) {
		t.Fatalf("accepted proposal must not project: %+v", got[1].Progress)
	}
	if !got[2].Progress.CurrentProgressPercent.Equal(d("100")) || !got[2].Progress.RemainingAmount.IsZero() {
		t.Fatalf("unexpected funded progress %+v", got[2].Progress)
	}
}

func TestServiceProgressForActorTotalIgnoresTechnicalProposals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	requestID := ulid.Make()
	technical := func() *proposal.Proposal {
		return &proposal.Proposal{
			Id:            ulid.Make(),
			HelpRequestId: requestID,
			Kind:          helprequest.KindTechnical,
			Status:        proposal.StatusPending,
			Technical:     &proposal.TechnicalTerms{Expertise: "backend", HoursPerWeek: 5, DurationWeeks: 4},
		}
	}
	mixed := []*proposal.Proposal{
		technical(),
		financialProposal(requestID, "100", "500", proposal.StatusPending),
		technical(),
		technical(),
		financialProposal(requestID, "200", "500", proposal.StatusAccepted),
	}

	source := &fakeProposalSource{
		listFn: func(ctx context.Context, actorID ulid.ULID, view proposal.View, pagination *pkg.PaginationParams) ([]*proposal.Proposal, int64, error) {
			return onlyFinancial(mixed)
		},
		accepted: map[ulid.ULID]decimal.Decimal{requestID: d("200")},
	}
	svc := funding.NewService(source, &fakeHelpRequests{}, nil)

	got, total, err := svc.ProgressForActor(ctx, ulid.Make(), proposal.ViewReceived, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != int64(len(got)) || total != 2 {
		t.Fatalf("expected total to match the 2 financial entries, got total=%d entries=%d", total, len(got))
	}
}

func onlyFinancial(proposals []*proposal.Proposal) ([]*proposal.Proposal, int64, error) {
	var out []*proposal.Proposal
	for _, p := range proposals {
		if p.Kind == helprequest.KindFinancial {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func TestServiceRequestSummary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	requestID := ulid.Make()

	svc := funding.NewService(
		&fakeProposalSource{accepted: map[ulid.ULID]decimal.Decimal{requestID: d("250")}},
		&fakeHelpRequests{requests: map[ulid.ULID]*helprequest.HelpRequest{
			requestID: {
				Id:              requestID,
				Kind:            helprequest.KindFinancial,
				RequestedAmount: d("1000"),
				Status:          helprequest.StatusOpen,
			},
		}},
		nil,
	)

	got, err := svc.RequestSummary(ctx, requestID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Progress.CurrentProgressPercent.Equal(d("25")) || !got.Progress.RemainingAmount.Equal(d("750")) {
		t.Fatalf("unexpected summary %+v", got.Progress)
	}

	if _, err := svc.RequestSummary(ctx, ulid.Make()); !appErrors.HasCode(err, appErrors.ErrHelpRequestNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServicePreviewIsLenient(t *testing.T) {
	t.Parallel()

	svc := funding.NewService(&fakeProposalSource{}, &fakeHelpRequests{}, nil)

	tests := []struct {
		name          string
		input         funding.PreviewInput
		wantCurrent   string
		wantProjected string
		wantRemaining string
	}{
		{
			name: "string amounts and lowercase status",
			input: funding.PreviewInput{
				RequestedAmount: "1000",
				AcceptedAmount:  400.0,
				ProposalAmount:  "200",
				ProposalStatus:  "pending",
			},
			wantCurrent:   "40",
			wantProjected: "60",
			wantRemaining: "400",
		},
		{
			name: "missing fields default to zero",
			input: funding.PreviewInput{
				RequestedAmount: nil,
				ProposalAmount:  "abc",
			},
			wantCurrent:   "0",
			wantProjected: "0",
			wantRemaining: "0",
		},
		{
			name: "unknown status is not projected",
			input: funding.PreviewInput{
				RequestedAmount: 500,
				AcceptedAmount:  100,
				ProposalAmount:  100,
				ProposalStatus:  "maybe",
			},
			wantCurrent:   "20",
			wantProjected: "20",
			wantRemaining: "400",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Preview(tt.input)
			if !got.CurrentProgressPercent.Equal(d(tt.wantCurrent)) ||
				!got.ProjectedProgressPercent.Equal(d(tt.wantProjected)) ||
				!got.RemainingAmount.Equal(d(tt.wantRemaining)) {
				t.Fatalf("unexpected preview %+v", got)
			}
		})
	}
}
