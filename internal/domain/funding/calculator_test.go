package funding_test

import (
	"testing"

	"Fundbridge/internal/domain/funding"
	"Fundbridge/internal/domain/proposal"

	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

var tolerance = d("0.000000001")

func near(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

func TestCalculateScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		requested     string
		accepted      string
		candidate     funding.Candidate
		wantCurrent   string
		wantProjected string
		wantRemaining string
		wantPending   string
	}{
		{
			name:          "pending proposal projects on top of accepted",
			requested:     "1000",
			accepted:      "400",
			candidate:     funding.Candidate{Amount: d("200"), Status: proposal.StatusPending},
			wantCurrent:   "40",
			wantProjected: "60",
			wantRemaining: "400",
			wantPending:   "200",
		},
		{
			name:          "accepted proposal is not counted twice",
			requested:     "1000",
			accepted:      "1000",
			candidate:     funding.Candidate{Amount: d("200"), Status: proposal.StatusAccepted},
			wantCurrent:   "100",
			wantProjected: "100",
			wantRemaining: "0",
			wantPending:   "0",
		},
		{
			name:          "zero requested amount yields zero percent",
			requested:     "0",
			accepted:      "0",
			candidate:     funding.Candidate{Amount: d("50"), Status: proposal.StatusPending},
			wantCurrent:   "0",
			wantProjected: "0",
			wantRemaining: "0",
			wantPending:   "50",
		},
		{
			name:          "over accepted request clamps",
			requested:     "500",
			accepted:      "600",
			candidate:     funding.Candidate{Amount: d("0"), Status: proposal.StatusRefused},
			wantCurrent:   "100",
			wantProjected: "100",
			wantRemaining: "0",
			wantPending:   "0",
		},
		{
			name:          "refused proposal contributes nothing",
			requested:     "800",
			accepted:      "200",
			candidate:     funding.Candidate{Amount: d("300"), Status: proposal.StatusRefused},
			wantCurrent:   "25",
			wantProjected: "25",
			wantRemaining: "600",
			wantPending:   "0",
		},
		{
			name:          "pending overshoot clamps projection",
			requested:     "1000",
			accepted:      "900",
			candidate:     funding.Candidate{Amount: d("250"), Status: proposal.StatusPending},
			wantCurrent:   "90",
			wantProjected: "100",
			wantRemaining: "0",
			wantPending:   "250",
		},
		{
			name:          "negative inputs are treated as zero",
			requested:     "1000",
			accepted:      "-50",
			candidate:     funding.Candidate{Amount: d("-10"), Status: proposal.StatusPending},
			wantCurrent:   "0",
			wantProjected: "0",
			wantRemaining: "1000",
			wantPending:   "0",
		},
		{
			name:          "unknown status behaves like a decided proposal",
			requested:     "100",
			accepted:      "10",
			candidate:     funding.Candidate{Amount: d("40")},
			wantCurrent:   "10",
			wantProjected: "10",
			wantRemaining: "90",
			wantPending:   "0",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := funding.Calculate(d(tt.requested), d(tt.accepted), tt.candidate)

			if !got.CurrentProgressPercent.Equal(d(tt.wantCurrent)) {
				t.Fatalf("current: expected %s, got %s", tt.wantCurrent, got.CurrentProgressPercent)
			}
			if !got.ProjectedProgressPercent.Equal(d(tt.wantProjected)) {
				t.Fatalf("projected: expected %s, got %s", tt.wantProjected, got.ProjectedProgressPercent)
			}
			if !got.RemainingAmount.Equal(d(tt.wantRemaining)) {
				t.Fatalf("remaining: expected %s, got %s", tt.wantRemaining, got.RemainingAmount)
			}
			if !got.DisplayedPendingAmount.Equal(d(tt.wantPending)) {
				t.Fatalf("pending segment: expected %s, got %s", tt.wantPending, got.DisplayedPendingAmount)
			}
		})
	}
}

func TestCalculateProperties(t *testing.T) {
	t.Parallel()

	hundred := decimal.NewFromInt(100)
	amounts := []string{"0", "1", "33", "100", "250.50", "333.33", "999.99", "1000", "2500"}
	statuses := []proposal.Status{proposal.StatusPending, proposal.StatusAccepted, proposal.StatusRefused}

	for _, requested := range amounts {
		for _, accepted := range amounts {
			for _, amount := range amounts {
				for _, status := range statuses {
					req, acc, amt := d(requested), d(accepted), d(amount)
					got := funding.Calculate(req, acc, funding.Candidate{Amount: amt, Status: status})

					if got.RemainingAmount.IsNegative() {
						t.Fatalf("remaining negative for %s/%s/%s/%s: %s", requested, accepted, amount, status, got.RemainingAmount)
					}
					if !got.DisplayedAcceptedAmount.Equal(acc) {
						t.Fatalf("accepted segment changed: expected %s, got %s", acc, got.DisplayedAcceptedAmount)
					}

					if req.IsZero() {
						if !got.CurrentProgressPercent.IsZero() || !got.ProjectedProgressPercent.IsZero() {
							t.Fatalf("expected 0%% for zero requested, got %s/%s", got.CurrentProgressPercent, got.ProjectedProgressPercent)
						}
						continue
					}

					for _, p := range []decimal.Decimal{got.CurrentProgressPercent, got.ProjectedProgressPercent} {
						if p.IsNegative() || p.GreaterThan(hundred) {
							t.Fatalf("percent out of range for %s/%s/%s: %s", requested, accepted, amount, p)
						}
					}
					if got.ProjectedProgressPercent.LessThan(got.CurrentProgressPercent) {
						t.Fatalf("projected %s below current %s", got.ProjectedProgressPercent, got.CurrentProgressPercent)
					}

					switch status {
					case proposal.StatusAccepted, proposal.StatusRefused:
						if !got.ProjectedProgressPercent.Equal(got.CurrentProgressPercent) {
							t.Fatalf("%s proposal moved projection: %s vs %s", status, got.ProjectedProgressPercent, got.CurrentProgressPercent)
						}
						if !got.DisplayedPendingAmount.IsZero() {
							t.Fatalf("%s proposal has pending segment %s", status, got.DisplayedPendingAmount)
						}
					case proposal.StatusPending:
						if acc.Add(amt).GreaterThan(req) {
							continue
						}
						delta := got.ProjectedProgressPercent.Sub(got.CurrentProgressPercent)
						want := amt.Div(req).Mul(hundred)
						if !near(delta, want) {
							t.Fatalf("pending delta for %s/%s/%s: expected %s, got %s", requested, accepted, amount, want, delta)
						}
					}
				}
			}
		}
	}
}

func TestCandidateFrom(t *testing.T) {
	t.Parallel()

	if _, ok := funding.CandidateFrom(nil); ok {
		t.Fatalf("nil proposal must not produce a candidate")
	}

	technical := &proposal.Proposal{
		Kind:      "TECHNICAL",
		Status:    proposal.StatusPending,
		Technical: &proposal.TechnicalTerms{Expertise: "go", HoursPerWeek: 4},
	}
	if _, ok := funding.CandidateFrom(technical); ok {
		t.Fatalf("technical proposal must not produce a candidate")
	}

	financial := &proposal.Proposal{
		Kind:      "FINANCIAL",
		Status:    proposal.StatusAccepted,
		Financial: &proposal.FinancialTerms{Amount: d("120"), RequestedAmount: d("500")},
	}
	candidate, ok := funding.CandidateFrom(financial)
	if !ok {
		t.Fatalf("expected candidate")
	}
	if !candidate.Amount.Equal(d("120")) || candidate.Status != proposal.StatusAccepted {
		t.Fatalf("unexpected candidate %+v", candidate)
	}
}
