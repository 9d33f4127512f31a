package infrastructure

import (
	"context"
	"errors"
	"time"

	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/proposal"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProposalRepository struct {
	DB *gorm.DB
}

// proposalDB guarda as duas variantes na mesma tabela; as colunas da variante ausente ficam nulas.
type proposalDB struct {
	Id              string              `gorm:"type:varchar(26);primaryKey"`
	HelpRequestId   string              `gorm:"type:varchar(26);not null;index:idx_proposals_help_request_status,priority:1"`
	AuthorId        string              `gorm:"type:varchar(26);not null;index"`
	Kind            string              `gorm:"type:varchar(20);not null"`
	Status          string              `gorm:"type:varchar(20);not null;index:idx_proposals_help_request_status,priority:2"`
	Message         string              `gorm:"type:text"`
	Amount          decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	RequestedAmount decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	Expertise       *string             `gorm:"type:varchar(150)"`
	HoursPerWeek    *int
	DurationWeeks   *int
	DecidedAt       *time.Time
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (proposalDB) TableName() string {
	return "proposals"
}

func toDomainProposal(pdb *proposalDB) (*proposal.Proposal, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	helpRequestID, err := pkg.ParseULID(pdb.HelpRequestId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	authorID, err := pkg.ParseULID(pdb.AuthorId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	p := &proposal.Proposal{
		Id:            id,
		HelpRequestId: helpRequestID,
		AuthorId:      authorID,
		Kind:          helprequest.Kind(pdb.Kind),
		Status:        proposal.Status(pdb.Status),
		Message:       pdb.Message,
		DecidedAt:     pdb.DecidedAt,
		CreatedAt:     pdb.CreatedAt,
		UpdatedAt:     pdb.UpdatedAt,
	}

	switch p.Kind {
	case helprequest.KindFinancial:
		p.Financial = &proposal.FinancialTerms{
			Amount:          pdb.Amount.Decimal,
			RequestedAmount: pdb.RequestedAmount.Decimal,
		}
	case helprequest.KindTechnical:
		terms := &proposal.TechnicalTerms{}
		if pdb.Expertise != nil {
			terms.Expertise = *pdb.Expertise
		}
		if pdb.HoursPerWeek != nil {
			terms.HoursPerWeek = *pdb.HoursPerWeek
		}
		if pdb.DurationWeeks != nil {
			terms.DurationWeeks = *pdb.DurationWeeks
		}
		p.Technical = terms
	}

	return p, nil
}

func toDBProposal(p *proposal.Proposal) *proposalDB {
	pdb := &proposalDB{
		Id:            p.Id.String(),
		HelpRequestId: p.HelpRequestId.String(),
		AuthorId:      p.AuthorId.String(),
		Kind:          string(p.Kind),
		Status:        string(p.Status),
		Message:       p.Message,
		DecidedAt:     p.DecidedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Financial != nil {
		pdb.Amount = decimal.NewNullDecimal(p.Financial.Amount)
		pdb.RequestedAmount = decimal.NewNullDecimal(p.Financial.RequestedAmount)
	}
	if p.Technical != nil {
		expertise := p.Technical.Expertise
		hours := p.Technical.HoursPerWeek
		weeks := p.Technical.DurationWeeks
		pdb.Expertise = &expertise
		pdb.HoursPerWeek = &hours
		pdb.DurationWeeks = &weeks
	}
	return pdb
}

func (r *ProposalRepository) Create(ctx context.Context, p *proposal.Proposal) error {
	if err := r.DB.WithContext(ctx).Table("proposals").Create(toDBProposal(p)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *ProposalRepository) GetByID(ctx context.Context, id ulid.ULID) (*proposal.Proposal, error) {
	var pdb proposalDB
	if err := r.DB.WithContext(ctx).Table("proposals").Where("id = ?", id.String()).First(&pdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrProposalNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainProposal(&pdb)
}

// Delete so remove propostas pendentes; uma decisao concorrente vence a retirada.
func (r *ProposalRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table("proposals").
		Where("id = ? AND status = ?", id.String(), string(proposal.StatusPending)).
		Delete(&proposalDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return appErrors.ErrProposalAlreadyDecided
	}
	return nil
}

func (r *ProposalRepository) ListByAuthor(ctx context.Context, authorID ulid.ULID, kind helprequest.Kind, pagination *pkg.PaginationParams) ([]*proposal.Proposal, int64, error) {
	query := filterKind(r.DB.WithContext(ctx).Table("proposals").Where("author_id = ?", authorID.String()), kind)

	out, total, err := pkg.Paginate(query, pagination, "created_at DESC, id DESC", toDomainProposal)
	if err != nil {
		return nil, 0, wrapDatabaseError(err)
	}
	return out, total, nil
}

func (r *ProposalRepository) ListByHelpRequestOwner(ctx context.Context, ownerID ulid.ULID, kind helprequest.Kind, pagination *pkg.PaginationParams) ([]*proposal.Proposal, int64, error) {
	owned := r.DB.WithContext(ctx).Table("help_requests").Select("id").Where("owner_id = ?", ownerID.String())
	query := filterKind(r.DB.WithContext(ctx).Table("proposals").Where("help_request_id IN (?)", owned), kind)

	out, total, err := pkg.Paginate(query, pagination, "created_at DESC, id DESC", toDomainProposal)
	if err != nil {
		return nil, 0, wrapDatabaseError(err)
	}
	return out, total, nil
}

func filterKind(query *gorm.DB, kind helprequest.Kind) *gorm.DB {
	if kind == "" {
		return query
	}
	return query.Where("kind = ?", string(kind))
}

// SumAccepted soma em decimal no Go: no SQLite a coluna numeric vira REAL e SUM devolveria float.
func (r *ProposalRepository) SumAccepted(ctx context.Context, helpRequestID ulid.ULID) (decimal.Decimal, error) {
	var amounts []decimal.NullDecimal
	err := r.DB.WithContext(ctx).Table("proposals").
		Where("help_request_id = ? AND status = ? AND kind = ?",
			helpRequestID.String(), string(proposal.StatusAccepted), string(helprequest.KindFinancial)).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, appErrors.NewDatabaseError(err)
	}

	total := decimal.Zero
	for _, amount := range amounts {
		if amount.Valid {
			total = total.Add(amount.Decimal.Round(2))
		}
	}
	return total, nil
}

func (r *ProposalRepository) UpdateStatus(ctx context.Context, id ulid.ULID, status proposal.Status, decidedAt time.Time) error {
	result := r.DB.WithContext(ctx).Table("proposals").Where("id = ?", id.String()).Updates(map[string]interface{}{
		"status":     string(status),
		"decided_at": decidedAt,
		"updated_at": decidedAt,
	})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepository) WithinTransaction(ctx context.Context, fn func(tx proposal.Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProposalRepository{DB: tx})
	})
}

// LockHelpRequest usa SELECT ... FOR UPDATE; o dialeto SQLite ignora a clausula.
func (r *ProposalRepository) LockHelpRequest(ctx context.Context, helpRequestID ulid.ULID) (*helprequest.HelpRequest, error) {
	return findHelpRequest(r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), helpRequestID)
}

func (r *ProposalRepository) UpdateHelpRequestStatus(ctx context.Context, helpRequestID ulid.ULID, status helprequest.Status) error {
	return updateHelpRequestStatus(r.DB.WithContext(ctx), helpRequestID, status)
}
