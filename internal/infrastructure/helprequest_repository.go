package infrastructure

import (
	"context"
	"errors"
	"time"

	"Fundbridge/internal/domain/helprequest"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type HelpRequestRepository struct {
	DB *gorm.DB
}

type helpRequestDB struct {
	Id              string          `gorm:"type:varchar(26);primaryKey"`
	OwnerId         string          `gorm:"type:varchar(26);index;not null"`
	Kind            string          `gorm:"type:varchar(20);not null;index:idx_help_requests_kind"`
	Title           string          `gorm:"type:varchar(150);not null"`
	Description     string          `gorm:"type:text"`
	RequestedAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Status          string          `gorm:"type:varchar(20);not null;index:idx_help_requests_status"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

func (helpRequestDB) TableName() string {
	return "help_requests"
}

func toDomainHelpRequest(hdb *helpRequestDB) (*helprequest.HelpRequest, error) {
	id, err := pkg.ParseULID(hdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	ownerID, err := pkg.ParseULID(hdb.OwnerId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &helprequest.HelpRequest{
		Id:              id,
		OwnerId:         ownerID,
		Kind:            helprequest.Kind(hdb.Kind),
		Title:           hdb.Title,
		Description:     hdb.Description,
		RequestedAmount: hdb.RequestedAmount,
		Status:          helprequest.Status(hdb.Status),
		CreatedAt:       hdb.CreatedAt,
		UpdatedAt:       hdb.UpdatedAt,
	}, nil
}

func toDBHelpRequest(h *helprequest.HelpRequest) *helpRequestDB {
	return &helpRequestDB{
		Id:              h.Id.String(),
		OwnerId:         h.OwnerId.String(),
		Kind:            string(h.Kind),
		Title:           h.Title,
		Description:     h.Description,
		RequestedAmount: h.RequestedAmount,
		Status:          string(h.Status),
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

func (r *HelpRequestRepository) Create(ctx context.Context, h *helprequest.HelpRequest) error {
	if err := r.DB.WithContext(ctx).Table("help_requests").Create(toDBHelpRequest(h)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *HelpRequestRepository) GetByID(ctx context.Context, id ulid.ULID) (*helprequest.HelpRequest, error) {
	return findHelpRequest(r.DB.WithContext(ctx), id)
}

func (r *HelpRequestRepository) List(ctx context.Context, filters *helprequest.Filters, pagination *pkg.PaginationParams) ([]*helprequest.HelpRequest, int64, error) {
	query := r.DB.WithContext(ctx).Table("help_requests")
	if filters != nil {
		if filters.Status != nil {
			query = query.Where("status = ?", string(*filters.Status))
		}
		if filters.Kind != nil {
			query = query.Where("kind = ?", string(*filters.Kind))
		}
	}

	out, total, err := pkg.Paginate(query, pagination, "created_at DESC, id DESC", toDomainHelpRequest)
	if err != nil {
		return nil, 0, wrapDatabaseError(err)
	}
	return out, total, nil
}

func (r *HelpRequestRepository) GetByOwnerID(ctx context.Context, ownerID ulid.ULID, pagination *pkg.PaginationParams) ([]*helprequest.HelpRequest, int64, error) {
	query := r.DB.WithContext(ctx).Table("help_requests").Where("owner_id = ?", ownerID.String())

	out, total, err := pkg.Paginate(query, pagination, "created_at DESC, id DESC", toDomainHelpRequest)
	if err != nil {
		return nil, 0, wrapDatabaseError(err)
	}
	return out, total, nil
}

func (r *HelpRequestRepository) UpdateStatus(ctx context.Context, id ulid.ULID, status helprequest.Status) error {
	return updateHelpRequestStatus(r.DB.WithContext(ctx), id, status)
}

func findHelpRequest(db *gorm.DB, id ulid.ULID) (*helprequest.HelpRequest, error) {
	var hdb helpRequestDB
	if err := db.Table("help_requests").Where("id = ?", id.String()).First(&hdb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrHelpRequestNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainHelpRequest(&hdb)
}

func updateHelpRequestStatus(db *gorm.DB, id ulid.ULID, status helprequest.Status) error {
	result := db.Table("help_requests").Where("id = ?", id.String()).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": pkg.SetTimestamps(),
	})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrHelpRequestNotFound
	}
	return nil
}

// wrapDatabaseError preserva AppErrors vindos dos conversores.
func wrapDatabaseError(err error) error {
	if appErrors.IsAppError(err) {
		return err
	}
	return appErrors.NewDatabaseError(err)
}
