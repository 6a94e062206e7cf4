package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/telops/backend/internal/domain/compliance"
	"github.com/telops/backend/internal/domain/shared"
)

// GormFlagRepository implements compliance.FlagRepository using GORM
type GormFlagRepository struct {
	db *gorm.DB
}

// NewGormFlagRepository creates a new GormFlagRepository
func NewGormFlagRepository(db *gorm.DB) *GormFlagRepository {
	return &GormFlagRepository{db: db}
}

// Insert stores a flag, skipping silently when the (advisor, sale, title)
// triple already exists. Returns true when a new row was created.
func (r *GormFlagRepository) Insert(ctx context.Context, flag *compliance.SaleFlag) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "advisor_id"},
				{Name: "sale_id"},
				{Name: "title"},
			},
			DoNothing: true,
		}).
		Create(flag)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByID finds a flag by its ID
func (r *GormFlagRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.SaleFlag, error) {
	var flag compliance.SaleFlag
	if err := r.db.WithContext(ctx).
		First(&flag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &flag, nil
}

// FindBySaleID returns all flags raised against a sale
func (r *GormFlagRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]*compliance.SaleFlag, error) {
	var flags []*compliance.SaleFlag
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at DESC").
		Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}

// FindAll finds flags with filtering and pagination
func (r *GormFlagRepository) FindAll(ctx context.Context, filter compliance.FlagFilter) ([]*compliance.SaleFlag, error) {
	var flags []*compliance.SaleFlag
	query := r.applyFilter(r.db.WithContext(ctx).Model(&compliance.SaleFlag{}), filter)

	if err := query.Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}

// Count counts flags matching the filter
func (r *GormFlagRepository) Count(ctx context.Context, filter compliance.FlagFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&compliance.SaleFlag{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save updates a flag (review and resolution transitions)
func (r *GormFlagRepository) Save(ctx context.Context, flag *compliance.SaleFlag) error {
	return r.db.WithContext(ctx).Save(flag).Error
}

// Delete removes a flag
func (r *GormFlagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&compliance.SaleFlag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormFlagRepository) applyFilter(query *gorm.DB, filter compliance.FlagFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, FlagSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormFlagRepository) applyFilterWithoutPagination(query *gorm.DB, filter compliance.FlagFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.AdvisorID != nil {
		query = query.Where("advisor_id = ?", *filter.AdvisorID)
	}
	return query
}

var _ compliance.FlagRepository = (*GormFlagRepository)(nil)
