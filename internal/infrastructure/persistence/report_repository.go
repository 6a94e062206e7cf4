package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telops/backend/internal/domain/reporting"
	"github.com/telops/backend/internal/domain/shared"
)

// GormReportRepository implements reporting.ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// FindByID finds a report by its ID
func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.Report, error) {
	var report reporting.Report
	if err := r.db.WithContext(ctx).
		First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// FindAll finds reports with filtering and pagination
func (r *GormReportRepository) FindAll(ctx context.Context, filter reporting.ReportFilter) ([]*reporting.Report, error) {
	var reports []*reporting.Report
	query := r.applyFilter(r.db.WithContext(ctx).Model(&reporting.Report{}), filter)

	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// Count counts reports matching the filter
func (r *GormReportRepository) Count(ctx context.Context, filter reporting.ReportFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&reporting.Report{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a report
func (r *GormReportRepository) Save(ctx context.Context, report *reporting.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// Delete removes a report
func (r *GormReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&reporting.Report{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormReportRepository) applyFilter(query *gorm.DB, filter reporting.ReportFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ReportSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormReportRepository) applyFilterWithoutPagination(query *gorm.DB, filter reporting.ReportFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("title ILIKE ?", searchPattern)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	return query
}

var _ reporting.ReportRepository = (*GormReportRepository)(nil)
