package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telops/backend/internal/domain/sales"
	"github.com/telops/backend/internal/domain/shared"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormSaleRepository) WithTx(tx *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: tx}
}

// FindByID finds a sale by its ID, items included
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByReference finds a sale by its business reference
func (r *GormSaleRepository) FindByReference(ctx context.Context, reference string) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("reference = ?", reference).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds sales with filtering and pagination
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	var result []sales.Sale
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sales.Sale{}), filter)

	if err := query.Preload("Items").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindByAdvisorSince returns the sales created by an advisor from the given
// instant onward, ordered by creation time
func (r *GormSaleRepository) FindByAdvisorSince(ctx context.Context, advisorID uuid.UUID, since time.Time) ([]sales.Sale, error) {
	var result []sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("created_by = ? AND created_at >= ?", advisorID, since).
		Order("created_at ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&sales.Sale{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts sales in the given status
func (r *GormSaleRepository) CountByStatus(ctx context.Context, status sales.SaleStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a sale together with its line items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(sale).Error; err != nil {
			return err
		}
		return r.syncItems(tx, sale)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrReferenceConflict
		}
		return err
	}
	return nil
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&sales.Sale{}).
			Where("id = ?", sale.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != sale.Version {
			return shared.NewDomainError(shared.CodeConcurrencyConflict, "The sale has been modified by another user")
		}

		sale.Version++
		sale.UpdatedAt = time.Now()

		result := tx.Model(&sales.Sale{}).
			Where("id = ? AND version = ?", sale.ID, currentVersion).
			Updates(map[string]interface{}{
				"client_id":     sale.ClientID,
				"client_name":   sale.ClientName,
				"total_amount":  sale.TotalAmount,
				"status":        sale.Status,
				"validated_by":  sale.ValidatedBy,
				"validated_at":  sale.ValidatedAt,
				"completed_at":  sale.CompletedAt,
				"cancelled_at":  sale.CancelledAt,
				"cancel_reason": sale.CancelReason,
				"version":       sale.Version,
				"updated_at":    sale.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError(shared.CodeConcurrencyConflict, "The sale has been modified by another user")
		}

		return r.syncItems(tx, sale)
	})
}

// syncItems reconciles the stored line items with the aggregate's current
// item list: removed items are deleted, the rest upserted.
func (r *GormSaleRepository) syncItems(tx *gorm.DB, sale *sales.Sale) error {
	if sale.ID == uuid.Nil {
		return nil
	}

	currentItemIDs := make([]uuid.UUID, len(sale.Items))
	for i, item := range sale.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("sale_id = ? AND id NOT IN ?", sale.ID, currentItemIDs).
			Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("sale_id = ?", sale.ID).
			Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
	}

	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
		if err := tx.Save(&sale.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a sale; line items cascade
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&sales.Sale{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextReference proposes the next free reference for the given year.
// Format: SAL-YYYY-NNNNN, sequence reset each year. Concurrent creators may
// race; the unique index on reference is the real arbiter.
func (r *GormSaleRepository) NextReference(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("SAL-%d-", year)

	var lastSale sales.Sale
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("reference LIKE ?", prefix+"%").
		Order("reference DESC").
		First(&lastSale).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastSale.Reference != "" {
		seq := strings.TrimPrefix(lastSale.Reference, prefix)
		var num int64
		if _, parseErr := fmt.Sscanf(seq, "%d", &num); parseErr == nil {
			nextNum = num + 1
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("reference ILIKE ? OR client_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "advisor_id":
			query = query.Where("created_by = ?", value)
		case "created_after":
			query = query.Where("created_at >= ?", value)
		case "created_before":
			query = query.Where("created_at <= ?", value)
		}
	}

	return query
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
