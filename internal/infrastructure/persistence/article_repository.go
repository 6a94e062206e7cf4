package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/telops/backend/internal/domain/catalog"
	"github.com/telops/backend/internal/domain/shared"
)

// GormArticleRepository implements catalog.ArticleRepository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// WithTx returns a repository view bound to the given transaction
func (r *GormArticleRepository) WithTx(tx *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: tx}
}

// FindByID finds an article by its ID
func (r *GormArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Article, error) {
	var article catalog.Article
	if err := r.db.WithContext(ctx).
		First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindByIDForUpdate loads the article under a row-level lock. Only
// meaningful when the repository is bound to a transaction.
func (r *GormArticleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Article, error) {
	var article catalog.Article
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindByCode finds an article by its catalog code
func (r *GormArticleRepository) FindByCode(ctx context.Context, code string) (*catalog.Article, error) {
	var article catalog.Article
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindAll finds articles with filtering and pagination
func (r *GormArticleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Article, error) {
	var articles []catalog.Article
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Article{}), filter)

	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Count counts articles matching the filter
func (r *GormArticleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Article{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an article
func (r *GormArticleRepository) Save(ctx context.Context, article *catalog.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeAlreadyExists, "An article with this code already exists")
		}
		return err
	}
	return nil
}

// Delete removes an article
func (r *GormArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormArticleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ArticleSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormArticleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		case "tracked":
			if tracked, ok := value.(bool); ok {
				if tracked {
					query = query.Where("stock IS NOT NULL")
				} else {
					query = query.Where("stock IS NULL")
				}
			}
		}
	}

	return query
}

var _ catalog.ArticleRepository = (*GormArticleRepository)(nil)
