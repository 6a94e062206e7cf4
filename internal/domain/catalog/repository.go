package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/shared"
)

// ArticleRepository defines persistence operations for articles
type ArticleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Article, error)
	// FindByIDForUpdate loads the article with a row-level lock when called
	// inside a transaction. The lifecycle engine uses it for atomic
	// check-and-decrement of tracked stock.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Article, error)
	FindByCode(ctx context.Context, code string) (*Article, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Article, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, article *Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}
