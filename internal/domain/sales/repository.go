package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/catalog"
	"github.com/telops/backend/internal/domain/shared"
)

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByReference(ctx context.Context, reference string) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	// FindByAdvisorSince returns the sales created by an advisor from the
	// given instant onward, ordered by creation time. Used by the anomaly scan.
	FindByAdvisorSince(ctx context.Context, advisorID uuid.UUID, since time.Time) ([]Sale, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status SaleStatus) (int64, error)
	Save(ctx context.Context, sale *Sale) error
	// SaveWithLock saves under optimistic locking (version check)
	SaveWithLock(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	// NextReference proposes the next free reference for the given year
	// (SAL-YYYY-NNNNN, sequence reset each year). Uniqueness is only
	// guaranteed by the database constraint; concurrent creators may race
	// and must retry on ErrReferenceConflict.
	NextReference(ctx context.Context, year int) (string, error)
}

// UnitOfWorkRepos groups the repository views bound to one transaction
type UnitOfWorkRepos struct {
	Sales    SaleRepository
	Articles catalog.ArticleRepository
}

// UnitOfWork executes a function atomically against the shared store.
// Stock decrement, item insertion and total recompute run inside one
// transaction so a failure leaves no partial side effects.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos UnitOfWorkRepos) error) error
}
