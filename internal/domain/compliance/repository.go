package compliance

import (
	"context"

	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/shared"
)

// FlagFilter carries pagination and status filtering for flag listings
type FlagFilter struct {
	shared.Filter
	Status    FlagStatus
	Severity  FlagSeverity
	AdvisorID *uuid.UUID
}

// FlagRepository persists advisory flags. Insert relies on the
// (advisor, sale, title) unique index so concurrent or repeated scans
// stay idempotent.
type FlagRepository interface {
	// Insert stores a flag and reports whether a new row was created.
	// A duplicate of an existing flag is silently skipped and returns false.
	Insert(ctx context.Context, flag *SaleFlag) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*SaleFlag, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]*SaleFlag, error)
	FindAll(ctx context.Context, filter FlagFilter) ([]*SaleFlag, error)
	Count(ctx context.Context, filter FlagFilter) (int64, error)
	Save(ctx context.Context, flag *SaleFlag) error
	Delete(ctx context.Context, id uuid.UUID) error
}
