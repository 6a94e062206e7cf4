package reporting

import (
	"context"

	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/shared"
)

// ReportFilter carries pagination and filtering for report listings
type ReportFilter struct {
	shared.Filter
	AuthorID *uuid.UUID
}

// ReportRepository defines persistence for activity reports
type ReportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Report, error)
	FindAll(ctx context.Context, filter ReportFilter) ([]*Report, error)
	Count(ctx context.Context, filter ReportFilter) (int64, error)
	Save(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id uuid.UUID) error
}
