package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telops/backend/internal/domain/compliance"
	"github.com/telops/backend/internal/domain/shared"
)

func newTestFlag(t *testing.T, saleID, advisorID uuid.UUID, title string) *compliance.SaleFlag {
	t.Helper()
	flag, err := compliance.NewSaleFlag(saleID, advisorID, title, "Amount well above the advisor's recent average", compliance.SeverityHigh)
	require.NoError(t, err)
	flag.ClearDomainEvents()
	return flag
}

func TestFlagRepository_InsertDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFlagRepository(db)
	ctx := context.Background()

	saleID := uuid.New()
	advisorID := uuid.New()

	created, err := repo.Insert(ctx, newTestFlag(t, saleID, advisorID, "Amount spike"))
	require.NoError(t, err)
	assert.True(t, created)

	// Same advisor, sale and title: a repeated scan must not duplicate
	created, err = repo.Insert(ctx, newTestFlag(t, saleID, advisorID, "Amount spike"))
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.Count(ctx, compliance.FlagFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// A different title on the same sale is a distinct finding
	created, err = repo.Insert(ctx, newTestFlag(t, saleID, advisorID, "Off-hours creation"))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestFlagRepository_FindBySaleID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFlagRepository(db)
	ctx := context.Background()

	saleID := uuid.New()
	advisorID := uuid.New()

	_, err := repo.Insert(ctx, newTestFlag(t, saleID, advisorID, "Amount spike"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newTestFlag(t, uuid.New(), advisorID, "Amount spike"))
	require.NoError(t, err)

	flags, err := repo.FindBySaleID(ctx, saleID)
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, saleID, flags[0].SaleID)
}

func TestFlagRepository_FilterByStatusAndAdvisor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFlagRepository(db)
	ctx := context.Background()

	advisorID := uuid.New()
	reviewerID := uuid.New()

	flag := newTestFlag(t, uuid.New(), advisorID, "Amount spike")
	_, err := repo.Insert(ctx, flag)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newTestFlag(t, uuid.New(), advisorID, "Rapid edits"))
	require.NoError(t, err)

	require.NoError(t, flag.Review(reviewerID))
	flag.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, flag))

	filter := compliance.FlagFilter{
		Filter:    shared.DefaultFilter(),
		Status:    compliance.FlagStatusOpen,
		AdvisorID: &advisorID,
	}
	flags, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "Rapid edits", flags[0].Title)
}

func TestFlagRepository_ReviewPersists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFlagRepository(db)
	ctx := context.Background()

	flag := newTestFlag(t, uuid.New(), uuid.New(), "Amount spike")
	_, err := repo.Insert(ctx, flag)
	require.NoError(t, err)

	reviewerID := uuid.New()
	require.NoError(t, flag.Review(reviewerID))
	flag.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, flag))

	found, err := repo.FindByID(ctx, flag.ID)
	require.NoError(t, err)
	assert.Equal(t, compliance.FlagStatusReviewed, found.Status)
	require.NotNil(t, found.ReviewedBy)
	assert.Equal(t, reviewerID, *found.ReviewedBy)
	assert.NotNil(t, found.ReviewedAt)
}
