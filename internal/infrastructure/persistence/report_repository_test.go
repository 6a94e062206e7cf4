package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telops/backend/internal/domain/reporting"
	"github.com/telops/backend/internal/domain/shared"
)

func newTestReport(t *testing.T, title string, authorID uuid.UUID) *reporting.Report {
	t.Helper()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	report, err := reporting.NewReport(title, "Weekly activity summary for the agency.", authorID, start, end)
	require.NoError(t, err)
	report.ClearDomainEvents()
	return report
}

func TestReportRepository_SaveAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	authorID := uuid.New()
	report := newTestReport(t, "August activity", authorID)
	require.NoError(t, repo.Save(ctx, report))

	found, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "August activity", found.Title)
	assert.Equal(t, authorID, found.AuthorID)
	assert.True(t, found.PeriodEnd.After(found.PeriodStart))
}

func TestReportRepository_FilterByAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	authorID := uuid.New()
	otherID := uuid.New()
	require.NoError(t, repo.Save(ctx, newTestReport(t, "Mine", authorID)))
	require.NoError(t, repo.Save(ctx, newTestReport(t, "Theirs", otherID)))

	filter := reporting.ReportFilter{Filter: shared.DefaultFilter(), AuthorID: &authorID}
	reports, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Mine", reports[0].Title)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReportRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	report := newTestReport(t, "To remove", uuid.New())
	require.NoError(t, repo.Save(ctx, report))

	require.NoError(t, repo.Delete(ctx, report.ID))

	_, err := repo.FindByID(ctx, report.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, report.ID), shared.ErrNotFound)
}
