package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telops/backend/internal/domain/partner"
	"github.com/telops/backend/internal/domain/shared"
)

func newTestClient(t *testing.T, code, name string) *partner.Client {
	t.Helper()
	client, err := partner.NewClient(code, name, partner.CategoryResidential)
	require.NoError(t, err)
	client.ClearDomainEvents()
	return client
}

func TestClientRepository_SaveAndFindByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	client := newTestClient(t, "CLI-000001", "Aminata Diallo")
	require.NoError(t, repo.Save(ctx, client))

	found, err := repo.FindByCode(ctx, "CLI-000001")
	require.NoError(t, err)
	assert.Equal(t, client.ID, found.ID)
	assert.Equal(t, "Aminata Diallo", found.Name)
}

func TestClientRepository_SaveDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestClient(t, "CLI-000002", "Moussa Kane")))

	err := repo.Save(ctx, newTestClient(t, "CLI-000002", "Awa Ba"))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
}

func TestClientRepository_GenerateCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	code, err := repo.GenerateCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CLI-000001", code)

	require.NoError(t, repo.Save(ctx, newTestClient(t, "CLI-000041", "Ibrahima Sow")))

	code, err = repo.GenerateCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CLI-000042", code)
}

func TestClientRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	client := newTestClient(t, "CLI-000050", "Fatou Ndiaye")
	require.NoError(t, repo.Save(ctx, client))
	require.NoError(t, repo.Delete(ctx, client.ID))

	_, err := repo.FindByID(ctx, client.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
