package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telops/backend/internal/domain/identity"
	"github.com/telops/backend/internal/domain/shared"
)

func newStoredUser(t *testing.T, username string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, "Str0ngPass!", role)
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func TestUserRepository_FindByUsernameIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := newStoredUser(t, "fatou.ndiaye", identity.RoleAdvisor)
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByUsername(ctx, "  Fatou.Ndiaye ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, identity.RoleAdvisor, found.Role)

	_, err = repo.FindByUsername(ctx, "unknown")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUserRepository_SaveDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newStoredUser(t, "moussa.kane", identity.RoleAgent)))

	err := repo.Save(ctx, newStoredUser(t, "moussa.kane", identity.RoleAdvisor))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
}

func TestUserRepository_FilterByRoleAndStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newStoredUser(t, "admin.one", identity.RoleAdmin)))
	advisor := newStoredUser(t, "advisor.one", identity.RoleAdvisor)
	require.NoError(t, repo.Save(ctx, advisor))

	deactivated := newStoredUser(t, "advisor.two", identity.RoleAdvisor)
	require.NoError(t, deactivated.Deactivate())
	deactivated.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, deactivated))

	filter := identity.UserFilter{
		Filter: shared.DefaultFilter(),
		Role:   identity.RoleAdvisor,
		Status: identity.UserStatusActive,
	}
	users, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, advisor.ID, users[0].ID)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
