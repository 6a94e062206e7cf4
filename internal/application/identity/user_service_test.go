package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telops/backend/internal/domain/identity"
	"github.com/telops/backend/internal/domain/shared"
)

func TestUserServiceCreate(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())

	userRepo.On("FindByUsername", mock.Anything, "ibrahima.sow").Return(nil, shared.ErrNotFound)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	response, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "ibrahima.sow",
		Password: "Str0ngPass!",
		FullName: "Ibrahima Sow",
		Role:     "ADVISOR",
	})

	require.NoError(t, err)
	assert.Equal(t, "ibrahima.sow", response.Username)
	assert.Equal(t, "ADVISOR", response.Role)
	assert.Equal(t, "active", response.Status)
	userRepo.AssertExpectations(t)
}

func TestUserServiceCreate_DuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	existing := newActiveUser(t, identity.RoleAgent)

	userRepo.On("FindByUsername", mock.Anything, "fatou.ndiaye").Return(existing, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "fatou.ndiaye",
		Password: "Str0ngPass!",
		Role:     "AGENT",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserServiceUpdate_ChangesRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	user := newActiveUser(t, identity.RoleAgent)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	newRole := "CONTROLLER"
	response, err := svc.Update(context.Background(), user.ID, UpdateUserRequest{Role: &newRole})

	require.NoError(t, err)
	assert.Equal(t, "CONTROLLER", response.Role)
}

func TestUserServiceDeactivateAndActivate(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	user := newActiveUser(t, identity.RoleAdvisor)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	deactivated, err := svc.Deactivate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "deactivated", deactivated.Status)

	activated, err := svc.Activate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", activated.Status)
}

func TestUserServiceResetPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, zap.NewNop())
	user := newActiveUser(t, identity.RoleAgent)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	err := svc.ResetPassword(context.Background(), user.ID, ResetPasswordRequest{NewPassword: "Fresh-Passw0rd"})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("Fresh-Passw0rd"))
}
