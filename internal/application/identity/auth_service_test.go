package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telops/backend/internal/domain/identity"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/infrastructure/auth"
	"github.com/telops/backend/internal/infrastructure/config"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestAuthService(userRepo identity.UserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "unit-test-secret-key-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "telops-backend",
		MaxRefreshCount:        10,
	})
	return NewAuthService(
		userRepo,
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
}

func newActiveUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("fatou.ndiaye", "Str0ngPass!", role)
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)
	user := newActiveUser(t, identity.RoleController)

	userRepo.On("FindByUsername", mock.Anything, "fatou.ndiaye").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{
		Username: "fatou.ndiaye",
		Password: "Str0ngPass!",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, identity.RoleController, result.User.Role)
	assert.NotNil(t, user.LastLoginAt)
	userRepo.AssertExpectations(t)
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever1"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLogin_WrongPasswordIncrementsFailures(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)
	user := newActiveUser(t, identity.RoleAgent)

	userRepo.On("FindByUsername", mock.Anything, "fatou.ndiaye").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	_, err := svc.Login(context.Background(), LoginInput{
		Username: "fatou.ndiaye",
		Password: "wrong-password",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
	userRepo.AssertExpectations(t)
}

func TestLogin_LocksAfterMaxAttempts(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)
	user := newActiveUser(t, identity.RoleAgent)

	userRepo.On("FindByUsername", mock.Anything, "fatou.ndiaye").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	var lastErr error
	for i := 0; i < 5; i++ {
		_, lastErr = svc.Login(context.Background(), LoginInput{
			Username: "fatou.ndiaye",
			Password: "wrong-password",
		})
	}

	var domainErr *shared.DomainError
	require.ErrorAs(t, lastErr, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
	assert.True(t, user.IsLocked())
}

func TestLogin_LockedAccountRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)
	user := newActiveUser(t, identity.RoleAgent)
	require.NoError(t, user.Lock(time.Hour))

	userRepo.On("FindByUsername", mock.Anything, "fatou.ndiaye").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginInput{
		Username: "fatou.ndiaye",
		Password: "Str0ngPass!",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestLogin_DeactivatedAccountRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)
	user := newActiveUser(t, identity.RoleAdvisor)
	require.NoError(t, user.Deactivate())

	userRepo.On("FindByUsername", mock.Anything, "fatou.ndiaye").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginInput{
		Username: "fatou.ndiaye",
		Password: "Str0ngPass!",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestRefreshToken_CarriesCurrentRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)
	user := newActiveUser(t, identity.RoleAgent)

	userRepo.On("FindByUsername", mock.Anything, "fatou.ndiaye").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	login, err := svc.Login(context.Background(), LoginInput{
		Username: "fatou.ndiaye",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)

	// Role changes between login and refresh must show up in the new token
	require.NoError(t, user.ChangeRole(identity.RoleController))

	refreshed, err := svc.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)

	claims, err := svc.jwtService.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleController, claims.GetRole())
}

func TestRefreshToken_RejectsDeactivatedUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)
	user := newActiveUser(t, identity.RoleAgent)

	userRepo.On("FindByUsername", mock.Anything, "fatou.ndiaye").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	login, err := svc.Login(context.Background(), LoginInput{
		Username: "fatou.ndiaye",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())

	_, err = svc.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
}

func TestRefreshToken_RejectsGarbage(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	_, err := svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: "garbage"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestLogout_BlacklistsAccessToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)
	user := newActiveUser(t, identity.RoleAgent)

	userRepo.On("FindByUsername", mock.Anything, "fatou.ndiaye").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	login, err := svc.Login(context.Background(), LoginInput{
		Username: "fatou.ndiaye",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), LogoutInput{AccessToken: login.AccessToken}))

	claims, err := svc.jwtService.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)
	blacklisted, err := svc.blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestChangePassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)
	user := newActiveUser(t, identity.RoleAgent)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "Str0ngPass!",
		NewPassword: "EvenStr0nger!",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("EvenStr0nger!"))
}
