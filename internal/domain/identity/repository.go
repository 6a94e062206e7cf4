package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/shared"
)

// UserFilter carries pagination and filtering for user listings
type UserFilter struct {
	shared.Filter
	Role   Role
	Status UserStatus
}

// UserRepository defines persistence for user accounts
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
