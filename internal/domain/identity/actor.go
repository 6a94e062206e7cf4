package identity

import "github.com/google/uuid"

// Actor is the authenticated principal attached to a request after the
// auth middleware has verified the token. Lifecycle operations receive an
// Actor, never a raw role string.
type Actor struct {
	ID       uuid.UUID
	Username string
	Role     Role
}

// IsZero reports whether the actor is unauthenticated
func (a Actor) IsZero() bool {
	return a.ID == uuid.Nil
}
