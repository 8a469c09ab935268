package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Upsert inserts the user or refreshes email and display name
	Upsert(ctx context.Context, user *scrum.User) error

	// GetByID returns the user or an error wrapping domain.ErrNotFound
	GetByID(ctx context.Context, id string) (*scrum.User, error)

	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
