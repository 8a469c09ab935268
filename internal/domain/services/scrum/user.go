package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// UserService manages the board's mirror of identity-provider users
type UserService interface {
	// EnsureUser records the authenticated caller on first sight
	EnsureUser(ctx context.Context, user *scrum.User) error

	GetUser(ctx context.Context, id string) (*scrum.User, error)

	// DeleteSelf removes the caller; refused while any membership remains
	DeleteSelf(ctx context.Context, callerID string) error
}
