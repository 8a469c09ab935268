package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// MembershipRepository defines data access operations for project memberships
type MembershipRepository interface {
	// GetRole returns the user's role in the project.
	// A missing membership is not an error: it yields scrum.RoleNone.
	GetRole(ctx context.Context, userID, projectID string) (scrum.Role, error)

	// ScrumMasterExists reports whether any member of the project holds ScrumMaster
	ScrumMasterExists(ctx context.Context, projectID string) (bool, error)

	// ListByProject returns members joined with user display data
	ListByProject(ctx context.Context, projectID string) ([]scrum.Member, error)

	// CountByUser returns how many projects the user is a member of
	CountByUser(ctx context.Context, userID string) (int, error)

	Create(ctx context.Context, membership *scrum.ProjectMembership) error
	UpdateRole(ctx context.Context, userID, projectID string, role scrum.Role) error
	Delete(ctx context.Context, userID, projectID string) error
}
