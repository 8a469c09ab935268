package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// ProjectAuthorizer resolves a caller's role in a project and rejects
// callers whose role does not allow the requested kind of action.
//
// Services call the authorizer before touching any resource. Each Require*
// method returns the resolved role so the caller can apply finer rules, or
// a domain.ForbiddenError.
type ProjectAuthorizer interface {
	// RoleInProject returns the caller's role; RoleNone when not a member
	RoleInProject(ctx context.Context, userID, projectID string) (scrum.Role, error)

	RequireViewer(ctx context.Context, userID, projectID string) (scrum.Role, error)
	RequireTeamMember(ctx context.Context, userID, projectID string) (scrum.Role, error)
	RequireScrumMasterOrOwner(ctx context.Context, userID, projectID string) (scrum.Role, error)
	RequireOwner(ctx context.Context, userID, projectID string) (scrum.Role, error)
}
