package auth

import (
	"context"
	"fmt"
	"log/slog"

	"scrumboard/internal/domain"
	"scrumboard/internal/domain/models/scrum"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"
)

// RoleBasedAuthorizer implements ProjectAuthorizer using the caller's
// membership role in the project.
type RoleBasedAuthorizer struct {
	memberRepo scrumRepo.MembershipRepository
	logger     *slog.Logger
}

// NewRoleBasedAuthorizer creates a new role-based authorizer
func NewRoleBasedAuthorizer(memberRepo scrumRepo.MembershipRepository, logger *slog.Logger) scrumSvc.ProjectAuthorizer {
	return &RoleBasedAuthorizer{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// RoleInProject returns the caller's role, RoleNone when there is no membership row
func (a *RoleBasedAuthorizer) RoleInProject(ctx context.Context, userID, projectID string) (scrum.Role, error) {
	role, err := a.memberRepo.GetRole(ctx, userID, projectID)
	if err != nil {
		return scrum.RoleNone, fmt.Errorf("get role for auth: %w", err)
	}
	return role, nil
}

// RequireViewer admits any member of the project
func (a *RoleBasedAuthorizer) RequireViewer(ctx context.Context, userID, projectID string) (scrum.Role, error) {
	return a.require(ctx, userID, projectID, CanViewProject, "you are not a member of this project")
}

// RequireTeamMember admits Developers, ScrumMasters and the Owner
func (a *RoleBasedAuthorizer) RequireTeamMember(ctx context.Context, userID, projectID string) (scrum.Role, error) {
	return a.require(ctx, userID, projectID, IsPartOfTeam, "only team members can do this")
}

// RequireScrumMasterOrOwner admits the ScrumMaster and the Owner
func (a *RoleBasedAuthorizer) RequireScrumMasterOrOwner(ctx context.Context, userID, projectID string) (scrum.Role, error) {
	return a.require(ctx, userID, projectID, IsScrumMasterOrOwner, "only the scrum master or the owner can do this")
}

// RequireOwner admits only the project Owner
func (a *RoleBasedAuthorizer) RequireOwner(ctx context.Context, userID, projectID string) (scrum.Role, error) {
	return a.require(ctx, userID, projectID, CanManageProject, "only the project owner can do this")
}

func (a *RoleBasedAuthorizer) require(
	ctx context.Context,
	userID, projectID string,
	allowed func(scrum.Role) bool,
	message string,
) (scrum.Role, error) {
	role, err := a.RoleInProject(ctx, userID, projectID)
	if err != nil {
		return scrum.RoleNone, err
	}
	if !allowed(role) {
		a.logger.Debug("access denied",
			"user_id", userID,
			"project_id", projectID,
			"role", role.String(),
		)
		return role, domain.NewForbidden(message)
	}
	return role, nil
}
