package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// AddMemberRequest represents a request to add a user to a project
type AddMemberRequest struct {
	UserID string     `json:"user_id"`
	Role   scrum.Role `json:"role"`
}

// ChangeRoleRequest represents a request to change a member's role
type ChangeRoleRequest struct {
	Role scrum.Role `json:"role"`
}

// MemberService defines business logic operations for project memberships
type MemberService interface {
	ListMembers(ctx context.Context, callerID, projectID string) ([]scrum.Member, error)
	AddMember(ctx context.Context, callerID, projectID string, req *AddMemberRequest) (*scrum.ProjectMembership, error)
	ChangeRole(ctx context.Context, callerID, projectID, userID string, req *ChangeRoleRequest) (*scrum.ProjectMembership, error)

	// RemoveMember removes userID from the project; callerID == userID is a self-removal
	RemoveMember(ctx context.Context, callerID, projectID, userID string) error
}
