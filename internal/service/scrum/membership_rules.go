package scrum

import (
	"fmt"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	"scrumboard/internal/service/auth"
)

// CheckAddMember validates adding a user with the requested role.
// targetRole is the user's current role in the project (RoleNone if absent).
func CheckAddMember(callerRole models.Role, targetExists bool, targetRole, requested models.Role, scrumMasterExists bool) error {
	if !auth.CanAddMember(callerRole) {
		return domain.NewForbidden("only the project owner can add members")
	}
	if !targetExists {
		return domain.NewNotFound("user not found")
	}
	if targetRole != models.RoleNone {
		return domain.NewBadRequest("user is already a member of this project")
	}
	if !requested.Valid() || requested == models.RoleNone || requested == models.RoleOwner {
		return domain.NewBadRequest(fmt.Sprintf("cannot add a member with role %s", requested))
	}
	if requested == models.RoleScrumMaster && scrumMasterExists {
		return domain.NewBadRequest("this project already has a scrum master")
	}
	return nil
}

// CheckChangeRole validates moving a member from targetRole to requested.
func CheckChangeRole(actorRole, targetRole, requested models.Role, scrumMasterExists bool) error {
	if !auth.IsScrumMasterOrOwner(actorRole) {
		return domain.NewForbidden("only the scrum master or the owner can change roles")
	}
	if targetRole == models.RoleNone {
		return domain.NewNotFound("user is not a member of this project")
	}
	if !requested.Valid() {
		return domain.NewBadRequest("unknown role")
	}
	if requested == targetRole {
		return domain.NewBadRequest(fmt.Sprintf("member already has role %s", requested))
	}
	if !auth.CanChangeRoleOfMember(actorRole, targetRole, requested) {
		return domain.NewForbidden(fmt.Sprintf("%s cannot change role %s to %s", actorRole, targetRole, requested))
	}
	if requested == models.RoleScrumMaster && scrumMasterExists {
		return domain.NewBadRequest("this project already has a scrum master")
	}
	return nil
}

// CheckRemoveMember validates removing a member. For a self-removal
// callerRole and targetRole are the same role.
func CheckRemoveMember(callerRole, targetRole models.Role, isSelf bool) error {
	if isSelf {
		if targetRole == models.RoleNone {
			return domain.NewNotFound("you are not a member of this project")
		}
		if !auth.CanRemoveSelf(callerRole) {
			return domain.NewForbidden("the owner cannot leave the project")
		}
		return nil
	}

	if !auth.CanRemoveOtherMember(callerRole) {
		return domain.NewForbidden("only the project owner can remove other members")
	}
	if targetRole == models.RoleNone {
		return domain.NewNotFound("user is not a member of this project")
	}
	return nil
}
