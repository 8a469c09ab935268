package auth

import "scrumboard/internal/domain/models/scrum"

// Pure capability predicates over project roles. Callers pass roles they
// have already fetched; nothing here performs I/O.

// IsPartOfTeam reports whether the role does work on the board
// (Developer, ScrumMaster, Owner).
func IsPartOfTeam(role scrum.Role) bool {
	switch role {
	case scrum.RoleDeveloper, scrum.RoleScrumMaster, scrum.RoleOwner:
		return true
	}
	return false
}

func IsScrumMasterOrOwner(role scrum.Role) bool {
	return role == scrum.RoleScrumMaster || role == scrum.RoleOwner
}

// CanViewMemberList is true for every member, Observers included.
func CanViewMemberList(role scrum.Role) bool {
	return role != scrum.RoleNone && role.Valid()
}

// CanViewProject gates read access to sprints, items, comments and relations.
func CanViewProject(role scrum.Role) bool {
	return CanViewMemberList(role)
}

func CanAddMember(role scrum.Role) bool {
	return role == scrum.RoleOwner
}

// CanChangeRoleOfMember decides whether actor may move a member from current
// to next. Transitions into or out of None and Owner never go through this
// path, and a no-op change is refused. A ScrumMaster may re-role anyone
// below it but cannot grant or revoke ScrumMaster; an Owner can. The
// single-ScrumMaster rule is checked separately because it needs project state.
func CanChangeRoleOfMember(actor, current, next scrum.Role) bool {
	if current == scrum.RoleNone || current == scrum.RoleOwner ||
		next == scrum.RoleNone || next == scrum.RoleOwner {
		return false
	}
	if !current.Valid() || !next.Valid() || current == next {
		return false
	}

	switch actor {
	case scrum.RoleOwner:
		return true
	case scrum.RoleScrumMaster:
		return current != scrum.RoleScrumMaster && next != scrum.RoleScrumMaster
	default:
		return false
	}
}

func CanRemoveOtherMember(role scrum.Role) bool {
	return role == scrum.RoleOwner
}

// CanRemoveSelf is false only for the Owner, who can never leave a project.
func CanRemoveSelf(role scrum.Role) bool {
	return role != scrum.RoleOwner
}

// CanManageSprints gates sprint create, update and delete.
func CanManageSprints(role scrum.Role) bool {
	return IsScrumMasterOrOwner(role)
}

// CanDeleteOrArchiveItem gates item archive and hard delete.
func CanDeleteOrArchiveItem(role scrum.Role) bool {
	return IsScrumMasterOrOwner(role)
}

// CanManageProject gates renaming and deleting the project itself.
func CanManageProject(role scrum.Role) bool {
	return role == scrum.RoleOwner
}

// CanEditAssignment reports whether a Developer-level caller may move an
// item from assignee prev to next. ScrumMaster and Owner assign freely.
func CanEditAssignment(role scrum.Role, callerID string, prev, next *string) bool {
	if IsScrumMasterOrOwner(role) {
		return true
	}
	if !IsPartOfTeam(role) {
		return false
	}
	if prev == nil {
		// claiming an unassigned item, or leaving it unassigned
		return next == nil || *next == callerID
	}
	return *prev == callerID
}
