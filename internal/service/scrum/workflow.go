package scrum

import (
	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	"scrumboard/internal/service/auth"
)

// Item workflow: an item is either (New, unassigned) or (not New, assigned).
// Create rejects anything else outright; update authorizes the change, then
// repairs the status/assignee pair, rejecting only the case where an
// unassigned New item is pushed forward.

// CheckItemCreate validates a new item for a caller holding role.
// Nothing is repaired on create.
func CheckItemCreate(callerID string, role models.Role, item *models.Item) error {
	if !auth.IsPartOfTeam(role) {
		return domain.NewForbidden("only team members can create items")
	}
	if item.Type.IsStory() && !auth.IsScrumMasterOrOwner(role) {
		return domain.NewForbidden("only the scrum master or the owner can create user stories")
	}
	if item.AssignedUserID != nil && *item.AssignedUserID != callerID && !auth.IsScrumMasterOrOwner(role) {
		return domain.NewForbidden("developers can only create items assigned to themselves")
	}

	if item.Status.IsNew() && item.AssignedUserID != nil {
		return domain.NewBadRequest("a new item cannot be pre-assigned")
	}
	if !item.Status.IsNew() && item.AssignedUserID == nil {
		return domain.NewBadRequest("an item that is not new must be assigned")
	}
	return nil
}

// ApplyItemUpdate authorizes the transition from existing to proposed and
// returns the repaired item to persist. proposed is not modified.
func ApplyItemUpdate(callerID string, role models.Role, existing, proposed *models.Item) (*models.Item, error) {
	if !auth.IsPartOfTeam(role) {
		return nil, domain.NewForbidden("only team members can edit items")
	}
	if proposed.Type != existing.Type {
		return nil, domain.NewBadRequest("the type of an item cannot be changed")
	}

	out := proposed.Clone()

	if !auth.IsScrumMasterOrOwner(role) {
		if existing.AssignedUserID != nil && !existing.IsAssignedTo(callerID) {
			return nil, domain.NewForbidden("developers can only edit items that are unassigned or assigned to themselves")
		}
		if !models.SameID(existing.AssignedUserID, out.AssignedUserID) &&
			!auth.CanEditAssignment(role, callerID, existing.AssignedUserID, out.AssignedUserID) {
			return nil, domain.NewForbidden("developers can only assign items to themselves")
		}
		if existing.Status.IsNew() && !out.Status.IsNew() &&
			out.AssignedUserID != nil && *out.AssignedUserID != callerID {
			return nil, domain.NewForbidden("developers can only start items assigned to themselves")
		}
	}

	if existing.Status.IsNew() && out.AssignedUserID == nil && !out.Status.IsNew() {
		return nil, domain.NewBadRequest("item must have an assigned user to become active")
	}
	if !existing.Status.IsNew() && out.AssignedUserID == nil {
		out.Status = models.ItemStatusNew
	}
	if !existing.Status.IsNew() && out.Status.IsNew() {
		out.AssignedUserID = nil
	}
	if existing.Status.IsNew() && out.AssignedUserID != nil {
		out.Status = models.ItemStatusActive
	}

	return out, nil
}

// CheckPlacement validates parent as the new parent of item. item.ID is
// empty when the item is being created.
func CheckPlacement(item, parent *models.Item) error {
	if item.ID != "" && parent.ID == item.ID {
		return domain.NewBadRequest("an item cannot be its own parent")
	}
	if parent.ProjectID != item.ProjectID {
		return domain.NewBadRequest("the parent item belongs to another project")
	}
	if !item.Type.IsStory() && !parent.Type.IsStory() {
		return domain.NewBadRequest("only a user story can be the parent of a " + string(item.Type))
	}
	if parent.SprintID != item.SprintID && !item.Type.IsStory() {
		return domain.NewBadRequest("the parent of a " + string(item.Type) + " must be in the same sprint")
	}
	if item.ID != "" && parent.ParentID != nil && *parent.ParentID == item.ID {
		return domain.NewBadRequest("a child item cannot become its parent's parent")
	}
	return nil
}

// ArchiveItem flips the archived flag. When the item becomes archived its
// direct children are detached (not archived); the detached children are
// returned so the caller can persist them with the item.
func ArchiveItem(item *models.Item, children []models.Item) (*models.Item, []models.Item) {
	out := item.Clone()
	out.IsArchived = !item.IsArchived
	if !out.IsArchived {
		return out, nil
	}

	detached := make([]models.Item, 0, len(children))
	for i := range children {
		child := children[i].Clone()
		child.ParentID = nil
		detached = append(detached, *child)
	}
	return out, detached
}
