package scrum

import (
	"testing"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func baseItem() *models.Item {
	return &models.Item{
		ID:        "item-1",
		ProjectID: "project-1",
		SprintID:  "sprint-1",
		Type:      models.ItemTypeTask,
		Status:    models.ItemStatusNew,
		Title:     "Write the thing",
	}
}

func withState(item *models.Item, status models.ItemStatus, assignee *string) *models.Item {
	out := item.Clone()
	out.Status = status
	out.AssignedUserID = assignee
	return out
}

func TestCheckItemCreate(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		role    models.Role
		item    *models.Item
		wantErr error
	}{
		{
			name:   "developer creates unassigned task",
			caller: "dev1",
			role:   models.RoleDeveloper,
			item:   baseItem(),
		},
		{
			name:   "developer creates active task for self",
			caller: "dev1",
			role:   models.RoleDeveloper,
			item:   withState(baseItem(), models.ItemStatusActive, strPtr("dev1")),
		},
		{
			name:    "developer cannot assign to someone else",
			caller:  "dev1",
			role:    models.RoleDeveloper,
			item:    withState(baseItem(), models.ItemStatusActive, strPtr("dev2")),
			wantErr: domain.ErrForbidden,
		},
		{
			name:   "scrum master assigns anyone",
			caller: "sm",
			role:   models.RoleScrumMaster,
			item:   withState(baseItem(), models.ItemStatusReview, strPtr("dev2")),
		},
		{
			name:    "observer cannot create",
			caller:  "obs",
			role:    models.RoleObserver,
			item:    baseItem(),
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "non member cannot create",
			caller:  "stranger",
			role:    models.RoleNone,
			item:    baseItem(),
			wantErr: domain.ErrForbidden,
		},
		{
			name:   "developer cannot create a story",
			caller: "dev1",
			role:   models.RoleDeveloper,
			item: func() *models.Item {
				it := baseItem()
				it.Type = models.ItemTypeUserStory
				return it
			}(),
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "new item cannot be pre-assigned",
			caller:  "owner",
			role:    models.RoleOwner,
			item:    withState(baseItem(), models.ItemStatusNew, strPtr("dev1")),
			wantErr: domain.ErrValidation,
		},
		{
			name:    "started item must be assigned",
			caller:  "owner",
			role:    models.RoleOwner,
			item:    withState(baseItem(), models.ItemStatusDone, nil),
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.item.ID = ""
			err := CheckItemCreate(tt.caller, tt.role, tt.item)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyItemUpdate(t *testing.T) {
	tests := []struct {
		name         string
		caller       string
		role         models.Role
		existing     *models.Item
		proposed     func(*models.Item)
		wantErr      error
		wantStatus   models.ItemStatus
		wantAssignee *string
	}{
		{
			name:     "developer claiming a new item starts it",
			caller:   "dev1",
			role:     models.RoleDeveloper,
			existing: baseItem(),
			proposed: func(it *models.Item) {
				it.AssignedUserID = strPtr("dev1")
			},
			wantStatus:   models.ItemStatusActive,
			wantAssignee: strPtr("dev1"),
		},
		{
			name:     "unassigning an active item resets it to new",
			caller:   "owner",
			role:     models.RoleOwner,
			existing: withState(baseItem(), models.ItemStatusActive, strPtr("dev1")),
			proposed: func(it *models.Item) {
				it.AssignedUserID = nil
			},
			wantStatus: models.ItemStatusNew,
		},
		{
			name:     "moving a started item back to new clears the assignee",
			caller:   "sm",
			role:     models.RoleScrumMaster,
			existing: withState(baseItem(), models.ItemStatusReview, strPtr("dev1")),
			proposed: func(it *models.Item) {
				it.Status = models.ItemStatusNew
			},
			wantStatus: models.ItemStatusNew,
		},
		{
			name:     "starting an unassigned new item is rejected",
			caller:   "sm",
			role:     models.RoleScrumMaster,
			existing: baseItem(),
			proposed: func(it *models.Item) {
				it.Status = models.ItemStatusActive
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:     "assigning a new item forces active over another proposed status",
			caller:   "sm",
			role:     models.RoleScrumMaster,
			existing: baseItem(),
			proposed: func(it *models.Item) {
				it.Status = models.ItemStatusDone
				it.AssignedUserID = strPtr("dev2")
			},
			wantStatus:   models.ItemStatusActive,
			wantAssignee: strPtr("dev2"),
		},
		{
			name:     "status moves freely once started",
			caller:   "dev1",
			role:     models.RoleDeveloper,
			existing: withState(baseItem(), models.ItemStatusActive, strPtr("dev1")),
			proposed: func(it *models.Item) {
				it.Status = models.ItemStatusDone
			},
			wantStatus:   models.ItemStatusDone,
			wantAssignee: strPtr("dev1"),
		},
		{
			name:     "developer hands an own item to a teammate",
			caller:   "dev1",
			role:     models.RoleDeveloper,
			existing: withState(baseItem(), models.ItemStatusActive, strPtr("dev1")),
			proposed: func(it *models.Item) {
				it.AssignedUserID = strPtr("dev2")
			},
			wantStatus:   models.ItemStatusActive,
			wantAssignee: strPtr("dev2"),
		},
		{
			name:     "developer cannot edit an item assigned to someone else",
			caller:   "dev1",
			role:     models.RoleDeveloper,
			existing: withState(baseItem(), models.ItemStatusActive, strPtr("dev2")),
			proposed: func(it *models.Item) {
				it.ParentID = strPtr("story-1")
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name:     "developer cannot assign an unassigned item to someone else",
			caller:   "dev1",
			role:     models.RoleDeveloper,
			existing: baseItem(),
			proposed: func(it *models.Item) {
				it.AssignedUserID = strPtr("dev2")
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name:     "observer cannot edit",
			caller:   "obs",
			role:     models.RoleObserver,
			existing: baseItem(),
			proposed: func(it *models.Item) {
				it.Title = "renamed"
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name:     "type is immutable",
			caller:   "owner",
			role:     models.RoleOwner,
			existing: baseItem(),
			proposed: func(it *models.Item) {
				it.Type = models.ItemTypeBug
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposed := tt.existing.Clone()
			tt.proposed(proposed)
			snapshot := proposed.Clone()

			got, err := ApplyItemUpdate(tt.caller, tt.role, tt.existing, proposed)
			assert.Equal(t, snapshot, proposed, "proposed must not be modified")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantAssignee, got.AssignedUserID)
			assert.Equal(t, got.Status.IsNew(), got.AssignedUserID == nil, "status/assignee pair out of sync")
		})
	}
}

func TestCheckPlacement(t *testing.T) {
	story := &models.Item{ID: "story-1", ProjectID: "project-1", SprintID: "sprint-1", Type: models.ItemTypeUserStory}

	tests := []struct {
		name    string
		item    func() *models.Item
		parent  *models.Item
		wantErr bool
	}{
		{
			name:   "task under story in same sprint",
			item:   baseItem,
			parent: story,
		},
		{
			name: "new task under story",
			item: func() *models.Item {
				it := baseItem()
				it.ID = ""
				return it
			},
			parent: story,
		},
		{
			name: "item cannot parent itself",
			item: func() *models.Item {
				it := baseItem()
				it.Type = models.ItemTypeUserStory
				it.ID = "story-1"
				return it
			},
			parent:  story,
			wantErr: true,
		},
		{
			name: "parent in another project",
			item: baseItem,
			parent: &models.Item{
				ID: "story-2", ProjectID: "project-2", SprintID: "sprint-1", Type: models.ItemTypeUserStory,
			},
			wantErr: true,
		},
		{
			name: "task cannot parent task",
			item: baseItem,
			parent: &models.Item{
				ID: "task-2", ProjectID: "project-1", SprintID: "sprint-1", Type: models.ItemTypeTask,
			},
			wantErr: true,
		},
		{
			name: "task under story in another sprint",
			item: baseItem,
			parent: &models.Item{
				ID: "story-3", ProjectID: "project-1", SprintID: "sprint-2", Type: models.ItemTypeUserStory,
			},
			wantErr: true,
		},
		{
			name: "story under story in another sprint",
			item: func() *models.Item {
				it := baseItem()
				it.Type = models.ItemTypeUserStory
				return it
			},
			parent: &models.Item{
				ID: "story-3", ProjectID: "project-1", SprintID: "sprint-2", Type: models.ItemTypeUserStory,
			},
		},
		{
			name: "story under a task",
			item: func() *models.Item {
				it := baseItem()
				it.Type = models.ItemTypeUserStory
				return it
			},
			parent: &models.Item{
				ID: "task-2", ProjectID: "project-1", SprintID: "sprint-1", Type: models.ItemTypeTask,
			},
		},
		{
			name: "child cannot become its parent's parent",
			item: func() *models.Item {
				it := baseItem()
				it.Type = models.ItemTypeUserStory
				return it
			},
			parent: &models.Item{
				ID: "story-4", ProjectID: "project-1", SprintID: "sprint-1",
				Type: models.ItemTypeUserStory, ParentID: strPtr("item-1"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPlacement(tt.item(), tt.parent)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestArchiveItem(t *testing.T) {
	story := &models.Item{ID: "story-1", Type: models.ItemTypeUserStory}
	children := []models.Item{
		{ID: "task-1", ParentID: strPtr("story-1")},
		{ID: "task-2", ParentID: strPtr("story-1")},
	}

	archived, detached := ArchiveItem(story, children)
	assert.True(t, archived.IsArchived)
	assert.False(t, story.IsArchived, "input must not be modified")
	require.Len(t, detached, 2)
	for _, child := range detached {
		assert.Nil(t, child.ParentID)
		assert.False(t, child.IsArchived, "children are detached, not archived")
	}
	assert.NotNil(t, children[0].ParentID, "input children must not be modified")

	restored, detached := ArchiveItem(archived, children)
	assert.False(t, restored.IsArchived)
	assert.Empty(t, detached)
}
