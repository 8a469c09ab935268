package scrum

import (
	"fmt"
	"time"
)

// ItemType distinguishes stories from leaf work items.
// Only "story vs non-story" affects placement rules.
type ItemType string

const (
	ItemTypeUserStory ItemType = "user_story"
	ItemTypeTask      ItemType = "task"
	ItemTypeBug       ItemType = "bug"
)

// Valid reports whether t is a known item type
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeUserStory, ItemTypeTask, ItemTypeBug:
		return true
	}
	return false
}

// IsStory reports whether t is the user story type
func (t ItemType) IsStory() bool {
	return t == ItemTypeUserStory
}

// ItemStatus is the workflow status of an item.
// Only "new vs not new" is coupled to assignment.
type ItemStatus string

const (
	ItemStatusNew    ItemStatus = "new"
	ItemStatusActive ItemStatus = "active"
	ItemStatusReview ItemStatus = "review"
	ItemStatusDone   ItemStatus = "done"
)

// Valid reports whether s is a known status
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusNew, ItemStatusActive, ItemStatusReview, ItemStatusDone:
		return true
	}
	return false
}

// IsNew reports whether s is the New status
func (s ItemStatus) IsNew() bool {
	return s == ItemStatusNew
}

// Item is a work item inside a sprint.
//
// Invariant: Status == New exactly when AssignedUserID is nil.
type Item struct {
	ID             string     `json:"id" db:"id"`
	ProjectID      string     `json:"project_id" db:"project_id"`
	SprintID       string     `json:"sprint_id" db:"sprint_id"`
	Type           ItemType   `json:"type" db:"type"`
	Status         ItemStatus `json:"status" db:"status"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	StoryPoints    *int       `json:"story_points,omitempty" db:"story_points"`
	AssignedUserID *string    `json:"assigned_user_id" db:"assigned_user_id"`
	ParentID       *string    `json:"parent_id" db:"parent_id"`
	IsArchived     bool       `json:"is_archived" db:"is_archived"`
	CreatedBy      string     `json:"created_by" db:"created_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// IsAssignedTo reports whether the item is assigned to userID
func (i *Item) IsAssignedTo(userID string) bool {
	return i.AssignedUserID != nil && *i.AssignedUserID == userID
}

// Clone returns a copy that shares no pointers with i
func (i *Item) Clone() *Item {
	c := *i
	c.AssignedUserID = cloneString(i.AssignedUserID)
	c.ParentID = cloneString(i.ParentID)
	if i.StoryPoints != nil {
		p := *i.StoryPoints
		c.StoryPoints = &p
	}
	return &c
}

// String is used in log lines
func (i *Item) String() string {
	return fmt.Sprintf("item %s (%s, %s)", i.ID, i.Type, i.Status)
}

// SameID reports whether two optional ids hold the same value
func SameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
