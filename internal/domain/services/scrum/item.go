package scrum

import (
	"context"

	"scrumboard/internal/domain"
	"scrumboard/internal/domain/models/scrum"
)

// CreateItemRequest represents a request to create an item in a sprint
type CreateItemRequest struct {
	Type           scrum.ItemType   `json:"type"`
	Status         scrum.ItemStatus `json:"status"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	StoryPoints    *int             `json:"story_points,omitempty"`
	AssignedUserID *string          `json:"assigned_user_id,omitempty"`
	ParentID       *string          `json:"parent_id,omitempty"`
}

// UpdateItemRequest is the full proposed state of an item
type UpdateItemRequest struct {
	SprintID       string           `json:"sprint_id"`
	Type           scrum.ItemType   `json:"type"`
	Status         scrum.ItemStatus `json:"status"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	StoryPoints    *int             `json:"story_points,omitempty"`
	AssignedUserID *string          `json:"assigned_user_id"`
	ParentID       *string          `json:"parent_id"`
}

// ItemService defines business logic operations for work items
type ItemService interface {
	GetItem(ctx context.Context, callerID, id string) (*scrum.Item, error)
	ListItems(ctx context.Context, callerID, sprintID string, includeArchived bool) ([]scrum.Item, error)
	CreateItem(ctx context.Context, callerID, sprintID string, req *CreateItemRequest) (*scrum.Item, error)

	// UpdateItem applies the workflow rules and returns the repaired item
	UpdateItem(ctx context.Context, callerID, id string, req *UpdateItemRequest) (*domain.ResultOf[scrum.Item], error)

	// ArchiveItem toggles the archived flag; archiving detaches direct children
	ArchiveItem(ctx context.Context, callerID, id string) (*domain.ResultOf[scrum.Item], error)

	DeleteItem(ctx context.Context, callerID, id string) (*domain.Result, error)
}
