package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// CommentRepository defines data access operations for comments
type CommentRepository interface {
	Create(ctx context.Context, comment *scrum.Comment) error
	GetByID(ctx context.Context, id string) (*scrum.Comment, error)

	// ListByItem returns comments ordered by creation time
	ListByItem(ctx context.Context, itemID string) ([]scrum.Comment, error)

	Update(ctx context.Context, comment *scrum.Comment) error
	Delete(ctx context.Context, id string) error
}
