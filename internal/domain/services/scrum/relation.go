package scrum

import (
	"context"

	"scrumboard/internal/domain"
	"scrumboard/internal/domain/models/scrum"
)

// RelationService defines business logic operations for item relations
type RelationService interface {
	// ListRelatedItems returns the items related to itemID, whichever
	// direction the edge was stored in
	ListRelatedItems(ctx context.Context, callerID, itemID string) ([]scrum.Item, error)

	CreateRelation(ctx context.Context, callerID, firstID, secondID string) (*scrum.ItemRelation, error)
	DeleteRelation(ctx context.Context, callerID, firstID, secondID string) (*domain.Result, error)
}
