package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// ItemListFilter narrows ListBySprint results
type ItemListFilter struct {
	IncludeArchived bool
}

// ItemRepository defines data access operations for items
type ItemRepository interface {
	Create(ctx context.Context, item *scrum.Item) error

	// GetByID returns the item or an error wrapping domain.ErrNotFound
	GetByID(ctx context.Context, id string) (*scrum.Item, error)

	ListBySprint(ctx context.Context, sprintID string, filter ItemListFilter) ([]scrum.Item, error)

	// ListChildren returns the items whose parent is itemID
	ListChildren(ctx context.Context, itemID string) ([]scrum.Item, error)

	// Update persists every mutable column of the item
	Update(ctx context.Context, item *scrum.Item) error

	Delete(ctx context.Context, id string) error
}
