package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// ItemRelationRepository stores relations keyed by the directed pair
// (first, second). Callers are responsible for checking both directions.
type ItemRelationRepository interface {
	Create(ctx context.Context, relation *scrum.ItemRelation) error

	// Get returns the relation stored exactly as (firstID, secondID),
	// or an error wrapping domain.ErrNotFound
	Get(ctx context.Context, firstID, secondID string) (*scrum.ItemRelation, error)

	// ListForItem returns relations that mention itemID on either side
	ListForItem(ctx context.Context, itemID string) ([]scrum.ItemRelation, error)

	Delete(ctx context.Context, firstID, secondID string) error
}
