package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// SprintRepository defines data access operations for sprints
type SprintRepository interface {
	Create(ctx context.Context, sprint *scrum.Sprint) error

	// GetByID returns the sprint or an error wrapping domain.ErrNotFound
	GetByID(ctx context.Context, id string) (*scrum.Sprint, error)

	// ListByProject returns all sprints of a project ordered by start date
	ListByProject(ctx context.Context, projectID string) ([]scrum.Sprint, error)

	Update(ctx context.Context, sprint *scrum.Sprint) error

	// Delete removes the sprint and its items
	Delete(ctx context.Context, id string) error
}
