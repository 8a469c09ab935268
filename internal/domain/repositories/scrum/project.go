package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create inserts a project and fills in its ID and timestamps
	Create(ctx context.Context, project *scrum.Project) error

	// GetByID returns the project or an error wrapping domain.ErrNotFound
	GetByID(ctx context.Context, id string) (*scrum.Project, error)

	// ListForUser returns every project the user holds a membership in
	ListForUser(ctx context.Context, userID string) ([]scrum.Project, error)

	Update(ctx context.Context, project *scrum.Project) error

	// Delete removes the project with its sprints, items and memberships
	Delete(ctx context.Context, id string) error
}
