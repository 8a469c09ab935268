package scrum

import (
	"context"

	"scrumboard/internal/domain/models/scrum"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates the project, makes the caller its Owner and
	// opens the initial sprint
	CreateProject(ctx context.Context, callerID string, req *CreateProjectRequest) (*scrum.Project, error)

	GetProject(ctx context.Context, callerID, id string) (*scrum.Project, error)

	// ListProjects returns the projects the caller is a member of
	ListProjects(ctx context.Context, callerID string) ([]scrum.Project, error)

	UpdateProject(ctx context.Context, callerID, id string, req *UpdateProjectRequest) (*scrum.Project, error)
	DeleteProject(ctx context.Context, callerID, id string) error
}
