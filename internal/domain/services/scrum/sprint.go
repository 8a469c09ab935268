package scrum

import (
	"context"
	"time"

	"scrumboard/internal/domain"
	"scrumboard/internal/domain/models/scrum"
)

// SprintRequest carries the editable fields of a sprint
type SprintRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// SprintService defines business logic operations for sprints.
// Scheduling conflicts are reported through the returned result, not as errors.
type SprintService interface {
	GetSprint(ctx context.Context, callerID, id string) (*scrum.Sprint, error)
	ListSprints(ctx context.Context, callerID, projectID string) ([]scrum.Sprint, error)
	CreateSprint(ctx context.Context, callerID, projectID string, req *SprintRequest) (*domain.ResultOf[scrum.Sprint], error)
	UpdateSprint(ctx context.Context, callerID, id string, req *SprintRequest) (*domain.ResultOf[scrum.Sprint], error)
	DeleteSprint(ctx context.Context, callerID, id string) (*domain.Result, error)
}
