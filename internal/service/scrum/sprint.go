package scrum

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"
)

// sprintService implements the SprintService interface
type sprintService struct {
	sprintRepo  scrumRepo.SprintRepository
	projectRepo scrumRepo.ProjectRepository
	authorizer  scrumSvc.ProjectAuthorizer
	now         func() time.Time
	logger      *slog.Logger
}

// NewSprintService creates a new sprint service
func NewSprintService(
	sprintRepo scrumRepo.SprintRepository,
	projectRepo scrumRepo.ProjectRepository,
	authorizer scrumSvc.ProjectAuthorizer,
	logger *slog.Logger,
) scrumSvc.SprintService {
	return &sprintService{
		sprintRepo:  sprintRepo,
		projectRepo: projectRepo,
		authorizer:  authorizer,
		now:         time.Now,
		logger:      logger,
	}
}

// GetSprint retrieves a sprint
func (s *sprintService) GetSprint(ctx context.Context, callerID, id string) (*models.Sprint, error) {
	sprint, err := s.sprintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireViewer(ctx, callerID, sprint.ProjectID); err != nil {
		return nil, err
	}
	return sprint, nil
}

// ListSprints retrieves the sprints of a project
func (s *sprintService) ListSprints(ctx context.Context, callerID, projectID string) ([]models.Sprint, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireViewer(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	return s.sprintRepo.ListByProject(ctx, projectID)
}

// CreateSprint appends a sprint after the project's latest one
func (s *sprintService) CreateSprint(ctx context.Context, callerID, projectID string, req *scrumSvc.SprintRequest) (*domain.ResultOf[models.Sprint], error) {
	if err := validateSprintRequest(req); err != nil {
		return nil, invalid(err)
	}
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireScrumMasterOrOwner(ctx, callerID, projectID); err != nil {
		return nil, err
	}

	existing, err := s.sprintRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if res := CheckNewSprint(existing, req.StartDate, req.EndDate); !res.Success {
		s.logger.Debug("sprint creation rejected", "project_id", projectID, "reason", res.Message)
		return domain.Rejected[models.Sprint](res), nil
	}

	now := s.now()
	sprint := &models.Sprint{
		ProjectID:   projectID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		StartDate:   dateOnly(req.StartDate),
		EndDate:     dateOnly(req.EndDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.sprintRepo.Create(ctx, sprint); err != nil {
		return nil, err
	}

	s.logger.Info("sprint created",
		"id", sprint.ID,
		"project_id", projectID,
		"start", formatDate(sprint.StartDate),
		"end", formatDate(sprint.EndDate),
	)

	return domain.Accepted(sprint), nil
}

// UpdateSprint moves or renames a sprint without overlapping its neighbours
func (s *sprintService) UpdateSprint(ctx context.Context, callerID, id string, req *scrumSvc.SprintRequest) (*domain.ResultOf[models.Sprint], error) {
	if err := validateSprintRequest(req); err != nil {
		return nil, invalid(err)
	}

	sprint, err := s.sprintRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.RejectedMsg[models.Sprint]("sprint %s not found", id), nil
		}
		return nil, err
	}
	if _, err := s.authorizer.RequireScrumMasterOrOwner(ctx, callerID, sprint.ProjectID); err != nil {
		return nil, err
	}

	siblings, err := s.sprintRepo.ListByProject(ctx, sprint.ProjectID)
	if err != nil {
		return nil, err
	}
	if res := CheckSprintUpdate(siblings, sprint.ID, req.StartDate, req.EndDate); !res.Success {
		s.logger.Debug("sprint update rejected", "id", id, "reason", res.Message)
		return domain.Rejected[models.Sprint](res), nil
	}

	sprint.Name = strings.TrimSpace(req.Name)
	sprint.Description = req.Description
	sprint.StartDate = dateOnly(req.StartDate)
	sprint.EndDate = dateOnly(req.EndDate)
	sprint.UpdatedAt = s.now()

	if err := s.sprintRepo.Update(ctx, sprint); err != nil {
		return nil, err
	}

	s.logger.Info("sprint updated",
		"id", sprint.ID,
		"project_id", sprint.ProjectID,
		"start", formatDate(sprint.StartDate),
		"end", formatDate(sprint.EndDate),
	)

	return domain.Accepted(sprint), nil
}

// DeleteSprint deletes a sprint unless it is the project's last one
func (s *sprintService) DeleteSprint(ctx context.Context, callerID, id string) (*domain.Result, error) {
	sprint, err := s.sprintRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.Fail("sprint %s not found", id), nil
		}
		return nil, err
	}
	if _, err := s.authorizer.RequireScrumMasterOrOwner(ctx, callerID, sprint.ProjectID); err != nil {
		return nil, err
	}

	siblings, err := s.sprintRepo.ListByProject(ctx, sprint.ProjectID)
	if err != nil {
		return nil, err
	}
	if res := CheckSprintDeletion(len(siblings)); !res.Success {
		return res, nil
	}

	if err := s.sprintRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("sprint deleted",
		"id", id,
		"project_id", sprint.ProjectID,
		"user_id", callerID,
	)

	return domain.OK(), nil
}
