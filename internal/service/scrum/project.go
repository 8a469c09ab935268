package scrum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	"scrumboard/internal/domain/repositories"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo       scrumRepo.ProjectRepository
	sprintRepo        scrumRepo.SprintRepository
	memberRepo        scrumRepo.MembershipRepository
	authorizer        scrumSvc.ProjectAuthorizer
	txManager         repositories.TransactionManager
	initialSprintDays int
	now               func() time.Time
	logger            *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo scrumRepo.ProjectRepository,
	sprintRepo scrumRepo.SprintRepository,
	memberRepo scrumRepo.MembershipRepository,
	authorizer scrumSvc.ProjectAuthorizer,
	txManager repositories.TransactionManager,
	initialSprintDays int,
	logger *slog.Logger,
) scrumSvc.ProjectService {
	return &projectService{
		projectRepo:       projectRepo,
		sprintRepo:        sprintRepo,
		memberRepo:        memberRepo,
		authorizer:        authorizer,
		txManager:         txManager,
		initialSprintDays: initialSprintDays,
		now:               time.Now,
		logger:            logger,
	}
}

// CreateProject creates a project owned by the caller together with its first sprint
func (s *projectService) CreateProject(ctx context.Context, callerID string, req *scrumSvc.CreateProjectRequest) (*models.Project, error) {
	if err := validateProjectRequest(&req.Name, &req.Description); err != nil {
		return nil, invalid(err)
	}

	now := s.now()
	project := &models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	start := dateOnly(now)
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Create(ctx, project); err != nil {
			return err
		}

		owner := &models.ProjectMembership{
			UserID:    callerID,
			ProjectID: project.ID,
			Role:      models.RoleOwner,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.memberRepo.Create(ctx, owner); err != nil {
			return err
		}

		initial := &models.Sprint{
			ProjectID: project.ID,
			Name:      "Sprint 1",
			StartDate: start,
			EndDate:   start.AddDate(0, 0, s.initialSprintDays),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.sprintRepo.Create(ctx, initial)
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
		"owner_id", callerID,
	)

	return project, nil
}

// GetProject retrieves a project visible to the caller
func (s *projectService) GetProject(ctx context.Context, callerID, id string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireViewer(ctx, callerID, id); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects retrieves all projects the caller belongs to
func (s *projectService) ListProjects(ctx context.Context, callerID string) ([]models.Project, error) {
	return s.projectRepo.ListForUser(ctx, callerID)
}

// UpdateProject renames or re-describes a project
func (s *projectService) UpdateProject(ctx context.Context, callerID, id string, req *scrumSvc.UpdateProjectRequest) (*models.Project, error) {
	if err := validateProjectRequest(&req.Name, &req.Description); err != nil {
		return nil, invalid(err)
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireOwner(ctx, callerID, id); err != nil {
		return nil, err
	}

	project.Name = strings.TrimSpace(req.Name)
	project.Description = req.Description
	project.UpdatedAt = s.now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"name", project.Name,
		"user_id", callerID,
	)

	return project, nil
}

// DeleteProject deletes a project and everything in it
func (s *projectService) DeleteProject(ctx context.Context, callerID, id string) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.authorizer.RequireOwner(ctx, callerID, id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"user_id", callerID,
	)

	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
