package scrum

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	"scrumboard/internal/domain/repositories"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"
	"scrumboard/internal/service/auth"
)

// itemService implements the ItemService interface
type itemService struct {
	itemRepo   scrumRepo.ItemRepository
	sprintRepo scrumRepo.SprintRepository
	authorizer scrumSvc.ProjectAuthorizer
	txManager  repositories.TransactionManager
	now        func() time.Time
	logger     *slog.Logger
}

// NewItemService creates a new item service
func NewItemService(
	itemRepo scrumRepo.ItemRepository,
	sprintRepo scrumRepo.SprintRepository,
	authorizer scrumSvc.ProjectAuthorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) scrumSvc.ItemService {
	return &itemService{
		itemRepo:   itemRepo,
		sprintRepo: sprintRepo,
		authorizer: authorizer,
		txManager:  txManager,
		now:        time.Now,
		logger:     logger,
	}
}

// GetItem retrieves an item
func (s *itemService) GetItem(ctx context.Context, callerID, id string) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireViewer(ctx, callerID, item.ProjectID); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems retrieves the items of a sprint
func (s *itemService) ListItems(ctx context.Context, callerID, sprintID string, includeArchived bool) ([]models.Item, error) {
	sprint, err := s.sprintRepo.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireViewer(ctx, callerID, sprint.ProjectID); err != nil {
		return nil, err
	}
	return s.itemRepo.ListBySprint(ctx, sprintID, scrumRepo.ItemListFilter{IncludeArchived: includeArchived})
}

// CreateItem creates an item in a sprint
func (s *itemService) CreateItem(ctx context.Context, callerID, sprintID string, req *scrumSvc.CreateItemRequest) (*models.Item, error) {
	if err := validateCreateItemRequest(req); err != nil {
		return nil, invalid(err)
	}

	sprint, err := s.sprintRepo.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	role, err := s.authorizer.RoleInProject(ctx, callerID, sprint.ProjectID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ItemStatusNew
	}

	now := s.now()
	item := &models.Item{
		ProjectID:      sprint.ProjectID,
		SprintID:       sprint.ID,
		Type:           req.Type,
		Status:         status,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		StoryPoints:    req.StoryPoints,
		AssignedUserID: req.AssignedUserID,
		ParentID:       req.ParentID,
		CreatedBy:      callerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := CheckItemCreate(callerID, role, item); err != nil {
		return nil, err
	}
	if item.AssignedUserID != nil {
		if err := s.checkAssignee(ctx, item.ProjectID, *item.AssignedUserID); err != nil {
			return nil, err
		}
	}
	if item.ParentID != nil {
		if err := s.checkParent(ctx, item); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		"id", item.ID,
		"type", item.Type,
		"sprint_id", item.SprintID,
		"user_id", callerID,
	)

	return item, nil
}

// UpdateItem replaces an item with the proposed state after the workflow
// rules have authorized and repaired it
func (s *itemService) UpdateItem(ctx context.Context, callerID, id string, req *scrumSvc.UpdateItemRequest) (*domain.ResultOf[models.Item], error) {
	if err := validateUpdateItemRequest(req); err != nil {
		return nil, invalid(err)
	}

	existing, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.RejectedMsg[models.Item]("item %s not found", id), nil
		}
		return nil, err
	}
	role, err := s.authorizer.RoleInProject(ctx, callerID, existing.ProjectID)
	if err != nil {
		return nil, err
	}

	proposed := existing.Clone()
	if req.SprintID != "" {
		proposed.SprintID = req.SprintID
	}
	proposed.Type = req.Type
	proposed.Status = req.Status
	proposed.Title = strings.TrimSpace(req.Title)
	proposed.Description = req.Description
	proposed.StoryPoints = req.StoryPoints
	proposed.AssignedUserID = req.AssignedUserID
	proposed.ParentID = req.ParentID

	item, err := ApplyItemUpdate(callerID, role, existing, proposed)
	if err != nil {
		s.logger.Debug("item update rejected", "id", id, "user_id", callerID, "error", err)
		return nil, err
	}

	if item.SprintID != existing.SprintID {
		sprint, err := s.sprintRepo.GetByID(ctx, item.SprintID)
		if err != nil {
			return nil, err
		}
		if sprint.ProjectID != existing.ProjectID {
			return nil, domain.NewBadRequest("an item cannot move to a sprint of another project")
		}
	}
	if item.AssignedUserID != nil && !models.SameID(item.AssignedUserID, existing.AssignedUserID) {
		if err := s.checkAssignee(ctx, item.ProjectID, *item.AssignedUserID); err != nil {
			return nil, err
		}
	}
	if item.ParentID != nil && !models.SameID(item.ParentID, existing.ParentID) {
		if err := s.checkParent(ctx, item); err != nil {
			return nil, err
		}
	}

	item.UpdatedAt = s.now()
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item updated",
		"id", item.ID,
		"status", item.Status,
		"user_id", callerID,
	)

	return domain.Accepted(item), nil
}

// ArchiveItem toggles the archived flag, detaching direct children on archive
func (s *itemService) ArchiveItem(ctx context.Context, callerID, id string) (*domain.ResultOf[models.Item], error) {
	existing, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.RejectedMsg[models.Item]("item %s not found", id), nil
		}
		return nil, err
	}
	if err := s.requireDeleteOrArchive(ctx, callerID, existing.ProjectID); err != nil {
		return nil, err
	}

	children, err := s.itemRepo.ListChildren(ctx, id)
	if err != nil {
		return nil, err
	}

	item, detached := ArchiveItem(existing, children)
	now := s.now()
	item.UpdatedAt = now

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.itemRepo.Update(ctx, item); err != nil {
			return err
		}
		for i := range detached {
			detached[i].UpdatedAt = now
			if err := s.itemRepo.Update(ctx, &detached[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("archive item: %w", err)
	}

	s.logger.Info("item archive toggled",
		"id", item.ID,
		"archived", item.IsArchived,
		"detached_children", len(detached),
		"user_id", callerID,
	)

	return domain.Accepted(item), nil
}

// DeleteItem hard-deletes an item
func (s *itemService) DeleteItem(ctx context.Context, callerID, id string) (*domain.Result, error) {
	existing, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.Fail("item %s not found", id), nil
		}
		return nil, err
	}
	if err := s.requireDeleteOrArchive(ctx, callerID, existing.ProjectID); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("item deleted",
		"id", id,
		"user_id", callerID,
	)

	return domain.OK(), nil
}

func (s *itemService) requireDeleteOrArchive(ctx context.Context, callerID, projectID string) error {
	role, err := s.authorizer.RoleInProject(ctx, callerID, projectID)
	if err != nil {
		return err
	}
	if !auth.CanDeleteOrArchiveItem(role) {
		return domain.NewForbidden("only the scrum master or the owner can delete or archive items")
	}
	return nil
}

// checkAssignee rejects assignment to anyone outside the project's team
func (s *itemService) checkAssignee(ctx context.Context, projectID, userID string) error {
	role, err := s.authorizer.RoleInProject(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if !auth.IsPartOfTeam(role) {
		return domain.NewBadRequest(fmt.Sprintf("user %s is not a member of the team", userID))
	}
	return nil
}

// checkParent loads the candidate parent and applies the placement rules
func (s *itemService) checkParent(ctx context.Context, item *models.Item) error {
	parent, err := s.itemRepo.GetByID(ctx, *item.ParentID)
	if err != nil {
		return err
	}
	return CheckPlacement(item, parent)
}
