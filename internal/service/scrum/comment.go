package scrum

import (
	"context"
	"log/slog"
	"time"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"
	"scrumboard/internal/service/auth"
)

// commentService implements the CommentService interface
type commentService struct {
	commentRepo scrumRepo.CommentRepository
	itemRepo    scrumRepo.ItemRepository
	authorizer  scrumSvc.ProjectAuthorizer
	now         func() time.Time
	logger      *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo scrumRepo.CommentRepository,
	itemRepo scrumRepo.ItemRepository,
	authorizer scrumSvc.ProjectAuthorizer,
	logger *slog.Logger,
) scrumSvc.CommentService {
	return &commentService{
		commentRepo: commentRepo,
		itemRepo:    itemRepo,
		authorizer:  authorizer,
		now:         time.Now,
		logger:      logger,
	}
}

// ListComments retrieves the comments on an item
func (s *commentService) ListComments(ctx context.Context, callerID, itemID string) ([]models.Comment, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireViewer(ctx, callerID, item.ProjectID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByItem(ctx, itemID)
}

// CreateComment adds a comment authored by the caller
func (s *commentService) CreateComment(ctx context.Context, callerID, itemID string, req *scrumSvc.CommentRequest) (*models.Comment, error) {
	if err := validateCommentRequest(req); err != nil {
		return nil, invalid(err)
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireTeamMember(ctx, callerID, item.ProjectID); err != nil {
		return nil, err
	}

	now := s.now()
	comment := &models.Comment{
		ItemID:    itemID,
		UserID:    callerID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"id", comment.ID,
		"item_id", itemID,
		"user_id", callerID,
	)

	return comment, nil
}

// UpdateComment edits a comment; only its author may do so
func (s *commentService) UpdateComment(ctx context.Context, callerID, id string, req *scrumSvc.CommentRequest) (*domain.ResultOf[models.Comment], error) {
	if err := validateCommentRequest(req); err != nil {
		return nil, invalid(err)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.RejectedMsg[models.Comment]("comment %s not found", id), nil
		}
		return nil, err
	}
	if comment.UserID != callerID {
		return nil, domain.NewForbidden("only the author can edit a comment")
	}

	comment.Content = req.Content
	comment.UpdatedAt = s.now()
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return domain.Accepted(comment), nil
}

// DeleteComment removes a comment; its author or a scrum master/owner may do so
func (s *commentService) DeleteComment(ctx context.Context, callerID, id string) (*domain.Result, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.Fail("comment %s not found", id), nil
		}
		return nil, err
	}

	if comment.UserID != callerID {
		item, err := s.itemRepo.GetByID(ctx, comment.ItemID)
		if err != nil {
			return nil, err
		}
		role, err := s.authorizer.RoleInProject(ctx, callerID, item.ProjectID)
		if err != nil {
			return nil, err
		}
		if !auth.IsScrumMasterOrOwner(role) {
			return nil, domain.NewForbidden("only the author, the scrum master or the owner can delete a comment")
		}
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("comment deleted",
		"id", id,
		"user_id", callerID,
	)

	return domain.OK(), nil
}
