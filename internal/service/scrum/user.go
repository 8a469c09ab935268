package scrum

import (
	"context"
	"log/slog"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"
)

// userService implements the UserService interface
type userService struct {
	userRepo   scrumRepo.UserRepository
	memberRepo scrumRepo.MembershipRepository
	logger     *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo scrumRepo.UserRepository,
	memberRepo scrumRepo.MembershipRepository,
	logger *slog.Logger,
) scrumSvc.UserService {
	return &userService{
		userRepo:   userRepo,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (s *userService) EnsureUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return domain.NewBadRequest("user id is required")
	}
	return s.userRepo.Upsert(ctx, user)
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// DeleteSelf removes the caller's account once they belong to no project
func (s *userService) DeleteSelf(ctx context.Context, callerID string) error {
	if _, err := s.userRepo.GetByID(ctx, callerID); err != nil {
		return err
	}

	count, err := s.memberRepo.CountByUser(ctx, callerID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewBadRequest("leave all projects before deleting your account")
	}

	if err := s.userRepo.Delete(ctx, callerID); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", callerID)
	return nil
}
