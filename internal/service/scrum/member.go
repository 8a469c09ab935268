package scrum

import (
	"context"
	"log/slog"
	"time"

	models "scrumboard/internal/domain/models/scrum"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"
)

// memberService implements the MemberService interface
type memberService struct {
	memberRepo  scrumRepo.MembershipRepository
	userRepo    scrumRepo.UserRepository
	projectRepo scrumRepo.ProjectRepository
	authorizer  scrumSvc.ProjectAuthorizer
	now         func() time.Time
	logger      *slog.Logger
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo scrumRepo.MembershipRepository,
	userRepo scrumRepo.UserRepository,
	projectRepo scrumRepo.ProjectRepository,
	authorizer scrumSvc.ProjectAuthorizer,
	logger *slog.Logger,
) scrumSvc.MemberService {
	return &memberService{
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		authorizer:  authorizer,
		now:         time.Now,
		logger:      logger,
	}
}

// ListMembers retrieves the members of a project
func (s *memberService) ListMembers(ctx context.Context, callerID, projectID string) ([]models.Member, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.authorizer.RequireViewer(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListByProject(ctx, projectID)
}

// AddMember adds a user to a project with a non-owner role
func (s *memberService) AddMember(ctx context.Context, callerID, projectID string, req *scrumSvc.AddMemberRequest) (*models.ProjectMembership, error) {
	if err := validateAddMemberRequest(req); err != nil {
		return nil, invalid(err)
	}
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	callerRole, err := s.authorizer.RoleInProject(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	targetExists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	targetRole, err := s.authorizer.RoleInProject(ctx, req.UserID, projectID)
	if err != nil {
		return nil, err
	}
	smExists, err := s.scrumMasterExists(ctx, projectID, req.Role)
	if err != nil {
		return nil, err
	}

	if err := CheckAddMember(callerRole, targetExists, targetRole, req.Role, smExists); err != nil {
		return nil, err
	}

	now := s.now()
	membership := &models.ProjectMembership{
		UserID:    req.UserID,
		ProjectID: projectID,
		Role:      req.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.memberRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	s.logger.Info("member added",
		"project_id", projectID,
		"user_id", req.UserID,
		"role", req.Role.String(),
		"by", callerID,
	)

	return membership, nil
}

// ChangeRole moves a member to another role
func (s *memberService) ChangeRole(ctx context.Context, callerID, projectID, userID string, req *scrumSvc.ChangeRoleRequest) (*models.ProjectMembership, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	actorRole, err := s.authorizer.RoleInProject(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	targetRole, err := s.authorizer.RoleInProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	smExists, err := s.scrumMasterExists(ctx, projectID, req.Role)
	if err != nil {
		return nil, err
	}

	if err := CheckChangeRole(actorRole, targetRole, req.Role, smExists); err != nil {
		return nil, err
	}

	if err := s.memberRepo.UpdateRole(ctx, userID, projectID, req.Role); err != nil {
		return nil, err
	}

	s.logger.Info("member role changed",
		"project_id", projectID,
		"user_id", userID,
		"from", targetRole.String(),
		"to", req.Role.String(),
		"by", callerID,
	)

	return &models.ProjectMembership{
		UserID:    userID,
		ProjectID: projectID,
		Role:      req.Role,
		UpdatedAt: s.now(),
	}, nil
}

// RemoveMember removes a member, or lets the caller leave when userID is the caller
func (s *memberService) RemoveMember(ctx context.Context, callerID, projectID, userID string) error {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return err
	}

	callerRole, err := s.authorizer.RoleInProject(ctx, callerID, projectID)
	if err != nil {
		return err
	}
	isSelf := callerID == userID
	targetRole := callerRole
	if !isSelf {
		targetRole, err = s.authorizer.RoleInProject(ctx, userID, projectID)
		if err != nil {
			return err
		}
	}

	if err := CheckRemoveMember(callerRole, targetRole, isSelf); err != nil {
		return err
	}

	if err := s.memberRepo.Delete(ctx, userID, projectID); err != nil {
		return err
	}

	s.logger.Info("member removed",
		"project_id", projectID,
		"user_id", userID,
		"self", isSelf,
	)

	return nil
}

// scrumMasterExists only queries when the requested role makes it matter
func (s *memberService) scrumMasterExists(ctx context.Context, projectID string, requested models.Role) (bool, error) {
	if requested != models.RoleScrumMaster {
		return false, nil
	}
	return s.memberRepo.ScrumMasterExists(ctx, projectID)
}
