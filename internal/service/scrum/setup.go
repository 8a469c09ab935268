package scrum

import (
	"log/slog"

	"scrumboard/internal/config"
	"scrumboard/internal/domain/repositories"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	scrumSvc "scrumboard/internal/domain/services/scrum"
	"scrumboard/internal/service/auth"
)

// Repositories groups the data accessors the board services depend on
type Repositories struct {
	Projects    scrumRepo.ProjectRepository
	Sprints     scrumRepo.SprintRepository
	Items       scrumRepo.ItemRepository
	Relations   scrumRepo.ItemRelationRepository
	Comments    scrumRepo.CommentRepository
	Memberships scrumRepo.MembershipRepository
	Users       scrumRepo.UserRepository
	Tx          repositories.TransactionManager
}

// Services holds all board services
type Services struct {
	Authorizer scrumSvc.ProjectAuthorizer
	Projects   scrumSvc.ProjectService
	Sprints    scrumSvc.SprintService
	Items      scrumSvc.ItemService
	Members    scrumSvc.MemberService
	Comments   scrumSvc.CommentService
	Relations  scrumSvc.RelationService
	Users      scrumSvc.UserService
}

// SetupServices wires every board service around a shared role-based authorizer
func SetupServices(repos *Repositories, cfg *config.Config, logger *slog.Logger) *Services {
	authorizer := auth.NewRoleBasedAuthorizer(repos.Memberships, logger)

	return &Services{
		Authorizer: authorizer,
		Projects: NewProjectService(
			repos.Projects, repos.Sprints, repos.Memberships,
			authorizer, repos.Tx, cfg.InitialSprintDays, logger,
		),
		Sprints:   NewSprintService(repos.Sprints, repos.Projects, authorizer, logger),
		Items:     NewItemService(repos.Items, repos.Sprints, authorizer, repos.Tx, logger),
		Members:   NewMemberService(repos.Memberships, repos.Users, repos.Projects, authorizer, logger),
		Comments:  NewCommentService(repos.Comments, repos.Items, authorizer, logger),
		Relations: NewRelationService(repos.Relations, repos.Items, authorizer, repos.Tx, logger),
		Users:     NewUserService(repos.Users, repos.Memberships, logger),
	}
}
