package scrum

import (
	"context"
	"fmt"
	"strings"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	"scrumboard/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMembershipRepository implements the MembershipRepository interface
type PostgresMembershipRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(config *postgres.RepositoryConfig) scrumRepo.MembershipRepository {
	return &PostgresMembershipRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetRole returns the user's role in a project, RoleNone without a membership
func (r *PostgresMembershipRepository) GetRole(ctx context.Context, userID, projectID string) (models.Role, error) {
	query := fmt.Sprintf(`
		SELECT role FROM %s WHERE user_id = $1 AND project_id = $2
	`, r.tables.Memberships)

	var name string
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID, projectID).Scan(&name); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return models.RoleNone, nil
		}
		return models.RoleNone, fmt.Errorf("get role: %w", err)
	}

	role, err := models.ParseRole(name)
	if err != nil {
		return models.RoleNone, fmt.Errorf("membership %s/%s: %w", userID, projectID, err)
	}
	return role, nil
}

// ScrumMasterExists reports whether the project already has a scrum master
func (r *PostgresMembershipRepository) ScrumMasterExists(ctx context.Context, projectID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE project_id = $1 AND role = $2)
	`, r.tables.Memberships)

	var exists bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID, models.RoleScrumMaster.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check scrum master: %w", err)
	}
	return exists, nil
}

// ListByProject retrieves a project's members with their user details
func (r *PostgresMembershipRepository) ListByProject(ctx context.Context, projectID string) ([]models.Member, error) {
	query := fmt.Sprintf(`
		SELECT m.user_id, m.project_id, m.role, m.created_at, m.updated_at, u.email, u.display_name
		FROM %s m
		JOIN %s u ON u.id = m.user_id
		WHERE m.project_id = $1
		ORDER BY m.created_at
	`, r.tables.Memberships, r.tables.Users)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var (
			member models.Member
			role   string
		)
		if err := rows.Scan(
			&member.UserID,
			&member.ProjectID,
			&role,
			&member.CreatedAt,
			&member.UpdatedAt,
			&member.Email,
			&member.DisplayName,
		); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		if member.Role, err = models.ParseRole(role); err != nil {
			return nil, fmt.Errorf("member %s: %w", member.UserID, err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

// CountByUser returns the number of projects a user belongs to
func (r *PostgresMembershipRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, r.tables.Memberships)

	var count int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count memberships: %w", err)
	}
	return count, nil
}

// Create adds a membership
func (r *PostgresMembershipRepository) Create(ctx context.Context, membership *models.ProjectMembership) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, project_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Memberships)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		membership.UserID,
		membership.ProjectID,
		membership.Role.String(),
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		return r.mapWriteError(err, membership.UserID, membership.ProjectID)
	}
	return nil
}

// UpdateRole changes a member's role
func (r *PostgresMembershipRepository) UpdateRole(ctx context.Context, userID, projectID string, role models.Role) error {
	query := fmt.Sprintf(`
		UPDATE %s SET role = $1, updated_at = NOW()
		WHERE user_id = $2 AND project_id = $3
	`, r.tables.Memberships)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, role.String(), userID, projectID)
	if err != nil {
		return r.mapWriteError(err, userID, projectID)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership %s/%s: %w", userID, projectID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a membership
func (r *PostgresMembershipRepository) Delete(ctx context.Context, userID, projectID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND project_id = $2`, r.tables.Memberships)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID, projectID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership %s/%s: %w", userID, projectID, domain.ErrNotFound)
	}
	return nil
}

// mapWriteError turns constraint violations into domain errors.
// The one-scrum-master index fires when two grants race past the service check.
func (r *PostgresMembershipRepository) mapWriteError(err error, userID, projectID string) error {
	switch {
	case postgres.IsPgDuplicateError(err) && strings.HasSuffix(postgres.ConstraintName(err), "one_scrum_master"):
		return &domain.ConflictError{
			Message:      "project already has a scrum master",
			ResourceType: "member",
			ResourceID:   projectID,
		}
	case postgres.IsPgDuplicateError(err):
		return &domain.ConflictError{
			Message:      fmt.Sprintf("user %s is already a member of the project", userID),
			ResourceType: "member",
			ResourceID:   userID,
		}
	case postgres.IsPgForeignKeyError(err):
		return fmt.Errorf("membership %s/%s: %w", userID, projectID, domain.ErrNotFound)
	case postgres.IsPgCheckError(err):
		return domain.NewBadRequest("invalid role")
	}
	return fmt.Errorf("write membership: %w", err)
}
