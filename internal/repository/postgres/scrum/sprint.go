package scrum

import (
	"context"
	"fmt"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	"scrumboard/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

const sprintColumns = `id, project_id, name, description, start_date, end_date, created_at, updated_at`

// PostgresSprintRepository implements the SprintRepository interface
type PostgresSprintRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewSprintRepository creates a new sprint repository
func NewSprintRepository(config *postgres.RepositoryConfig) scrumRepo.SprintRepository {
	return &PostgresSprintRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSprint(row rowScanner, sprint *models.Sprint) error {
	return row.Scan(
		&sprint.ID,
		&sprint.ProjectID,
		&sprint.Name,
		&sprint.Description,
		&sprint.StartDate,
		&sprint.EndDate,
		&sprint.CreatedAt,
		&sprint.UpdatedAt,
	)
}

// Create creates a new sprint
func (r *PostgresSprintRepository) Create(ctx context.Context, sprint *models.Sprint) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, name, description, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, r.tables.Sprints)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		sprint.ProjectID,
		sprint.Name,
		sprint.Description,
		sprint.StartDate,
		sprint.EndDate,
		sprint.CreatedAt,
		sprint.UpdatedAt,
	).Scan(&sprint.ID)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", sprint.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create sprint: %w", err)
	}
	return nil
}

// GetByID retrieves a sprint by ID
func (r *PostgresSprintRepository) GetByID(ctx context.Context, id string) (*models.Sprint, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, sprintColumns, r.tables.Sprints)

	var sprint models.Sprint
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanSprint(executor.QueryRow(ctx, query, id), &sprint); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("sprint %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get sprint: %w", err)
	}
	return &sprint, nil
}

// ListByProject retrieves a project's sprints in chronological order
func (r *PostgresSprintRepository) ListByProject(ctx context.Context, projectID string) ([]models.Sprint, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE project_id = $1
		ORDER BY start_date, end_date
	`, sprintColumns, r.tables.Sprints)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}
	defer rows.Close()

	sprints := []models.Sprint{}
	for rows.Next() {
		var sprint models.Sprint
		if err := scanSprint(rows, &sprint); err != nil {
			return nil, fmt.Errorf("scan sprint: %w", err)
		}
		sprints = append(sprints, sprint)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sprints: %w", err)
	}
	return sprints, nil
}

// Update updates a sprint's name, description and dates
func (r *PostgresSprintRepository) Update(ctx context.Context, sprint *models.Sprint) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, start_date = $3, end_date = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Sprints)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		sprint.Name,
		sprint.Description,
		sprint.StartDate,
		sprint.EndDate,
		sprint.UpdatedAt,
		sprint.ID,
	)
	if err != nil {
		return fmt.Errorf("update sprint: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("sprint %s: %w", sprint.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a sprint; its items cascade
func (r *PostgresSprintRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Sprints)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete sprint: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("sprint %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
