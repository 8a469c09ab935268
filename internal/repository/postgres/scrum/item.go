package scrum

import (
	"context"
	"fmt"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
	scrumRepo "scrumboard/internal/domain/repositories/scrum"
	"scrumboard/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `id, project_id, sprint_id, type, status, title, description, story_points,
	assigned_user_id, parent_id, is_archived, created_by, created_at, updated_at`

// PostgresItemRepository implements the ItemRepository interface
type PostgresItemRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewItemRepository creates a new item repository
func NewItemRepository(config *postgres.RepositoryConfig) scrumRepo.ItemRepository {
	return &PostgresItemRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanItem(row rowScanner, item *models.Item) error {
	return row.Scan(
		&item.ID,
		&item.ProjectID,
		&item.SprintID,
		&item.Type,
		&item.Status,
		&item.Title,
		&item.Description,
		&item.StoryPoints,
		&item.AssignedUserID,
		&item.ParentID,
		&item.IsArchived,
		&item.CreatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}

func collectItems(rows pgx.Rows) ([]models.Item, error) {
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Create creates a new item
func (r *PostgresItemRepository) Create(ctx context.Context, item *models.Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, sprint_id, type, status, title, description, story_points,
			assigned_user_id, parent_id, is_archived, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, r.tables.Items)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		item.ProjectID,
		item.SprintID,
		item.Type,
		item.Status,
		item.Title,
		item.Description,
		item.StoryPoints,
		item.AssignedUserID,
		item.ParentID,
		item.IsArchived,
		item.CreatedBy,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NewNotFound(fmt.Sprintf("item references a missing row (%s)", postgres.ConstraintName(err)))
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID retrieves an item by ID
func (r *PostgresItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, itemColumns, r.tables.Items)

	var item models.Item
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanItem(executor.QueryRow(ctx, query, id), &item); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// ListBySprint retrieves the items of a sprint, stories first
func (r *PostgresItemRepository) ListBySprint(ctx context.Context, sprintID string, filter scrumRepo.ItemListFilter) ([]models.Item, error) {
	archived := ""
	if !filter.IncludeArchived {
		archived = "AND is_archived = FALSE"
	}
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE sprint_id = $1 %s
		ORDER BY (type = 'user_story') DESC, created_at
	`, itemColumns, r.tables.Items, archived)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, sprintID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return collectItems(rows)
}

// ListChildren retrieves the direct children of an item
func (r *PostgresItemRepository) ListChildren(ctx context.Context, itemID string) ([]models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE parent_id = $1
		ORDER BY created_at
	`, itemColumns, r.tables.Items)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list child items: %w", err)
	}
	return collectItems(rows)
}

// Update persists every mutable column of an item
func (r *PostgresItemRepository) Update(ctx context.Context, item *models.Item) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET sprint_id = $1,
		    status = $2,
		    title = $3,
		    description = $4,
		    story_points = $5,
		    assigned_user_id = $6,
		    parent_id = $7,
		    is_archived = $8,
		    updated_at = $9
		WHERE id = $10
	`, r.tables.Items)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		item.SprintID,
		item.Status,
		item.Title,
		item.Description,
		item.StoryPoints,
		item.AssignedUserID,
		item.ParentID,
		item.IsArchived,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NewNotFound(fmt.Sprintf("item references a missing row (%s)", postgres.ConstraintName(err)))
		}
		return fmt.Errorf("update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an item; children keep existing with their parent cleared
func (r *PostgresItemRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Items)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
