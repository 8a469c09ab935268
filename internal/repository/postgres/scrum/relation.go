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

// PostgresItemRelationRepository implements the ItemRelationRepository interface
type PostgresItemRelationRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewItemRelationRepository creates a new item relation repository
func NewItemRelationRepository(config *postgres.RepositoryConfig) scrumRepo.ItemRelationRepository {
	return &PostgresItemRelationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create stores the relation as (first, second)
func (r *PostgresItemRelationRepository) Create(ctx context.Context, relation *models.ItemRelation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (first_item_id, second_item_id, created_at)
		VALUES ($1, $2, $3)
	`, r.tables.ItemRelations)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, relation.FirstItemID, relation.SecondItemID, relation.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "items are already related",
				ResourceType: "relation",
				ResourceID:   relation.FirstItemID + ":" + relation.SecondItemID,
			}
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("relation item: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create relation: %w", err)
	}
	return nil
}

// Get retrieves the relation stored exactly as (firstID, secondID)
func (r *PostgresItemRelationRepository) Get(ctx context.Context, firstID, secondID string) (*models.ItemRelation, error) {
	query := fmt.Sprintf(`
		SELECT first_item_id, second_item_id, created_at
		FROM %s
		WHERE first_item_id = $1 AND second_item_id = $2
	`, r.tables.ItemRelations)

	var relation models.ItemRelation
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, firstID, secondID).Scan(
		&relation.FirstItemID,
		&relation.SecondItemID,
		&relation.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("relation %s:%s: %w", firstID, secondID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get relation: %w", err)
	}
	return &relation, nil
}

// ListForItem retrieves relations with itemID on either side
func (r *PostgresItemRelationRepository) ListForItem(ctx context.Context, itemID string) ([]models.ItemRelation, error) {
	query := fmt.Sprintf(`
		SELECT first_item_id, second_item_id, created_at
		FROM %s
		WHERE first_item_id = $1 OR second_item_id = $1
		ORDER BY created_at
	`, r.tables.ItemRelations)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}
	defer rows.Close()

	relations := []models.ItemRelation{}
	for rows.Next() {
		var relation models.ItemRelation
		if err := rows.Scan(&relation.FirstItemID, &relation.SecondItemID, &relation.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		relations = append(relations, relation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relations: %w", err)
	}
	return relations, nil
}

// Delete removes the relation stored exactly as (firstID, secondID)
func (r *PostgresItemRelationRepository) Delete(ctx context.Context, firstID, secondID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE first_item_id = $1 AND second_item_id = $2
	`, r.tables.ItemRelations)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, firstID, secondID)
	if err != nil {
		return fmt.Errorf("delete relation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("relation %s:%s: %w", firstID, secondID, domain.ErrNotFound)
	}
	return nil
}
