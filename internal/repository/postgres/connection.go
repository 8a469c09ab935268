package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"scrumboard/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users         string
	Projects      string
	Memberships   string
	Sprints       string
	Items         string
	ItemRelations string
	Comments      string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:         prefix + "users",
		Projects:      prefix + "projects",
		Memberships:   prefix + "project_memberships",
		Sprints:       prefix + "sprints",
		Items:         prefix + "items",
		ItemRelations: prefix + "item_relations",
		Comments:      prefix + "comments",
	}
}

// All returns the tables in dependency order (referenced tables first)
func (t *TableNames) All() []string {
	return []string{t.Users, t.Projects, t.Memberships, t.Sprints, t.Items, t.ItemRelations, t.Comments}
}

// CreateConnectionPool creates a pgx connection pool and pings the database.
//
// Connections through a transaction pooler (PgBouncer, port 6543) cannot use
// prepared statements, so unless the URL sets default_query_exec_mode
// explicitly the pool switches to QueryExecModeCacheDescribe on that port.
// Table prefixes are interpolated into the SQL text before it is sent, so
// every prefix gets its own cached statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or the pool when
// there is none, so repositories join an ongoing transaction automatically.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
