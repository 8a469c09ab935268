package main

import (
	"context"
	"flag"
	"log"

	"scrumboard/internal/config"
	"scrumboard/internal/repository/postgres"
	postgresScrum "scrumboard/internal/repository/postgres/scrum"
	"scrumboard/internal/seed"
	serviceScrum "scrumboard/internal/service/scrum"

	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't load fixtures")
	fixture := flag.String("fixture", "board", "Embedded fixture to load")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	logger.Info("seed starting",
		"environment", cfg.Environment,
		"table_prefix", cfg.TablePrefix,
		"drop_tables", *dropTables,
		"schema_only", *schemaOnly,
	)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		if err := postgres.DropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		logger.Info("tables dropped")
	}

	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("schema ready")

	if *schemaOnly {
		return
	}

	f, err := seed.Load(*fixture)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	services := serviceScrum.SetupServices(&serviceScrum.Repositories{
		Projects:    postgresScrum.NewProjectRepository(repoConfig),
		Sprints:     postgresScrum.NewSprintRepository(repoConfig),
		Items:       postgresScrum.NewItemRepository(repoConfig),
		Relations:   postgresScrum.NewItemRelationRepository(repoConfig),
		Comments:    postgresScrum.NewCommentRepository(repoConfig),
		Memberships: postgresScrum.NewMembershipRepository(repoConfig),
		Users:       postgresScrum.NewUserRepository(repoConfig),
		Tx:          postgres.NewTransactionManager(pool, logger),
	}, cfg, logger)

	seeder := seed.NewSeeder(seed.Services{
		Users:     services.Users,
		Projects:  services.Projects,
		Members:   services.Members,
		Sprints:   services.Sprints,
		Items:     services.Items,
		Relations: services.Relations,
	}, logger)

	if err := seeder.Apply(ctx, f); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}
	logger.Info("seeding complete", "fixture", *fixture)
}
