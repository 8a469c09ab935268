package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"scrumboard/internal/auth"
	"scrumboard/internal/config"
	"scrumboard/internal/handler"
	"scrumboard/internal/middleware"
	"scrumboard/internal/repository/postgres"
	postgresScrum "scrumboard/internal/repository/postgres/scrum"
	serviceScrum "scrumboard/internal/service/scrum"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		logger.Info("schema ready")
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

	logger.Info("services initialized")

	mux := http.NewServeMux()
	registerRoutes(mux, services, logger)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLogger → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(jwtVerifier, services.Users, logger)(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func registerRoutes(mux *http.ServeMux, services *serviceScrum.Services, logger *slog.Logger) {
	projectHandler := handler.NewProjectHandler(services.Projects, logger)
	memberHandler := handler.NewMemberHandler(services.Members, logger)
	sprintHandler := handler.NewSprintHandler(services.Sprints, logger)
	itemHandler := handler.NewItemHandler(services.Items, logger)
	commentHandler := handler.NewCommentHandler(services.Comments, logger)
	relationHandler := handler.NewRelationHandler(services.Relations, logger)
	userHandler := handler.NewUserHandler(services.Users, logger)

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// User routes
	mux.HandleFunc("GET /api/users/me", userHandler.GetMe)
	mux.HandleFunc("DELETE /api/users/me", userHandler.DeleteMe)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	// Membership routes
	mux.HandleFunc("GET /api/projects/{id}/members", memberHandler.ListMembers)
	mux.HandleFunc("POST /api/projects/{id}/members", memberHandler.AddMember)
	mux.HandleFunc("PATCH /api/projects/{id}/members/{userId}", memberHandler.ChangeRole)
	mux.HandleFunc("DELETE /api/projects/{id}/members/{userId}", memberHandler.RemoveMember)

	// Sprint routes
	mux.HandleFunc("GET /api/projects/{id}/sprints", sprintHandler.ListSprints)
	mux.HandleFunc("POST /api/projects/{id}/sprints", sprintHandler.CreateSprint)
	mux.HandleFunc("GET /api/sprints/{id}", sprintHandler.GetSprint)
	mux.HandleFunc("PUT /api/sprints/{id}", sprintHandler.UpdateSprint)
	mux.HandleFunc("DELETE /api/sprints/{id}", sprintHandler.DeleteSprint)

	// Item routes
	mux.HandleFunc("GET /api/sprints/{id}/items", itemHandler.ListItems)
	mux.HandleFunc("POST /api/sprints/{id}/items", itemHandler.CreateItem)
	mux.HandleFunc("GET /api/items/{id}", itemHandler.GetItem)
	mux.HandleFunc("PUT /api/items/{id}", itemHandler.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", itemHandler.DeleteItem)
	mux.HandleFunc("POST /api/items/{id}/archive", itemHandler.ArchiveItem)

	// Comment routes
	mux.HandleFunc("GET /api/items/{id}/comments", commentHandler.ListComments)
	mux.HandleFunc("POST /api/items/{id}/comments", commentHandler.CreateComment)
	mux.HandleFunc("PATCH /api/comments/{id}", commentHandler.UpdateComment)
	mux.HandleFunc("DELETE /api/comments/{id}", commentHandler.DeleteComment)

	// Relation routes
	mux.HandleFunc("GET /api/items/{id}/relations", relationHandler.ListRelatedItems)
	mux.HandleFunc("POST /api/items/{id}/relations", relationHandler.CreateRelation)
	mux.HandleFunc("DELETE /api/items/{id}/relations/{otherId}", relationHandler.DeleteRelation)
}
