package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/access"
	accessPostgres "github.com/skillbridge/skillbridge/internal/access/postgres"
	"github.com/skillbridge/skillbridge/internal/assessment"
	assessmentPostgres "github.com/skillbridge/skillbridge/internal/assessment/postgres"
	"github.com/skillbridge/skillbridge/internal/auth"
	"github.com/skillbridge/skillbridge/internal/core/events"
	"github.com/skillbridge/skillbridge/internal/dispute"
	disputePostgres "github.com/skillbridge/skillbridge/internal/dispute/postgres"
	"github.com/skillbridge/skillbridge/internal/identity"
	identityPostgres "github.com/skillbridge/skillbridge/internal/identity/postgres"
	"github.com/skillbridge/skillbridge/internal/skill"
	skillPostgres "github.com/skillbridge/skillbridge/internal/skill/postgres"
	"github.com/skillbridge/skillbridge/internal/skillgap"
	skillgapPostgres "github.com/skillbridge/skillbridge/internal/skillgap/postgres"
	"github.com/skillbridge/skillbridge/internal/training"
	trainingPostgres "github.com/skillbridge/skillbridge/internal/training/postgres"
	"github.com/skillbridge/skillbridge/internal/transport"
	"github.com/skillbridge/skillbridge/internal/transport/rest"
	"github.com/skillbridge/skillbridge/pkg/logger"
	"github.com/skillbridge/skillbridge/pkg/metrics"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	if err := validateOpenAPISpec("api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("openapi spec validation failed: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	publicKey, err := config.Identity.GetPublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to load identity provider public key: %w", err)
	}

	eventBus := events.NewEventBus(lg)

	serviceMetrics := metrics.New()
	serviceMetrics.RegisterEventHandlers(eventBus)

	// Repositories
	userRepo := identityPostgres.NewUserRepository(gormDB)
	reporteeRepo := accessPostgres.NewReporteeRepository(gormDB)
	skillRepo := skillPostgres.NewSkillRepository(gormDB)
	assessmentRepo := assessmentPostgres.NewAssessmentRepository(gormDB)
	needRepo := skillgapPostgres.NewTrainingNeedRepository(gormDB)
	disputeRepo := disputePostgres.NewDisputeRepository(gormDB)
	sessionRepo := trainingPostgres.NewSessionRepository(gormDB)

	// Services
	identityService := identity.NewService(userRepo, lg)
	accessService := access.NewService(reporteeRepo, lg)
	skillService := skill.NewService(skillRepo, lg)

	skillgapService := skillgap.NewService(needRepo, assessmentRepo, skillService, eventBus, lg)
	assessmentService := assessment.NewService(assessmentRepo, skillService, skillgapService, lg)
	disputeService := dispute.NewService(disputeRepo, assessmentService, eventBus, lg)
	trainingService := training.NewService(sessionRepo, skillgapService, lg)

	verifier := auth.NewTokenVerifier(publicKey, config.Identity.Issuer, config.Identity.Audience, config.Identity.ClockSkew)
	authService := auth.NewService(verifier, identityService, accessService, lg)

	// Handlers
	baseHandler := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		Auth:       auth.NewHandler(baseHandler),
		Skill:      skill.NewHandler(baseHandler, skillService),
		Assessment: assessment.NewHandler(baseHandler, assessmentService),
		SkillGap:   skillgap.NewHandler(baseHandler, skillgapService),
		Dispute:    dispute.NewHandler(baseHandler, disputeService),
		Training:   training.NewHandler(baseHandler, trainingService),
	}

	router := chi.NewRouter()

	var metricsHandler http.Handler
	if config.Observability.Metrics.Enabled {
		metricsHandler = serviceMetrics.Handler()
	}

	rest.RegisterAllRoutes(router, db.DB, authService, handlers, metricsHandler, config.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open connection pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}

// validateOpenAPISpec fails startup when the served contract is malformed,
// rather than letting a broken spec reach consumers.
func validateOpenAPISpec(path string) error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc.Validate(loader.Context)
}
