package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/studentportal/internal/app/controllers"
	appMigrations "github.com/yigit/studentportal/internal/app/migrations"
	appRepos "github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/app/repositories/memory"
	appRoutes "github.com/yigit/studentportal/internal/app/routes"
	appServices "github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/config"
	"github.com/yigit/studentportal/internal/db"
	appMiddleware "github.com/yigit/studentportal/internal/middleware"
	pkgAuth "github.com/yigit/studentportal/internal/pkg/auth"
	"github.com/yigit/studentportal/internal/pkg/email"
	"github.com/yigit/studentportal/internal/pkg/filestorage"
	"github.com/yigit/studentportal/internal/pkg/helpers"
	"github.com/yigit/studentportal/internal/pkg/logger"
	"github.com/yigit/studentportal/internal/seed"
)

// Backend is the data source behind the repositories
type Backend struct {
	Name  string
	Repos *appRepos.Repositories
	DB    *db.PostgresDB // nil for the mock backend
	Mock  *memory.Store  // nil for the postgres backend
}

// Close releases the backend connections
func (b *Backend) Close() {
	if b.DB != nil {
		b.DB.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Backend     *Backend
	Services    *appServices.Services
	Sessions    *appMiddleware.SessionMiddleware
	Controllers appRoutes.Controllers
	Storage     *filestorage.LocalStorage
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Str("mode", cfg.Server.Mode).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupBackend connects to the hosted backend, or builds the mock data set in
// development mode when no backend is configured.
func SetupBackend(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Backend, error) {
	if cfg.UseMockBackend() {
		lgr.Warn().Msg("Backend URL or API key missing, using the in-memory mock data set")
		store, err := memory.NewMockStore()
		if err != nil {
			return nil, fmt.Errorf("failed to build mock data set: %w", err)
		}
		return &Backend{Name: appControllers.BackendMock, Repos: store.Repositories(), Mock: store}, nil
	}

	lgr.Info().Msg("Establishing backend connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to backend")
		return nil, err
	}
	lgr.Info().Msg("Backend connection successfully established.")

	if err := runMigrations(ctx, cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, database, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return &Backend{Name: appControllers.BackendPostgres, Repos: appRepos.NewRepositories(database.Pool), DB: database}, nil
}

func runMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Warn().Str("path", migrationsDir).Msg("Migrations directory not found, skipping migrations")
		return nil
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes storage, services, middleware and controllers.
func BuildDependencies(cfg *config.Config, backend *Backend, clock appServices.Clock, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Backend: backend, Logger: lgr}

	var err error
	deps.Storage, err = filestorage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.Bucket)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	secret := cfg.Session.Secret
	if secret == "" {
		// Sessions do not survive a restart without a configured secret
		secret = uuid.NewString()
		lgr.Warn().Msg("No session secret configured, using an ephemeral one")
	}
	codec := pkgAuth.NewSessionCodec(pkgAuth.SessionConfig{
		SecretKey: secret,
		TTL:       helpers.ParseDuration(cfg.Session.TTL, 720*time.Hour),
		Issuer:    cfg.Session.Issuer,
	})

	mailer := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	deps.Services = appServices.NewServices(
		backend.Repos,
		deps.Storage,
		mailer,
		codec,
		appServices.Options{DefaultAvatar: cfg.Session.DefaultAvatar},
		clock,
		lgr,
	)

	deps.Sessions = appMiddleware.NewSessionMiddleware(codec, cfg.Session.SecureCookie, lgr)

	s := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(s.Auth, deps.Sessions, lgr),
		Application: appControllers.NewApplicationController(s.Application, lgr),
		Dashboard:   appControllers.NewDashboardController(s.Dashboard),
		Document:    appControllers.NewDocumentController(s.Document),
		Finance:     appControllers.NewFinanceController(s.Finance),
		Visa:        appControllers.NewVisaController(s.Visa),
		Profile:     appControllers.NewProfileController(s.Profile),
		Support:     appControllers.NewSupportController(s.Support, lgr),
		Services:    appControllers.NewServicesController(s.Hostel, lgr),
		Health:      appControllers.NewHealthController(backend.Name),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with templates, middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	appRoutes.SetupRouter(router, deps.Controllers, deps.Sessions)
	return router, nil
}
