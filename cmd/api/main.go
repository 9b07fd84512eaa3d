package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"healthvault/internal/auth"
	"healthvault/internal/cache"
	"healthvault/internal/config"
	"healthvault/internal/database"
	"healthvault/internal/database/migration"
	handlers "healthvault/internal/http/handler"
	"healthvault/internal/http/middleware"
	"healthvault/internal/otel"
	"healthvault/internal/repository"
	"healthvault/internal/repository/memory"
	"healthvault/internal/repository/postgres"
	"healthvault/internal/service"
	"healthvault/internal/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Data storage backend, selected explicitly by configuration. Both
	// backends satisfy the same repository contracts.
	var (
		db       *sql.DB
		users    repository.UserRepository
		records  repository.MedicalRecordRepository
		wellness repository.WellnessEntryRepository
	)
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		users = postgres.NewUserPostgres(db)
		records = postgres.NewMedicalRecordPostgres(db)
		wellness = postgres.NewWellnessEntryPostgres(db)
	case config.DriverMemory:
		log.Warn("memory storage selected: data will not survive a restart")
		users = memory.NewUserMemory()
		records = memory.NewMedicalRecordMemory()
		wellness = memory.NewWellnessEntryMemory()
	}

	// File storage for uploaded documents
	var objStore storage.Storage
	switch cfg.FileStorage {
	case config.FileStorageMinIO:
		objStore, err = storage.NewMinIO(cfg.MinIO)
	case config.FileStorageLocal:
		objStore, err = storage.NewFS(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("failed to initialize file storage: %v", err)
	}

	// Optional Redis cache for the list endpoints
	var listCache *cache.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		listCache = cache.New(rdb, 5*time.Minute)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret)
	svcs := handlers.Services{
		Auth:     service.NewAuthService(users, tokens),
		Records:  service.NewRecordService(objStore, records, listCache),
		Wellness: service.NewWellnessService(wellness, listCache),
		Tips:     service.NewTipService(),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Leave headroom above the 5 MiB file limit for multipart framing
		BodyLimit: 8 * 1024 * 1024,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// Structured request logs
	app.Use(middleware.Logger(log))
	// Trace every request
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, tokens, users, svcs)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
