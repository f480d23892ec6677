package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vision-vogue/internal/config"
	"vision-vogue/internal/database"
	"vision-vogue/internal/logger"
	"vision-vogue/internal/repository"
	"vision-vogue/internal/server"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// In-flight requests get 30 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

// seedCatalog loads the fixture catalog into an empty products table so
// a fresh install has something to browse.
func seedCatalog(ctx context.Context, db *sql.DB, log *zap.Logger) {
	repo := repository.NewProductRepository(db)

	count, err := repo.Count(ctx)
	if err != nil {
		log.Error("Failed to count products for seeding", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	seeded := 0
	for _, product := range repository.FixtureProducts() {
		if err := repo.Create(ctx, product); err != nil {
			log.Error("Failed to seed product", zap.String("name", product.Name), zap.Error(err))
			continue
		}
		seeded++
	}
	log.Info("Seeded fixture catalog", zap.Int("products", seeded))
}

func main() {
	// .env is optional; real deployments use environment variables.
	godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting eyewear storefront API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	var db *sql.DB
	if cfg.Database.Configured() {
		db, err = database.New(cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}

		if err := database.RunMigrations(db, "migrations", log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}

		seedCatalog(context.Background(), db, log)
	} else {
		log.Warn("DB_USER/DB_DATABASE not set, running without a database")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		cancel()
	}

	srv := server.NewServer(cfg, log, db, redisClient)

	done := make(chan bool, 1)

	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
