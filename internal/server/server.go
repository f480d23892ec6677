package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"vision-vogue/internal/config"
	custommiddleware "vision-vogue/internal/middleware"
	"vision-vogue/internal/repository"
	"vision-vogue/internal/service"
	"vision-vogue/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer wires the storefront HTTP stack. Both db and redisClient
// may be nil: without a database the catalog and orders live in
// memory, and without redis carts and likes do too.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 300,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Repositories. Postgres when configured, in-memory otherwise.
	var (
		productRepo repository.ProductRepository
		orderRepo   repository.OrderRepository
	)
	if db != nil {
		productRepo = repository.NewProductRepository(db)
		orderRepo = repository.NewOrderRepository(db)
	} else {
		logger.Warn("Database not configured, serving the fixture catalog from memory")
		productRepo = repository.NewMemoryProductRepository(repository.FixtureProducts())
		orderRepo = repository.NewMemoryOrderRepository()
	}

	var (
		cartStore  repository.CartStore
		likesStore repository.LikesStore
	)
	if redisClient != nil {
		cartStore = repository.NewRedisCartStore(redisClient, cfg.Session.TTL())
		likesStore = repository.NewRedisLikesStore(redisClient, cfg.Session.TTL())
	} else {
		logger.Warn("Redis not configured, keeping carts and likes in memory")
		cartStore = repository.NewMemoryCartStore()
		likesStore = repository.NewMemoryLikesStore()
	}

	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartStore, productRepo, logger)
	likesService := service.NewLikesService(likesStore, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	checkoutService := service.NewCheckoutService(cartStore, productRepo, orderRepo, logger)

	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	optionalAuthMiddleware := custommiddleware.OptionalAuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)

	productHandler := transport.NewProductHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	likesHandler := transport.NewLikesHandler(likesService, logger)
	orderHandler := transport.NewOrderHandler(orderService, checkoutService, logger)

	productHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	cartHandler.RegisterRoutes(router, optionalAuthMiddleware)
	likesHandler.RegisterRoutes(router, optionalAuthMiddleware)
	orderHandler.RegisterRoutes(router, authMiddleware)

	// Accounts need the database; without one the storefront stays
	// browse-and-cart only.
	if db != nil {
		userRepo := repository.NewUserRepository(db)
		refreshTokenRepo := repository.NewRefreshTokenRepository(db)
		userService := service.NewUserService(userRepo, refreshTokenRepo, cfg.JWT.Secret)
		userHandler := transport.NewUserHandler(userService, logger)
		userHandler.RegisterRoutes(router, authMiddleware)
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
