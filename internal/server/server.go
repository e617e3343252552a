package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"luxury-market/internal/auth"
	"luxury-market/internal/config"
	custommiddleware "luxury-market/internal/middleware"
	"luxury-market/internal/repository"
	"luxury-market/internal/service"
	"luxury-market/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config       *config.Config
	logger       *zap.Logger
	db           *sql.DB
	loginLimiter *custommiddleware.FixedWindowLimiter
}

// NewServer wires the storefront API. db is nil when the JSON-file backend is
// in use; both backends sit behind the same repository interfaces.
func NewServer(cfg *config.Config, log *zap.Logger, db *sql.DB) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(log))
	router.Use(custommiddleware.LoggingMiddleware(log))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.IsDevelopment()))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	var (
		productRepo      repository.ProductRepository
		categoryStore    repository.CategoryStore
		subcategoryStore repository.CategoryStore
	)
	if db != nil {
		productRepo = repository.NewPostgresProductRepository(db)
		categoryStore = repository.NewPostgresCategoryStore(db, repository.CategoriesTable)
		subcategoryStore = repository.NewPostgresCategoryStore(db, repository.ModeSubcategoriesTable)
	} else {
		productRepo = repository.NewFileProductRepository(cfg.Storage.DataDir, log)
		categoryStore = repository.NewFileCategoryStore(cfg.Storage.DataDir, repository.CategoriesFile, log)
		subcategoryStore = repository.NewFileCategoryStore(cfg.Storage.DataDir, repository.ModeSubcategoriesFile, log)
	}

	// Initialize services
	productService := service.NewProductService(productRepo)
	categoryService := service.NewCategoryService(productRepo, categoryStore, subcategoryStore)
	checkoutService := service.NewCheckoutService(cfg.Checkout.WhatsAppNumber)
	uploadService, err := service.NewUploadService(cfg.Upload.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init uploads: %w", err)
	}
	if uploadService == nil {
		log.Warn("CLOUDINARY_URL not set, image uploads disabled")
	}

	// Initialize handlers
	sessions := auth.NewSessions(cfg.Admin.Password)
	authHandler := transport.NewAuthHandler(sessions, cfg.Admin.Password, !cfg.IsDevelopment(), log)
	productHandler := transport.NewProductHandler(productService, categoryService, log)
	categoryHandler := transport.NewCategoryHandler(categoryService, log)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, log)
	uploadHandler := transport.NewUploadHandler(uploadService, log)

	// Create admin auth middleware and the login rate limiter
	adminMiddleware := custommiddleware.AdminAuthMiddleware(sessions, log)
	limiter := custommiddleware.NewFixedWindowLimiter(10, time.Minute)
	loginLimiter := custommiddleware.RateLimitMiddleware(limiter, log)

	// Register routes
	authHandler.RegisterRoutes(router, loginLimiter)
	productHandler.RegisterRoutes(router, adminMiddleware)
	categoryHandler.RegisterRoutes(router, adminMiddleware)
	checkoutHandler.RegisterRoutes(router)
	uploadHandler.RegisterRoutes(router, adminMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:       cfg,
		logger:       log,
		db:           db,
		loginLimiter: limiter,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	s.loginLimiter.Stop()

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
