package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/config"
	"github.com/kampki/lifeofki/backend/internal/api"
	"github.com/kampki/lifeofki/backend/internal/database"
	"github.com/kampki/lifeofki/backend/internal/middleware"
	"github.com/kampki/lifeofki/backend/internal/service"
	"github.com/kampki/lifeofki/backend/internal/wizard"
)

// Server owns the HTTP surface and the services behind it.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// New wires the service graph and registers every route group.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *Server {
	cache := service.NewAnalyticsCache(redisClient)

	authService := service.NewAuthService(db, cfg.JWTSecret)
	entryService := service.NewEntryService(db, cache, logger)
	favoriteService := service.NewFavoriteService(db, logger)
	nutritionService := service.NewNutritionService(db, favoriteService, logger)
	preferencesService := service.NewPreferencesService(db)
	reflectionService := service.NewReflectionService(db, preferencesService)
	analyticsService := service.NewAnalyticsService(db, cache, logger)
	wizardManager := wizard.NewManager(wizard.NewRedisSessionStore(redisClient), entryService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authService).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	api.NewEntryHandler(entryService, nutritionService).RegisterRoutes(protected)
	api.NewFavoriteHandler(favoriteService).RegisterRoutes(protected)
	api.NewAnalyticsHandler(analyticsService, entryService).RegisterRoutes(protected)
	api.NewReflectionHandler(reflectionService).RegisterRoutes(protected)
	api.NewPreferencesHandler(preferencesService).RegisterRoutes(protected)
	api.NewWizardHandler(wizardManager).RegisterRoutes(protected)

	return &Server{
		router: router,
		db:     db,
		redis:  redisClient,
		logger: logger,
		http: &http.Server{
			Addr:         cfg.ServerHost + ":" + cfg.ServerPort,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// Router exposes the gin engine, used by tests to drive requests
// without binding a port.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the redis connection.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
