package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/config"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/services"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/infrastructure/cache"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/infrastructure/database"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/infrastructure/database/repositories"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/interfaces/handlers"
	"github.com/wapjude/CP-2-Document-Mangement-system/pkg/logger"
)

// NewRouter wires the API routes. Split out from Run so tests can
// serve the exact same routing over fake repositories.
func NewRouter(authSvc *services.AuthService, docSvc *services.DocumentService) *gin.Engine {
	authHandler := handlers.NewAuthHandler(authSvc)
	docHandler := handlers.NewDocumentHandler(docSvc)
	userHandler := handlers.NewUserHandler(docSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/users", authHandler.Signup)
		api.POST("/users/login", authHandler.Login)

		authed := api.Group("", handlers.AuthRequired(authSvc))
		{
			authed.POST("/users/logout", authHandler.Logout)
			authed.GET("/users/:id/documents", userHandler.Documents)

			authed.POST("/documents", docHandler.Create)
			authed.GET("/documents", docHandler.List)
			authed.GET("/documents/:id", docHandler.GetByID)
			authed.PUT("/documents/:id", docHandler.Update)
			authed.DELETE("/documents/:id", docHandler.Delete)
		}
	}

	return r
}

func Run(cfg config.Config) error {
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	userRepo := repositories.NewUserRepository(db.DB())
	docRepo := repositories.NewDocumentRepository(db.DB())
	sessionRepo := repositories.NewSessionRepository(db.DB())

	cacheSvc := services.NewRedisCacheService(redisClient, cfg.Auth.CacheDuration)
	authSvc := services.NewAuthService(userRepo, sessionRepo, cfg.Auth.TokenDuration)
	docSvc := services.NewDocumentService(docRepo, cacheSvc)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      NewRouter(authSvc, docSvc),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
