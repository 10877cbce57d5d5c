package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/terminal-bench/truckconfig/internal/config"
	"github.com/terminal-bench/truckconfig/internal/engine"
	"github.com/terminal-bench/truckconfig/internal/handlers"
	"github.com/terminal-bench/truckconfig/internal/middleware"
	"github.com/terminal-bench/truckconfig/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := repository.NewDB(cfg)
	if err != nil {
		zap.S().Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	catalogRepo := repository.NewCatalogRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	configRepo := repository.NewConfigRepository(db)

	cachedCatalog := repository.NewCachedCatalog(catalogRepo, cfg.RedisURL, cfg.CacheTTL)
	defer cachedCatalog.Close()

	schema, err := engine.LoadSpecSchema(cfg.SpecSchemaPath)
	if err != nil {
		zap.S().Fatalf("Failed to load spec schema: %v", err)
	}

	eng := engine.New(cachedCatalog, ruleRepo, schema)

	router := setupRouter(cfg, logger, eng, catalogRepo, cachedCatalog, configRepo)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		zap.S().Infof("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Fatalf("Server Shutdown: %v", err)
	}

	zap.S().Info("Server exiting")
}

func setupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	eng *engine.Engine,
	modelStore handlers.ModelStore,
	catalog engine.CatalogStore,
	configStore handlers.ConfigStore,
) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Middleware
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		modelHandler := handlers.NewModelHandler(modelStore, catalog)
		api.GET("/models", modelHandler.List)
		api.GET("/models/:id/options", modelHandler.Options)

		validateHandler := handlers.NewValidateHandler(eng, modelStore, catalog)
		api.POST("/validate", validateHandler.Validate)
		api.POST("/summary", validateHandler.Summary)
		api.POST("/selections/toggle", validateHandler.Toggle)

		configHandler := handlers.NewConfigHandler(configStore, modelStore, catalog)
		api.GET("/configs", configHandler.List)
		api.GET("/configs/:id", configHandler.Get)
		api.POST("/configs", configHandler.Create)
		api.PUT("/configs/:id", configHandler.Rename)
		api.DELETE("/configs/:id", configHandler.Delete)
	}

	return router
}
