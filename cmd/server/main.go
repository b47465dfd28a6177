package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/haventalk/haventalk-be/internal/api"
	"github.com/haventalk/haventalk-be/internal/api/middleware"
	"github.com/haventalk/haventalk-be/internal/chat"
	"github.com/haventalk/haventalk-be/internal/classifier"
	"github.com/haventalk/haventalk-be/internal/config"
	"github.com/haventalk/haventalk-be/internal/db"
	"github.com/haventalk/haventalk-be/internal/language"
	"github.com/haventalk/haventalk-be/internal/ws"
	"github.com/haventalk/haventalk-be/pkg/translate"
	"github.com/haventalk/haventalk-be/pkg/xai"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	database, err := db.NewFromURL(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := runMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database ready")

	// Language bridge: detector plus a translation chain with fallback.
	var bridge chat.BridgeInterface
	if cfg.TranslationEnabled {
		chain := translate.NewChain(logger,
			translate.NewGoogleProvider(translate.GoogleConfig{}),
			translate.NewMyMemoryProvider(translate.MyMemoryConfig{}),
		)
		bridge = language.NewBridge(language.NewLinguaDetector(), chain, logger)
		logger.Info("translation enabled")
	} else {
		logger.Info("translation disabled, serving English only")
	}

	xaiClient := xai.NewHTTPClient(xai.Config{
		APIKey:  cfg.XAIAPIKey,
		BaseURL: cfg.XAIBaseURL,
		Model:   cfg.XAIModel,
	})

	engine := chat.NewEngine(classifier.NewClassifier(), bridge, xaiClient, database, logger)

	revoker := middleware.NewRevoker()
	authHandler := api.NewAuthHandler(database, cfg.JWTSecret, revoker, logger)
	chatHandler := api.NewChatHandler(engine, database, logger)
	wsHandler := ws.NewChatHandler(engine, cfg.JWTSecret, revoker, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.PerIP(100.0/60.0, 200)) // 100/min per IP

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", middleware.PerIP(5.0/60.0, 5), authHandler.Signup)
		auth.POST("/login", middleware.PerIP(10.0/60.0, 10), authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.JWTAuth(cfg.JWTSecret, revoker))
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/me", authHandler.Me)
	}

	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.JWTAuth(cfg.JWTSecret, revoker))
	apiGroup.Use(middleware.PerUser(30.0/60.0, 10)) // 30/min per user
	{
		apiGroup.GET("/models", chatHandler.Models)
		apiGroup.POST("/sessions", middleware.PerUser(10.0/60.0, 10), chatHandler.CreateSession)
		apiGroup.POST("/chat", chatHandler.Chat)
		apiGroup.GET("/history", chatHandler.History)
		apiGroup.POST("/history/clear", chatHandler.ClearHistory)
	}

	// WebSocket chat route (token via query param or header)
	router.GET("/ws/chat", wsHandler.HandleChat)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func runMigrations(database *db.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(database.DB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
