package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nutrileaf/nutrileaf-client/config"
	"github.com/nutrileaf/nutrileaf-client/internal/app/controller"
	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/broadcast"
	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
	"github.com/nutrileaf/nutrileaf-client/internal/router"
	"github.com/nutrileaf/nutrileaf-client/internal/scheduler"
	"github.com/nutrileaf/nutrileaf-client/internal/session"
	"github.com/nutrileaf/nutrileaf-client/internal/store"
	"github.com/nutrileaf/nutrileaf-client/internal/websocket"
	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
	"github.com/nutrileaf/nutrileaf-client/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting NutriLeaf client gateway", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"backend":     cfg.Backend.BaseURL,
		"log_level":   logLevel,
	})

	// Connect client-state storage
	redisClient, err := redis.Connect(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect redis", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// State-synchronization core
	changeSignal := broadcast.NewRedisSignal(redisClient, cfg.Storage.Prefix)
	broadcaster := broadcast.New(changeSignal)
	go changeSignal.Listen(ctx, broadcaster.DeliverRemote)

	storage := store.NewRedisStorage(redisClient, cfg.Storage.Prefix)
	cartStore := store.NewCartStore(storage, broadcaster)

	// Upstream backend client and session cache
	backendClient := backend.NewClient(cfg.Backend)
	sessionCache := session.NewCache(storage, broadcaster, backendClient, cfg.Session.StrictRole)

	// Tab notification hub
	hub := websocket.NewHub()
	go hub.Run()
	hub.BindTo(broadcaster)

	// Fallback profile refresh poll
	profilePoller := scheduler.NewProfilePoller(sessionCache, cfg.Poller.ProfileRefreshCron)
	if err := profilePoller.Start(); err != nil {
		logger.Fatal("Failed to start profile poller", err)
	}
	defer profilePoller.Stop()

	// Surfaces
	navController := controller.NewNavController(cartStore, sessionCache)
	authController := controller.NewAuthController(backendClient, sessionCache)
	marketController := controller.NewMarketController(backendClient)
	cartController := controller.NewCartController(cartStore)
	checkoutController := controller.NewCheckoutController(cartStore, backendClient)
	orderController := controller.NewOrderController(backendClient)
	forumController := controller.NewForumController(backendClient)
	chatController := controller.NewChatController(backendClient)
	scanController := controller.NewScanController(backendClient)
	adminController := controller.NewAdminController(backendClient)
	wsController := controller.NewWSController(hub)

	sessionMiddleware := middleware.NewSessionMiddleware(sessionCache)

	// Setup router
	r := router.NewRouter(
		navController,
		authController,
		marketController,
		cartController,
		checkoutController,
		orderController,
		forumController,
		chatController,
		scanController,
		adminController,
		wsController,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Gateway started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start gateway", err)
		}
	}()

	// Wait for interrupt signal to shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gateway gracefully...")
	logger.Info("Gateway stopped successfully")
}
