package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/config"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/api"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/auth"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/db"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/ledger"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/notification"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "stayease ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Auth.Username == "" || cfg.Auth.PasswordHash == "" {
		logger.Fatalf("admin credentials must be configured (auth.username, auth.password_hash)")
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Web push is optional; without VAPID keys booking events are not pushed.
	var notifier ledger.Notifier
	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		notifier = pool
		logger.Printf("notification worker pool started with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; booking notifications disabled")
	}

	bookingLedger := ledger.New(appStore, notifier)
	authSvc := auth.NewService(&cfg.Auth)

	// Initialize router
	router := api.NewRouter(appStore, bookingLedger, authSvc, cfg, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
