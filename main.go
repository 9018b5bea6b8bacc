// main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/kettleops/bulkrest/internal/bulk"
	"github.com/kettleops/bulkrest/internal/config"
	"github.com/kettleops/bulkrest/internal/notify"
	"github.com/kettleops/bulkrest/internal/resource"
	"github.com/kettleops/bulkrest/internal/server"
	"github.com/kettleops/bulkrest/internal/store"
	"github.com/kettleops/bulkrest/internal/utils"
	"go.uber.org/zap"
)

func main() {
	// Initialize logging first
	if err := utils.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer utils.Sync()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		utils.Logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	utils.Logger.Info("Configuration loaded successfully")

	// Open the entity store
	db, err := store.Open(appConfig.DBPath)
	if err != nil {
		utils.Logger.Fatal("Failed to open database", zap.Error(err))
	}
	contacts := store.NewContactStore(db)

	// Wire the bulk pipeline
	schema := resource.ContactSchema()
	orch := bulk.NewOrchestrator(schema, appConfig.AllowEmptyBulk)
	coord := bulk.NewCoordinator(orch, contacts)

	var notifier *notify.Notifier
	if appConfig.WebhookURL != "" {
		notifier = notify.New(appConfig.WebhookURL)
	}

	// Setup HTTP server
	router := server.NewRouter(appConfig, schema, contacts, coord, notifier)
	startServer(router, appConfig)
}

// startServer binds the HTTP server and handles graceful shutdown signals.
func startServer(router http.Handler, appConfig *config.Config) {
	portStr := strconv.Itoa(appConfig.Port)
	addr := fmt.Sprintf("%s:%s", appConfig.APIHost, portStr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.DefaultReadTimeout,
		WriteTimeout: config.DefaultWriteTimeout,
		IdleTimeout:  config.DefaultIdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		utils.Logger.Info("Shutdown signal received", zap.String(utils.FieldSignal, sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			utils.Logger.Error("Server shutdown error", zap.Error(err))
		}
	}()

	utils.Logger.Info("Server starting",
		zap.String(utils.FieldHost, appConfig.APIHost),
		zap.String(utils.FieldPort, portStr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		utils.Logger.Fatal("Server failed to start", zap.Error(err))
	}

	utils.Logger.Info("Server stopped")
}
