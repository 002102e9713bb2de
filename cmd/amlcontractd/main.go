package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhiraj-inti/aml-application/cmd/amlcontractd/api"
	"github.com/dhiraj-inti/aml-application/cmd/amlcontractd/bootstrap"
	"github.com/dhiraj-inti/aml-application/cmd/amlcontractd/handlers"
	"github.com/dhiraj-inti/aml-application/internal/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/tokenized/pkg/logger"
)

var (
	buildVersion = "unknown"
	buildDate    = "unknown"
	buildUser    = "unknown"
)

// AML Oracle Contract Daemon
//
func main() {
	// -------------------------------------------------------------------------
	// Config

	cfg, err := config.Environment()
	if err != nil {
		ctx := bootstrap.NewContextWithLogger(&config.Config{})
		logger.Fatal(ctx, "main : Parsing Config : %s", err)
	}

	// -------------------------------------------------------------------------
	// Logging

	ctx := bootstrap.NewContextWithLogger(cfg)

	// -------------------------------------------------------------------------
	// App Starting

	logger.Info(ctx, "main : Started : Application Initializing")
	defer logger.Info(ctx, "main : Completed")

	logger.Info(ctx, "main : Build %v (%v on %v)", buildVersion, buildUser, buildDate)

	bootstrap.LogConfig(ctx, cfg)

	// -------------------------------------------------------------------------
	// Start Database / Storage

	logger.Info(ctx, "main : Started : Initialize Database")

	masterDB := bootstrap.NewMasterDB(ctx, cfg)
	defer masterDB.Close()

	if err := masterDB.StatusCheck(ctx); err != nil {
		logger.Fatal(ctx, "main : Storage unavailable : %s", err)
	}

	// -------------------------------------------------------------------------
	// Contract

	validator := bootstrap.NewAddressValidator(cfg)

	if err := bootstrap.InitializeContract(ctx, cfg, masterDB, validator); err != nil {
		logger.Fatal(ctx, "main : Initialize contract : %s", err)
	}

	app := handlers.API(masterDB, validator)

	// -------------------------------------------------------------------------
	// HTTP

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(ctx, app, masterDB, validator)
	httpServer := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      server.Router(cfg.HTTP.CORSOrigins),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info(ctx, "main : Listening on %s", cfg.HTTP.Address)
		serverErrors <- httpServer.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "main : Server failed : %s", err)
		}

	case <-osSignals:
		logger.Info(ctx, "main : Start shutdown...")

		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "main : Graceful shutdown did not complete : %s", err)
			httpServer.Close()
		}
	}
}
