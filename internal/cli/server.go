// filepath: internal/cli/server.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallerysaver/internal/api/handlers"
	"gallerysaver/internal/httpserver"
	"gallerysaver/internal/logging"
	"gallerysaver/internal/services"
	"gallerysaver/internal/services/auth"
)

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer(globalOptions *GlobalOptions) error {
	cfg := globalOptions.Conf

	a, err := newApp(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer a.Close()

	if a.registry != nil {
		if version, err := a.registry.SchemaVersion(); err == nil {
			logging.Log.Infof("Registry schema version: %d", version)
		}
	}

	infoService := services.NewInfoService(Version, StartTime, a.caps, cfg.Storage.APILevel)

	var tokenService auth.TokenService
	var authMiddleware *auth.Middleware
	if cfg.Auth.Secret != "" {
		tokenService = auth.NewTokenService(cfg.Auth.Secret)
	}
	if cfg.Auth.Enabled() {
		authMiddleware = auth.NewMiddleware(tokenService, cfg.Auth.Username, cfg.Auth.PasswordHash)
	} else {
		logging.Log.Warn("Authentication is disabled: set auth.secret or auth.password_hash to protect the API.")
	}

	a.housekeeping.Start()
	// No defer stop here, we stop explicitly during graceful shutdown

	h := handlers.NewHandlers(infoService, a.gallery, a.housekeeping, tokenService, cfg)
	r := httpserver.SetupRouter(h, authMiddleware)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logging.Log.Infof("Server starting on %s (Max Request Size: %s)", serverAddr, cfg.Server.MaxRequestSize)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serveErr:
		a.housekeeping.Stop()
		return fmt.Errorf("server failed to start: %w", err)
	}
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.housekeeping.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
