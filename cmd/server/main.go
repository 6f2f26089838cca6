// Command main is the entry point for the Folio API server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/bootstrap"
	"folio/internal/config"
	"folio/internal/middleware"
	"folio/internal/server"
)

// @title Folio API
// @version 1.0
// @description Portfolio and blog API: projects, articles, tags and image uploads.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@folio.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(cfg, bootstrap.Options{EnsureAdmin: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	srv, err := server.NewServerWithDeps(cfg, rt.DB, rt.Cache)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	err = serve(srv.Start, sigChan, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			middleware.Logger.Error("server shutdown error", slog.String("error", err.Error()))
		}
		rt.ShutdownTracing(ctx)
	})
	if err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// serve runs start until a signal arrives, then runs shutdown. It returns only
// after shutdown has finished, so connections are closed and spans flushed
// before the process exits.
func serve(start func() error, signals <-chan os.Signal, shutdown func(context.Context)) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-signals

		middleware.Logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdown(ctx)
	}()

	if err := start(); err != nil {
		return err
	}
	<-done
	return nil
}
