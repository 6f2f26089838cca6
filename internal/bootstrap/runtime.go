// Package bootstrap wires the process-level dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/middleware"
	"folio/internal/observability"
	"folio/internal/seed"

	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// EnsureAdmin provisions the configured operator account when
	// ADMIN_EMAIL and ADMIN_PASSWORD are both set.
	EnsureAdmin bool
	// SkipTracing leaves the no-op tracer in place.
	SkipTracing bool
}

// Runtime holds the connections a command needs.
type Runtime struct {
	DB    *gorm.DB
	Cache *cache.Store

	shutdownTracing func(context.Context) error
}

// InitRuntime starts tracing, connects to the database and Redis, and
// optionally provisions the operator account. Redis is optional: an
// unreachable server yields a disabled Store.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	rt := &Runtime{shutdownTracing: func(context.Context) error { return nil }}

	if !opts.SkipTracing {
		shutdown, err := observability.InitTracing(observability.TracingConfig{
			ServiceName:    "folio-api",
			ServiceVersion: "1.0.0",
			Environment:    cfg.Env,
			Enabled:        cfg.TracingEnabled,
			Exporter:       cfg.TracingExporter,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SamplerRatio:   cfg.TracingSampleRatio,
		})
		if err != nil {
			return nil, fmt.Errorf("tracing init failed: %w", err)
		}
		rt.shutdownTracing = shutdown
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	rt.DB = db
	rt.Cache = cache.Connect(cfg.RedisURL)

	if opts.EnsureAdmin && cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := seed.EnsureAdmin(context.Background(), db, seed.AdminOptions{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			Name:     cfg.AdminName,
		})
		if err != nil {
			rt.Close(context.Background())
			return nil, fmt.Errorf("failed to provision admin user: %w", err)
		}
		if created {
			middleware.Logger.Info("admin user created", slog.String("email", cfg.AdminEmail))
		}
	}

	return rt, nil
}

// Close releases the connections and flushes pending spans.
func (r *Runtime) Close(ctx context.Context) {
	if err := database.Close(r.DB); err != nil {
		middleware.Logger.Error("error closing sql DB", slog.String("error", err.Error()))
	}
	if err := r.Cache.Close(); err != nil {
		middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
	}
	r.ShutdownTracing(ctx)
}

// ShutdownTracing flushes pending spans.
func (r *Runtime) ShutdownTracing(ctx context.Context) {
	if err := r.shutdownTracing(ctx); err != nil {
		middleware.Logger.Error("error shutting down tracer", slog.String("error", err.Error()))
	}
}
