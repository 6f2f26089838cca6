// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "folio/docs" // swagger docs
	"folio/internal/auth"
	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/featureflags"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/repository"
	"folio/internal/service"
	"folio/internal/validation"
	"folio/internal/web"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	cache          *cache.Store
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.TokenManager
	validator      *validation.Validator
	featureFlags   *featureflags.Manager
	authService    *service.AuthService
	projectService *service.ProjectService
	articleService *service.ArticleService
	tagService     *service.TagService
	uploadService  *service.UploadService
	pages          *web.Handler
}

// NewServerWithDeps creates a Server using already-initialized dependencies,
// normally the ones bootstrap.InitRuntime established. store may be
// nil, in which case caching, rate limiting and token revocation are disabled.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, store *cache.Store) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if db == nil {
		return nil, errors.New("database is required")
	}
	if store == nil {
		store = cache.NewStore(nil)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())

	s := &Server{
		config:         cfg,
		db:             db,
		cache:          store,
		promMiddleware: middleware.InitMetrics("folio-api"),
		tokens:         tokens,
		validator:      validation.New(),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	s.authService = service.NewAuthService(repository.NewUserRepository(db), auth.NewBcryptHasher(), tokens, store)
	s.projectService = service.NewProjectService(repository.NewProjectRepository(db, store))
	s.articleService = service.NewArticleService(repository.NewArticleRepository(db, store))
	s.tagService = service.NewTagService(repository.NewTagRepository(db, store))
	s.uploadService = service.NewUploadService(cfg)

	pages, err := web.New(web.Deps{
		Projects: s.projectService,
		Articles: s.articleService,
		Verifier: tokens,
		Revoked:  store,
	})
	if err != nil {
		return nil, fmt.Errorf("load page templates: %w", err)
	}
	s.pages = pages

	return s, nil
}

// App returns the Fiber application with middleware and routes attached,
// building it on first use.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	app := fiber.New(fiber.Config{
		AppName: "Folio API",
		// Multipart framing needs headroom over the largest accepted image.
		BodyLimit:    int(s.uploadService.MaxUploadSizeBytes()) + 1024*1024,
		ErrorHandler: errorHandler,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// errorHandler renders errors that escape handlers, such as unknown routes or
// oversized bodies, in the standard error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{
			Error: fe.Message,
			Code:  codeForStatus(fe.Code),
		})
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return models.Respond(c, models.NewInternalError(err))
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusUnauthorized:
		return models.CodeUnauthorized
	case status == fiber.StatusForbidden:
		return models.CodeForbidden
	case status == fiber.StatusNotFound:
		return models.CodeNotFound
	case status == fiber.StatusConflict:
		return models.CodeConflict
	case status >= fiber.StatusInternalServerError:
		return models.CodeInternal
	default:
		return models.CodeValidation
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Span first so the trace id is available to the context middleware
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New(helmet.Config{
		// Uploaded images are embedded by other origins (e.g. a separate frontend).
		CrossOriginResourcePolicy: "cross-origin",
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:3001,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	rdb := s.cache.Client()
	authRequired := middleware.AuthRequired(s.tokens, s.cache)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Stored uploads
	app.Static(service.UploadsPath, s.uploadService.Dir(), fiber.Static{
		MaxAge: 31536000,
	})

	// Auth routes
	authGroup := app.Group("/auth")
	authGroup.Post("/register", s.RegistrationEnabled(), middleware.RateLimit(
		rdb, 5, 10*time.Minute, "register"), s.Register)
	authGroup.Post("/login", middleware.RateLimit(
		rdb, 10, 5*time.Minute, "login"), s.Login)
	authGroup.Post("/logout", authRequired, s.Logout)

	// Projects
	projects := app.Group("/projects")
	projects.Get("/", s.ListProjects)
	projects.Get("/:id", s.GetProject)
	projects.Post("/", authRequired, s.CreateProject)
	projects.Patch("/:id", authRequired, s.UpdateProject)
	projects.Delete("/:id", authRequired, s.DeleteProject)

	// Articles: /admin must be registered before the generic /:slug route
	articles := app.Group("/articles")
	articles.Get("/", s.ListArticles)
	articles.Get("/admin", authRequired, s.ListAllArticles)
	articles.Get("/:slug", s.GetArticle)
	articles.Post("/", authRequired, s.CreateArticle)
	articles.Patch("/:id", authRequired, s.UpdateArticle)
	articles.Delete("/:id", authRequired, s.DeleteArticle)

	// Tags
	tags := app.Group("/tags")
	tags.Get("/", s.ListTags)
	tags.Get("/:id", s.GetTag)
	tags.Post("/", authRequired, s.CreateTag)
	tags.Patch("/:id", authRequired, s.UpdateTag)
	tags.Delete("/:id", authRequired, s.DeleteTag)

	// Uploads
	app.Post("/upload", authRequired, middleware.RateLimit(
		rdb, 30, time.Minute, "upload"), s.Upload)

	// Operator tooling
	app.Get("/feature-flags", authRequired, s.GetFeatureFlags)

	// Server-rendered pages
	s.pages.Register(app)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: when it
// is not configured the check reports "disabled" and does not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if !s.cache.Enabled() {
		redisStatus = "disabled"
	} else if err := s.cache.Ping(ctx); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing sql DB", slog.String("error", err.Error()))
	}

	if err := s.cache.Close(); err != nil {
		middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
