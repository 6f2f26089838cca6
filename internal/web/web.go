// Package web serves the server-rendered pages: the public gallery and blog,
// the login page and the admin dashboard.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"folio/internal/middleware"
	"folio/internal/models"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templates embed.FS

// TokenCookie holds the bearer token set by the login page.
const TokenCookie = "token"

const recentLimit = 3

// ProjectReader is the project surface the pages need.
type ProjectReader interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
}

// ArticleReader is the article surface the pages need.
type ArticleReader interface {
	ListVisible(ctx context.Context) ([]models.Article, error)
	ListAll(ctx context.Context) ([]models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
}

type Deps struct {
	Projects ProjectReader
	Articles ArticleReader
	Verifier middleware.TokenVerifier
	// Revoked may be nil.
	Revoked middleware.RevocationChecker
}

type Handler struct {
	deps  Deps
	pages map[string]*template.Template
}

var pageNames = []string{"home", "gallery", "project", "blog", "article", "login", "admin", "not_found", "error"}

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
}

// New parses the embedded templates. Each page is parsed together with the
// shared layout.
func New(deps Deps) (*Handler, error) {
	if deps.Projects == nil || deps.Articles == nil || deps.Verifier == nil {
		return nil, errors.New("web: projects, articles and verifier are required")
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templates, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Handler{deps: deps, pages: pages}, nil
}

// Register mounts the pages on app.
func (h *Handler) Register(app fiber.Router) {
	app.Get("/", h.Home)
	app.Get("/gallery", h.Gallery)
	app.Get("/gallery/:id", h.Project)
	app.Get("/blog", h.Blog)
	app.Get("/blog/:slug", h.Article)
	app.Get("/login", h.Login)
	app.Get("/admin", h.Admin)
}

type pageData struct {
	Title         string
	Authenticated bool
	Data          any
}

func (h *Handler) render(c *fiber.Ctx, status int, page, title string, data any) error {
	var buf bytes.Buffer
	err := h.pages[page].Execute(&buf, pageData{
		Title:         title,
		Authenticated: h.authenticated(c),
		Data:          data,
	})
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to render page",
			slog.String("page", page), slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func (h *Handler) notFound(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusNotFound, "not_found", "Not found", nil)
}

func (h *Handler) failed(c *fiber.Ctx, err error) error {
	if models.IsCode(err, models.CodeNotFound) {
		return h.notFound(c)
	}
	middleware.Logger.ErrorContext(c.UserContext(), "page data load failed", slog.String("error", err.Error()))
	return h.render(c, fiber.StatusInternalServerError, "error", "Something went wrong", nil)
}

// authenticated reports whether the request carries a valid, unrevoked token cookie.
func (h *Handler) authenticated(c *fiber.Ctx) bool {
	if v, ok := c.Locals(localAuthenticated).(bool); ok {
		return v
	}

	ok := h.checkCookie(c)
	c.Locals(localAuthenticated, ok)
	return ok
}

const localAuthenticated = "webAuthenticated"

func (h *Handler) checkCookie(c *fiber.Ctx) bool {
	token := strings.TrimSpace(c.Cookies(TokenCookie))
	if token == "" {
		return false
	}
	claims, err := h.deps.Verifier.Verify(token)
	if err != nil {
		return false
	}
	if h.deps.Revoked != nil {
		revoked, err := h.deps.Revoked.IsRevoked(c.UserContext(), claims.ID)
		if err == nil && revoked {
			return false
		}
	}
	return true
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
