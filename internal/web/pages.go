package web

import (
	"folio/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type homeData struct {
	Projects []models.Project
	Articles []models.Article
}

// Home handles GET /
func (h *Handler) Home(c *fiber.Ctx) error {
	projects, err := h.deps.Projects.List(c.UserContext())
	if err != nil {
		return h.failed(c, err)
	}
	articles, err := h.deps.Articles.ListVisible(c.UserContext())
	if err != nil {
		return h.failed(c, err)
	}

	return h.render(c, fiber.StatusOK, "home", "Home", homeData{
		Projects: firstN(projects, recentLimit),
		Articles: firstN(articles, recentLimit),
	})
}

// Gallery handles GET /gallery
func (h *Handler) Gallery(c *fiber.Ctx) error {
	projects, err := h.deps.Projects.List(c.UserContext())
	if err != nil {
		return h.failed(c, err)
	}
	return h.render(c, fiber.StatusOK, "gallery", "Gallery", projects)
}

// Project handles GET /gallery/:id
func (h *Handler) Project(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.notFound(c)
	}
	project, err := h.deps.Projects.Get(c.UserContext(), id.String())
	if err != nil {
		return h.failed(c, err)
	}
	return h.render(c, fiber.StatusOK, "project", project.Title, project)
}

// Blog handles GET /blog
func (h *Handler) Blog(c *fiber.Ctx) error {
	articles, err := h.deps.Articles.ListVisible(c.UserContext())
	if err != nil {
		return h.failed(c, err)
	}
	return h.render(c, fiber.StatusOK, "blog", "Blog", articles)
}

// Article handles GET /blog/:slug. Drafts are only shown to a signed-in operator.
func (h *Handler) Article(c *fiber.Ctx) error {
	article, err := h.deps.Articles.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.failed(c, err)
	}
	if !article.IsVisible && !h.authenticated(c) {
		return h.notFound(c)
	}
	return h.render(c, fiber.StatusOK, "article", article.Title, article)
}

// Login handles GET /login. A visitor who already holds a valid token goes
// straight to the dashboard.
func (h *Handler) Login(c *fiber.Ctx) error {
	if h.authenticated(c) {
		return c.Redirect("/admin", fiber.StatusFound)
	}
	return h.render(c, fiber.StatusOK, "login", "Sign in", nil)
}

type adminData struct {
	Projects []models.Project
	Articles []models.Article
}

// Admin handles GET /admin
func (h *Handler) Admin(c *fiber.Ctx) error {
	if !h.authenticated(c) {
		return c.Redirect("/login", fiber.StatusFound)
	}

	projects, err := h.deps.Projects.List(c.UserContext())
	if err != nil {
		return h.failed(c, err)
	}
	articles, err := h.deps.Articles.ListAll(c.UserContext())
	if err != nil {
		return h.failed(c, err)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return h.render(c, fiber.StatusOK, "admin", "Dashboard", adminData{
		Projects: projects,
		Articles: articles,
	})
}
