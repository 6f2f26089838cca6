package server

import (
	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListArticles handles GET /articles
// @Summary List published articles
// @Tags articles
// @Produce json
// @Success 200 {array} models.Article
// @Router /articles [get]
func (s *Server) ListArticles(c *fiber.Ctx) error {
	articles, err := s.articleService.ListVisible(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(articles)
}

// ListAllArticles handles GET /articles/admin
// @Summary List all articles including drafts
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Article
// @Failure 401 {object} models.ErrorResponse
// @Router /articles/admin [get]
func (s *Server) ListAllArticles(c *fiber.Ctx) error {
	articles, err := s.articleService.ListAll(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(articles)
}

// GetArticle handles GET /articles/:slug
// @Summary Get an article by slug
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} models.Article
// @Failure 404 {object} models.ErrorResponse
// @Router /articles/{slug} [get]
func (s *Server) GetArticle(c *fiber.Ctx) error {
	slug, err := param(c, "slug")
	if err != nil {
		return models.Respond(c, err)
	}

	article, err := s.articleService.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(article)
}

// CreateArticle handles POST /articles
// @Summary Create an article
// @Description Tags are connected by name and created when missing.
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateArticleInput true "Article"
// @Success 201 {object} models.Article
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /articles [post]
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req service.CreateArticleInput
	if err := s.bind(c, &req); err != nil {
		return models.Respond(c, err)
	}

	article, err := s.articleService.Create(c.UserContext(), req)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// UpdateArticle handles PATCH /articles/:id
// @Summary Update an article
// @Description A present tags list replaces the article's tags.
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body service.UpdateArticleInput true "Changes"
// @Success 200 {object} models.Article
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /articles/{id} [patch]
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	id, err := idParam(c, "Article")
	if err != nil {
		return models.Respond(c, err)
	}

	var req service.UpdateArticleInput
	if err := s.bind(c, &req); err != nil {
		return models.Respond(c, err)
	}

	article, err := s.articleService.Update(c.UserContext(), id, req)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(article)
}

// DeleteArticle handles DELETE /articles/:id
// @Summary Delete an article
// @Tags articles
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /articles/{id} [delete]
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	id, err := idParam(c, "Article")
	if err != nil {
		return models.Respond(c, err)
	}

	if err := s.articleService.Delete(c.UserContext(), id); err != nil {
		return models.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
