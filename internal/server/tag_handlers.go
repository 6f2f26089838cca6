package server

import (
	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListTags handles GET /tags
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (s *Server) ListTags(c *fiber.Ctx) error {
	tags, err := s.tagService.List(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /tags/:id
// @Summary Get a tag
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} models.ErrorResponse
// @Router /tags/{id} [get]
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := idParam(c, "Tag")
	if err != nil {
		return models.Respond(c, err)
	}

	tag, err := s.tagService.Get(c.UserContext(), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(tag)
}

// CreateTag handles POST /tags
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateTagInput true "Tag"
// @Success 201 {object} models.Tag
// @Failure 409 {object} models.ErrorResponse
// @Router /tags [post]
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req service.CreateTagInput
	if err := s.bind(c, &req); err != nil {
		return models.Respond(c, err)
	}

	tag, err := s.tagService.Create(c.UserContext(), req)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// UpdateTag handles PATCH /tags/:id
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tag ID"
// @Param request body service.UpdateTagInput true "New name"
// @Success 200 {object} models.Tag
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /tags/{id} [patch]
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	id, err := idParam(c, "Tag")
	if err != nil {
		return models.Respond(c, err)
	}

	var req service.UpdateTagInput
	if err := s.bind(c, &req); err != nil {
		return models.Respond(c, err)
	}

	tag, err := s.tagService.Update(c.UserContext(), id, req)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(tag)
}

// DeleteTag handles DELETE /tags/:id
// @Summary Delete a tag
// @Tags tags
// @Security BearerAuth
// @Param id path string true "Tag ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /tags/{id} [delete]
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := idParam(c, "Tag")
	if err != nil {
		return models.Respond(c, err)
	}

	if err := s.tagService.Delete(c.UserContext(), id); err != nil {
		return models.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
