package server

import (
	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListProjects handles GET /projects
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /projects [get]
func (s *Server) ListProjects(c *fiber.Ctx) error {
	projects, err := s.projectService.List(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(projects)
}

// GetProject handles GET /projects/:id
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} models.ErrorResponse
// @Router /projects/{id} [get]
func (s *Server) GetProject(c *fiber.Ctx) error {
	id, err := idParam(c, "Project")
	if err != nil {
		return models.Respond(c, err)
	}

	project, err := s.projectService.Get(c.UserContext(), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(project)
}

// CreateProject handles POST /projects
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateProjectInput true "Project"
// @Success 201 {object} models.Project
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /projects [post]
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req service.CreateProjectInput
	if err := s.bind(c, &req); err != nil {
		return models.Respond(c, err)
	}

	project, err := s.projectService.Create(c.UserContext(), req)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject handles PATCH /projects/:id
// @Summary Update a project
// @Description Absent fields are unchanged; an empty optional URL clears it.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body service.UpdateProjectInput true "Changes"
// @Success 200 {object} models.Project
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /projects/{id} [patch]
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	id, err := idParam(c, "Project")
	if err != nil {
		return models.Respond(c, err)
	}

	var req service.UpdateProjectInput
	if err := s.bind(c, &req); err != nil {
		return models.Respond(c, err)
	}

	project, err := s.projectService.Update(c.UserContext(), id, req)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(project)
}

// DeleteProject handles DELETE /projects/:id
// @Summary Delete a project
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /projects/{id} [delete]
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	id, err := idParam(c, "Project")
	if err != nil {
		return models.Respond(c, err)
	}

	if err := s.projectService.Delete(c.UserContext(), id); err != nil {
		return models.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
