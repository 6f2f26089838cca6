package server

import (
	"folio/internal/featureflags"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /auth/register
// @Summary Register
// @Description Create an operator account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration"
// @Success 201 {object} models.PublicUser
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := s.bind(c, &req); err != nil {
		return models.Respond(c, err)
	}

	user, err := s.authService.Register(c.UserContext(), req)
	if err != nil {
		return models.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /auth/login
// @Summary Login
// @Description Authenticate and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login credentials"
// @Success 200 {object} service.LoginResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := s.bind(c, &req); err != nil {
		return models.Respond(c, err)
	}

	result, err := s.authService.Login(c.UserContext(), req)
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(result)
}

// Logout handles POST /auth/logout
// @Summary Logout
// @Description Revoke the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return models.Respond(c, models.NewUnauthorizedError("Authorization required"))
	}

	if err := s.authService.Logout(c.UserContext(), claims.ID, claims.Expiry()); err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// RegistrationEnabled rejects registration with 403 when the registration flag is off.
func (s *Server) RegistrationEnabled() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.featureFlags.EnabledOr(featureflags.Registration, c.IP(), true) {
			return models.Respond(c, models.NewForbiddenError("Registration is disabled"))
		}
		return c.Next()
	}
}
