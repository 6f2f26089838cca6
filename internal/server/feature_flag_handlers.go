package server

import (
	"folio/internal/featureflags"
	"folio/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags returns configured feature flags and their state for the current user.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	return c.JSON(fiber.Map{
		"raw": s.featureFlags.Raw(),
		"evaluated": map[string]bool{
			featureflags.Registration: s.featureFlags.EnabledOr(featureflags.Registration, userID, true),
		},
	})
}
