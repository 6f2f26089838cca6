package server

import (
	"strings"

	"folio/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// bind decodes the JSON body into dst and validates it. The returned error is
// an AppError ready for models.Respond.
func (s *Server) bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return s.validator.Validate(dst)
}

// param returns a trimmed route parameter or a validation error when it is empty.
func param(c *fiber.Ctx, name string) (string, error) {
	v := strings.TrimSpace(c.Params(name))
	if v == "" {
		return "", models.NewValidationError("Invalid " + name)
	}
	return v, nil
}

// idParam returns the canonical form of the :id route parameter. Ids are
// UUIDs, so anything that does not parse cannot exist and is reported as
// NotFound for resource.
func idParam(c *fiber.Ctx, resource string) (string, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", models.NewNotFoundError(resource, raw)
	}
	return id.String(), nil
}
