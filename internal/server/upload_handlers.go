package server

import (
	"io"

	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Upload handles POST /upload
// @Summary Upload an image
// @Description Stores the image as WebP and returns its public URL.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image (jpeg, png, gif or webp)"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} models.ErrorResponse
// @Router /upload [post]
func (s *Server) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return models.Respond(c, models.NewValidationError("No file uploaded"))
	}
	if file.Size > s.uploadService.MaxUploadSizeBytes() {
		return models.Respond(c, models.NewValidationError("File too large"))
	}

	src, err := file.Open()
	if err != nil {
		return models.Respond(c, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.Respond(c, models.NewValidationError("Unable to read uploaded file"))
	}

	result, err := s.uploadService.Upload(c.UserContext(), service.UploadInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Content:     content,
		BaseURL:     c.BaseURL(),
	})
	if err != nil {
		return models.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
