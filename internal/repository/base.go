package repository

import (
	"gorm.io/gorm"

	"folio/internal/models"
)

// affectedOrNotFound turns a write that matched no rows into a NotFound error.
func affectedOrNotFound(res *gorm.DB, resource string, id any) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}
