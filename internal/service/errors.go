package service

import (
	"errors"

	"folio/internal/database"
	"folio/internal/models"
)

// mapStoreError translates repository errors: AppErrors pass through, unique
// violations become Conflict(conflictMessage), everything else is Internal.
func mapStoreError(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if database.IsUniqueViolation(err) {
		return models.NewConflictError(conflictMessage)
	}
	return models.NewInternalError(err)
}
