// Package seed provisions the operator account and optional demo content.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"folio/internal/auth"
	"folio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAdminCredentialsMissing is returned when no admin email or password is configured.
var ErrAdminCredentialsMissing = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")

// AdminOptions describes the operator account to provision.
type AdminOptions struct {
	Email    string
	Password string
	Name     string
}

// EnsureAdmin creates the operator account when no user with that email
// exists. An existing account is left untouched, password included.
func EnsureAdmin(ctx context.Context, db *gorm.DB, opts AdminOptions) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(opts.Email))
	if email == "" || opts.Password == "" {
		return false, ErrAdminCredentialsMissing
	}

	hash, err := auth.NewBcryptHasher().Hash(opts.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "Admin"
	}

	user := &models.User{Name: name, Email: email, Password: hash}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(user)
	if res.Error != nil {
		return false, fmt.Errorf("create admin user: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
