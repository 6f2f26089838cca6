package repository

import (
	"context"
	"errors"
	"testing"

	"folio/internal/database"
	"folio/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &models.User{Name: "Nico", Email: "nico@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "nico@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "hash", byID.Password)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmailIsUniqueViolation(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "A", Email: "dup@example.com", Password: "x"}))
	err := repo.Create(ctx, &models.User{Name: "B", Email: "dup@example.com", Password: "y"})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestUserRepository_FindByEmail_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("a@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password"}).
			AddRow("11111111-1111-1111-1111-111111111111", "A", "a@example.com", "hash"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("none@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("err@example.com", 1).
		WillReturnError(errors.New("connection reset"))

	user, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "A", user.Name)

	user, err = repo.FindByEmail(ctx, "none@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	_, err = repo.FindByEmail(ctx, "err@example.com")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
