package database

import (
	"testing"

	modelspkg "folio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPersistentModels_TagsBeforeArticles(t *testing.T) {
	tagIdx, articleIdx := -1, -1
	for i, model := range PersistentModels() {
		switch model.(type) {
		case *modelspkg.Tag:
			tagIdx = i
		case *modelspkg.Article:
			articleIdx = i
		}
	}
	require.NotEqual(t, -1, tagIdx, "PersistentModels should include Tag")
	require.NotEqual(t, -1, articleIdx, "PersistentModels should include Article")
	assert.Less(t, tagIdx, articleIdx)
}

func TestMissingTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.ElementsMatch(t, []string{"users", "projects", "tags", "articles", "article_tags"}, MissingTables(db))

	require.NoError(t, Migrate(db))
	assert.Empty(t, MissingTables(db))
}
