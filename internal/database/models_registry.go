package database

import (
	"fmt"

	"folio/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models,
// in migration order.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.Tag{},
		&models.Article{},
	}
}

// MissingTables reports the tables of PersistentModels, and the article_tags
// join table, that do not exist yet.
func MissingTables(db *gorm.DB) []string {
	var missing []string
	for _, model := range PersistentModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			missing = append(missing, fmt.Sprintf("%T", model))
			continue
		}
		if !db.Migrator().HasTable(stmt.Schema.Table) {
			missing = append(missing, stmt.Schema.Table)
		}
	}
	if !db.Migrator().HasTable("article_tags") {
		missing = append(missing, "article_tags")
	}
	return missing
}
