package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a portfolio entry shown in the public gallery.
type Project struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	URL         *string   `json:"url"`
	Image       *string   `json:"image"`
	RepoURL     *string   `json:"repoUrl"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectPatch is a partial update. Nil fields are left unchanged; an empty
// string on an optional URL clears it.
type ProjectPatch struct {
	Title       *string
	Description *string
	URL         *string
	Image       *string
	RepoURL     *string
}

// Columns returns the column assignments the patch describes.
func (p ProjectPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.URL != nil {
		cols["url"] = NullIfEmpty(p.URL)
	}
	if p.Image != nil {
		cols["image"] = NullIfEmpty(p.Image)
	}
	if p.RepoURL != nil {
		cols["repo_url"] = NullIfEmpty(p.RepoURL)
	}
	return cols
}

// NullIfEmpty maps nil and "" to nil so optional columns are stored as NULL.
func NullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
