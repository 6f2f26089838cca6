package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is a blog post. Content is markdown stored verbatim; IsVisible gates
// the public listing.
type Article struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Excerpt    *string   `gorm:"type:text" json:"excerpt"`
	CoverImage *string   `json:"coverImage"`
	IsVisible  bool      `gorm:"not null;default:false;index" json:"isVisible"`
	Tags       []Tag     `gorm:"many2many:article_tags" json:"tags"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (a *Article) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// TagNames returns the names of the attached tags in order.
func (a Article) TagNames() []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return names
}

// ArticlePatch is a partial update. A non-nil Tags replaces the tag set.
type ArticlePatch struct {
	Title      *string
	Slug       *string
	Content    *string
	Excerpt    *string
	CoverImage *string
	IsVisible  *bool
	Tags       *[]string
}

// Columns returns the scalar column assignments the patch describes.
func (p ArticlePatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Slug != nil {
		cols["slug"] = *p.Slug
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Excerpt != nil {
		cols["excerpt"] = NullIfEmpty(p.Excerpt)
	}
	if p.CoverImage != nil {
		cols["cover_image"] = NullIfEmpty(p.CoverImage)
	}
	if p.IsVisible != nil {
		cols["is_visible"] = *p.IsVisible
	}
	return cols
}

// ArticleFilter selects which articles FindAll returns.
type ArticleFilter struct {
	VisibleOnly bool
}
