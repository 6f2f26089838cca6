package repository

import (
	"context"
	"errors"
	"time"

	"folio/internal/cache"
	"folio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository defines persistence operations for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	FindAll(ctx context.Context) ([]models.Tag, error)
	FindByID(ctx context.Context, id string) (*models.Tag, error)
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	FindOrCreate(ctx context.Context, names []string) ([]models.Tag, error)
	Update(ctx context.Context, id, name string) (*models.Tag, error)
	Delete(ctx context.Context, id string) error
}

type tagRepository struct {
	db    *gorm.DB
	cache *cache.Store
}

// NewTagRepository returns a TagRepository. store may be nil.
func NewTagRepository(db *gorm.DB, store *cache.Store) TagRepository {
	return &tagRepository{db: db, cache: store}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return err
	}
	r.cache.Invalidate(ctx, cache.TagsAllKey)
	return nil
}

func (r *tagRepository) FindAll(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.cache.Aside(ctx, cache.TagsAllKey, &tags, cache.ListTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id string) (*models.Tag, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *tagRepository) findOne(ctx context.Context, query string, arg any) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where(query, arg).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindOrCreate(ctx context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		tags, err = connectOrCreateTags(tx, names)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.cache.Invalidate(ctx, cache.TagsAllKey)
	return tags, nil
}

func (r *tagRepository) Update(ctx context.Context, id, name string) (*models.Tag, error) {
	res := r.db.WithContext(ctx).Model(&models.Tag{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "updated_at": time.Now()})
	if err := affectedOrNotFound(res, "Tag", id); err != nil {
		return nil, err
	}
	r.cache.Invalidate(ctx, cache.TagsAllKey, cache.ArticlesVisibleKey)

	tag, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, models.NewNotFoundError("Tag", id)
	}
	return tag, nil
}

func (r *tagRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return affectedOrNotFound(tx.Where("id = ?", id).Delete(&models.Tag{}), "Tag", id)
	})
	if err != nil {
		return err
	}
	r.cache.Invalidate(ctx, cache.TagsAllKey, cache.ArticlesVisibleKey)
	return nil
}

// connectOrCreateTags inserts the missing names and returns a tag per
// normalized name, in input order. Concurrent writers are resolved by the
// unique index on name.
func connectOrCreateTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	names = models.NormalizeTagNames(names)
	if len(names) == 0 {
		return []models.Tag{}, nil
	}

	candidates := make([]models.Tag, len(names))
	for i, n := range names {
		candidates[i] = models.Tag{Name: n}
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidates).Error; err != nil {
		return nil, err
	}

	var stored []models.Tag
	if err := tx.Where("name IN ?", names).Find(&stored).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]models.Tag, len(stored))
	for _, t := range stored {
		byName[t.Name] = t
	}
	out := make([]models.Tag, 0, len(names))
	for _, n := range names {
		if t, ok := byName[n]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}
