package repository

import (
	"context"
	"errors"
	"time"

	"folio/internal/cache"
	"folio/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository defines persistence operations for blog articles. Tags are
// resolved by name with connect-or-create semantics on every write.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article, tagNames []string) error
	FindAll(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error)
	FindByID(ctx context.Context, id string) (*models.Article, error)
	FindBySlug(ctx context.Context, slug string) (*models.Article, error)
	Update(ctx context.Context, id string, patch models.ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id string) error
}

type articleRepository struct {
	db    *gorm.DB
	cache *cache.Store
}

// NewArticleRepository returns an ArticleRepository. store may be nil.
func NewArticleRepository(db *gorm.DB, store *cache.Store) ArticleRepository {
	return &articleRepository{db: db, cache: store}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := connectOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		article.Tags = tags
		// Tags already exist; only the join rows are written.
		return tx.Omit("Tags.*").Create(article).Error
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *articleRepository) FindAll(ctx context.Context, filter models.ArticleFilter) ([]models.Article, error) {
	articles := []models.Article{}
	fetch := func() error {
		q := r.db.WithContext(ctx).Preload("Tags", orderTags).Order("created_at DESC")
		if filter.VisibleOnly {
			q = q.Where("is_visible = ?", true)
		}
		return q.Find(&articles).Error
	}

	var err error
	if filter.VisibleOnly {
		err = r.cache.Aside(ctx, cache.ArticlesVisibleKey, &articles, cache.ListTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) FindByID(ctx context.Context, id string) (*models.Article, error) {
	return findArticle(r.db.WithContext(ctx), "id = ?", id)
}

func (r *articleRepository) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return findArticle(r.db.WithContext(ctx), "slug = ?", slug)
}

func (r *articleRepository) Update(ctx context.Context, id string, patch models.ArticlePatch) (*models.Article, error) {
	var updated *models.Article
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := patch.Columns()
		cols["updated_at"] = time.Now()

		res := tx.Model(&models.Article{}).Where("id = ?", id).Updates(cols)
		if err := affectedOrNotFound(res, "Article", id); err != nil {
			return err
		}

		if patch.Tags != nil {
			if err := replaceArticleTags(tx, id, *patch.Tags); err != nil {
				return err
			}
		}

		var err error
		updated, err = findArticle(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if updated == nil {
			return models.NewNotFoundError("Article", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return updated, nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_tags WHERE article_id = ?", id).Error; err != nil {
			return err
		}
		return affectedOrNotFound(tx.Where("id = ?", id).Delete(&models.Article{}), "Article", id)
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Article writes may create tags and change the public list.
func (r *articleRepository) invalidate(ctx context.Context) {
	r.cache.Invalidate(ctx, cache.ArticlesVisibleKey, cache.TagsAllKey)
}

func replaceArticleTags(tx *gorm.DB, articleID string, names []string) error {
	tags, err := connectOrCreateTags(tx, names)
	if err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM article_tags WHERE article_id = ?", articleID).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, map[string]any{"article_id": articleID, "tag_id": t.ID})
	}
	return tx.Table("article_tags").Create(&rows).Error
}

func findArticle(db *gorm.DB, query string, arg any) (*models.Article, error) {
	var article models.Article
	if err := db.Preload("Tags", orderTags).Where(query, arg).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name ASC")
}
