package service

import (
	"context"
	"strings"

	"folio/internal/models"
	"folio/internal/observability"
	"folio/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const msgSlugTaken = "Slug already in use"

type ArticleService struct {
	repo repository.ArticleRepository
}

type CreateArticleInput struct {
	Title      string   `json:"title" validate:"required,notblank,max=200"`
	Slug       string   `json:"slug" validate:"required,slug"`
	Content    string   `json:"content" validate:"required,notblank"`
	Excerpt    string   `json:"excerpt" validate:"omitempty,max=500"`
	CoverImage string   `json:"coverImage" validate:"omitempty,optionalurl"`
	IsVisible  bool     `json:"isVisible"`
	Tags       []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// UpdateArticleInput is a partial update. A present tags list replaces the
// article's tags; an empty list removes them all.
type UpdateArticleInput struct {
	Title      *string   `json:"title" validate:"omitnil,notblank,max=200"`
	Slug       *string   `json:"slug" validate:"omitnil,slug"`
	Content    *string   `json:"content" validate:"omitnil,notblank"`
	Excerpt    *string   `json:"excerpt" validate:"omitempty,max=500"`
	CoverImage *string   `json:"coverImage" validate:"omitempty,optionalurl"`
	IsVisible  *bool     `json:"isVisible"`
	Tags       *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

func (in UpdateArticleInput) patch() models.ArticlePatch {
	return models.ArticlePatch{
		Title:      in.Title,
		Slug:       in.Slug,
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		CoverImage: in.CoverImage,
		IsVisible:  in.IsVisible,
		Tags:       in.Tags,
	}
}

func NewArticleService(repo repository.ArticleRepository) *ArticleService {
	return &ArticleService{repo: repo}
}

func (s *ArticleService) Create(ctx context.Context, in CreateArticleInput) (article *models.Article, err error) {
	ctx, finish := observability.StartSpan(ctx, "ArticleService.Create", attribute.String("article.slug", in.Slug))
	defer func() { finish(err) }()

	article = &models.Article{
		Title:      strings.TrimSpace(in.Title),
		Slug:       in.Slug,
		Content:    in.Content,
		Excerpt:    models.NullIfEmpty(&in.Excerpt),
		CoverImage: models.NullIfEmpty(&in.CoverImage),
		IsVisible:  in.IsVisible,
	}
	if err := s.repo.Create(ctx, article, in.Tags); err != nil {
		return nil, mapStoreError(err, msgSlugTaken)
	}
	return article, nil
}

// ListVisible returns the published articles, newest first.
func (s *ArticleService) ListVisible(ctx context.Context) ([]models.Article, error) {
	articles, err := s.repo.FindAll(ctx, models.ArticleFilter{VisibleOnly: true})
	if err != nil {
		return nil, mapStoreError(err, "")
	}
	return articles, nil
}

// ListAll returns every article including drafts, newest first.
func (s *ArticleService) ListAll(ctx context.Context) ([]models.Article, error) {
	articles, err := s.repo.FindAll(ctx, models.ArticleFilter{})
	if err != nil {
		return nil, mapStoreError(err, "")
	}
	return articles, nil
}

// GetBySlug returns the article regardless of visibility.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, mapStoreError(err, "")
	}
	if article == nil {
		return nil, models.NewNotFoundError("Article", slug)
	}
	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, id string, in UpdateArticleInput) (article *models.Article, err error) {
	ctx, finish := observability.StartSpan(ctx, "ArticleService.Update", attribute.String("article.id", id))
	defer func() { finish(err) }()

	article, err = s.repo.Update(ctx, id, in.patch())
	if err != nil {
		return nil, mapStoreError(err, msgSlugTaken)
	}
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	return mapStoreError(s.repo.Delete(ctx, id), "")
}
