package repository

import (
	"context"
	"testing"

	"folio/internal/cache"
	"folio/internal/database"
	"folio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRepository_SharedTagsAreConnected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db, nil)
	ctx := context.Background()

	first := &models.Article{Title: "First", Slug: "first", Content: "# one"}
	require.NoError(t, repo.Create(ctx, first, []string{"A", "B"}))
	second := &models.Article{Title: "Second", Slug: "second", Content: "# two"}
	require.NoError(t, repo.Create(ctx, second, []string{"A"}))

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Where("name = ?", "A").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got1, err := repo.FindBySlug(ctx, "first")
	require.NoError(t, err)
	got2, err := repo.FindBySlug(ctx, "second")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"A", "B"}, got1.TagNames())
	assert.Equal(t, []string{"A"}, got2.TagNames())
	assert.Equal(t, got1.Tags[0].ID, got2.Tags[0].ID)
}

func TestArticleRepository_VisibilityFilter(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t), nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Article{Title: "Draft", Slug: "draft", Content: "c"}, nil))
	require.NoError(t, repo.Create(ctx, &models.Article{Title: "Live", Slug: "live", Content: "c", IsVisible: true}, nil))

	visible, err := repo.FindAll(ctx, models.ArticleFilter{VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "live", visible[0].Slug)

	all, err := repo.FindAll(ctx, models.ArticleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	draft, err := repo.FindBySlug(ctx, "draft")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.False(t, draft.IsVisible)
}

func TestArticleRepository_FindBySlugMissing(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t), nil)

	got, err := repo.FindBySlug(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestArticleRepository_DuplicateSlug(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t), nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Article{Title: "A", Slug: "same", Content: "c"}, []string{"x"}))
	err := repo.Create(ctx, &models.Article{Title: "B", Slug: "same", Content: "c"}, []string{"x"})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestArticleRepository_UpdateReplacesTags(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t), nil)
	ctx := context.Background()

	article := &models.Article{Title: "T", Slug: "t", Content: "C", Excerpt: strPtr("short")}
	require.NoError(t, repo.Create(ctx, article, []string{"go", "web"}))

	visible := true
	tags := []string{"web", "sql"}
	updated, err := repo.Update(ctx, article.ID, models.ArticlePatch{
		IsVisible: &visible,
		Excerpt:   strPtr(""),
		Tags:      &tags,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsVisible)
	assert.Nil(t, updated.Excerpt)
	assert.Equal(t, "T", updated.Title)
	assert.ElementsMatch(t, []string{"web", "sql"}, updated.TagNames())

	// Leaving Tags nil keeps the current set.
	updated, err = repo.Update(ctx, article.ID, models.ArticlePatch{Title: strPtr("T2")})
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Len(t, updated.Tags, 2)

	empty := []string{}
	updated, err = repo.Update(ctx, article.ID, models.ArticlePatch{Tags: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
}

func TestArticleRepository_UpdateAndDeleteMissing(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t), nil)
	ctx := context.Background()

	_, err := repo.Update(ctx, "missing", models.ArticlePatch{Title: strPtr("x")})
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.True(t, models.IsCode(repo.Delete(ctx, "missing"), models.CodeNotFound))
}

func TestArticleRepository_DeleteRemovesJoinRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db, nil)
	ctx := context.Background()

	article := &models.Article{Title: "T", Slug: "t", Content: "C"}
	require.NoError(t, repo.Create(ctx, article, []string{"go"}))
	require.NoError(t, repo.Delete(ctx, article.ID))

	var joins int64
	require.NoError(t, db.Table("article_tags").Count(&joins).Error)
	assert.Zero(t, joins)

	var tags int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	assert.Equal(t, int64(1), tags, "tags outlive the article")
}

func TestArticleRepository_VisibleListCached(t *testing.T) {
	store, mr := setupTestCache(t)
	repo := NewArticleRepository(setupTestDB(t), store)
	ctx := context.Background()

	_, err := repo.FindAll(ctx, models.ArticleFilter{VisibleOnly: true})
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.ArticlesVisibleKey))

	require.NoError(t, repo.Create(ctx, &models.Article{Title: "Live", Slug: "live", Content: "c", IsVisible: true}, []string{"go"}))
	assert.False(t, mr.Exists(cache.ArticlesVisibleKey))

	visible, err := repo.FindAll(ctx, models.ArticleFilter{VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, []string{"go"}, visible[0].TagNames())
}
