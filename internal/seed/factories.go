package seed

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var demoTags = []string{"go", "postgres", "redis", "frontend", "devops", "design", "notes"}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Factory builds demo projects and articles and persists them through the
// repositories, so cached lists are invalidated the same way the API does it.
type Factory struct {
	faker    *gofakeit.Faker
	projects repository.ProjectRepository
	articles repository.ArticleRepository
}

// NewFactory returns a Factory. The same seed yields the same content. store may be nil.
func NewFactory(db *gorm.DB, store *cache.Store, seed int64) *Factory {
	return &Factory{
		faker:    gofakeit.New(seed),
		projects: repository.NewProjectRepository(db, store),
		articles: repository.NewArticleRepository(db, store),
	}
}

// Project creates one demo project.
func (f *Factory) Project(ctx context.Context) (*models.Project, error) {
	name := f.faker.AppName()
	image := fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", f.faker.LetterN(10))
	project := &models.Project{
		Title:       name,
		Description: f.faker.Paragraph(1, 3, 12, " "),
		Image:       &image,
	}
	if f.faker.Bool() {
		url := fmt.Sprintf("https://%s.example.com", slugify(name))
		project.URL = &url
	}
	if f.faker.Bool() {
		repo := fmt.Sprintf("https://github.com/%s/%s", strings.ToLower(f.faker.Username()), slugify(name))
		project.RepoURL = &repo
	}

	if err := f.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Article creates one demo article with up to three tags. visible controls
// whether it is published.
func (f *Factory) Article(ctx context.Context, visible bool) (*models.Article, error) {
	title := strings.TrimSuffix(f.faker.Sentence(5), ".")
	excerpt := f.faker.Sentence(14)
	cover := fmt.Sprintf("https://picsum.photos/seed/%s/1600/900", f.faker.LetterN(10))

	paragraphs := make([]string, 0, 4)
	for i := 0; i < 3; i++ {
		paragraphs = append(paragraphs, f.faker.Paragraph(1, 4, 14, " "))
	}
	content := fmt.Sprintf("# %s\n\n%s\n\n```go\nfmt.Println(%q)\n```\n", title,
		strings.Join(paragraphs, "\n\n"), f.faker.HackerPhrase())

	article := &models.Article{
		Title:      title,
		Slug:       slugify(title) + "-" + strings.ToLower(f.faker.LetterN(6)),
		Content:    content,
		Excerpt:    &excerpt,
		CoverImage: &cover,
		IsVisible:  visible,
	}

	tags := make([]string, 0, 3)
	for i := f.faker.Number(0, 3); i > 0; i-- {
		tags = append(tags, f.faker.RandomString(demoTags))
	}

	if err := f.articles.Create(ctx, article, models.NormalizeTagNames(tags)); err != nil {
		return nil, err
	}
	return article, nil
}

// Demo creates n projects and n articles. Every third article is left as a draft.
func (f *Factory) Demo(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if _, err := f.Project(ctx); err != nil {
			return fmt.Errorf("create demo project: %w", err)
		}
		if _, err := f.Article(ctx, i%3 != 2); err != nil {
			return fmt.Errorf("create demo article: %w", err)
		}
	}
	return nil
}

func slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.TrimRight(slug[:80], "-")
	}
	if slug == "" {
		slug = "untitled"
	}
	return slug
}
