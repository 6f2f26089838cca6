package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"folio/internal/models"

	"github.com/stretchr/testify/require"
)

var errUnexpectedCall = errors.New("unexpected call")

type userRepoStub struct {
	createFn      func(ctx context.Context, user *models.User) error
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
	findByIDFn    func(ctx context.Context, id string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn == nil {
		return errUnexpectedCall
	}
	return s.createFn(ctx, user)
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findByEmailFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findByEmailFn(ctx, email)
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.findByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findByIDFn(ctx, id)
}

type projectRepoStub struct {
	createFn   func(ctx context.Context, p *models.Project) error
	findAllFn  func(ctx context.Context) ([]models.Project, error)
	findByIDFn func(ctx context.Context, id string) (*models.Project, error)
	updateFn   func(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *projectRepoStub) Create(ctx context.Context, p *models.Project) error {
	if s.createFn == nil {
		return errUnexpectedCall
	}
	return s.createFn(ctx, p)
}

func (s *projectRepoStub) FindAll(ctx context.Context) ([]models.Project, error) {
	if s.findAllFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findAllFn(ctx)
}

func (s *projectRepoStub) FindByID(ctx context.Context, id string) (*models.Project, error) {
	if s.findByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findByIDFn(ctx, id)
}

func (s *projectRepoStub) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	if s.updateFn == nil {
		return nil, errUnexpectedCall
	}
	return s.updateFn(ctx, id, patch)
}

func (s *projectRepoStub) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errUnexpectedCall
	}
	return s.deleteFn(ctx, id)
}

type articleRepoStub struct {
	createFn     func(ctx context.Context, a *models.Article, tags []string) error
	findAllFn    func(ctx context.Context, f models.ArticleFilter) ([]models.Article, error)
	findByIDFn   func(ctx context.Context, id string) (*models.Article, error)
	findBySlugFn func(ctx context.Context, slug string) (*models.Article, error)
	updateFn     func(ctx context.Context, id string, patch models.ArticlePatch) (*models.Article, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (s *articleRepoStub) Create(ctx context.Context, a *models.Article, tags []string) error {
	if s.createFn == nil {
		return errUnexpectedCall
	}
	return s.createFn(ctx, a, tags)
}

func (s *articleRepoStub) FindAll(ctx context.Context, f models.ArticleFilter) ([]models.Article, error) {
	if s.findAllFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findAllFn(ctx, f)
}

func (s *articleRepoStub) FindByID(ctx context.Context, id string) (*models.Article, error) {
	if s.findByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findByIDFn(ctx, id)
}

func (s *articleRepoStub) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if s.findBySlugFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findBySlugFn(ctx, slug)
}

func (s *articleRepoStub) Update(ctx context.Context, id string, patch models.ArticlePatch) (*models.Article, error) {
	if s.updateFn == nil {
		return nil, errUnexpectedCall
	}
	return s.updateFn(ctx, id, patch)
}

func (s *articleRepoStub) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errUnexpectedCall
	}
	return s.deleteFn(ctx, id)
}

type tagRepoStub struct {
	createFn       func(ctx context.Context, t *models.Tag) error
	findAllFn      func(ctx context.Context) ([]models.Tag, error)
	findByIDFn     func(ctx context.Context, id string) (*models.Tag, error)
	findByNameFn   func(ctx context.Context, name string) (*models.Tag, error)
	findOrCreateFn func(ctx context.Context, names []string) ([]models.Tag, error)
	updateFn       func(ctx context.Context, id, name string) (*models.Tag, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (s *tagRepoStub) Create(ctx context.Context, t *models.Tag) error {
	if s.createFn == nil {
		return errUnexpectedCall
	}
	return s.createFn(ctx, t)
}

func (s *tagRepoStub) FindAll(ctx context.Context) ([]models.Tag, error) {
	if s.findAllFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findAllFn(ctx)
}

func (s *tagRepoStub) FindByID(ctx context.Context, id string) (*models.Tag, error) {
	if s.findByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findByIDFn(ctx, id)
}

func (s *tagRepoStub) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	if s.findByNameFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findByNameFn(ctx, name)
}

func (s *tagRepoStub) FindOrCreate(ctx context.Context, names []string) ([]models.Tag, error) {
	if s.findOrCreateFn == nil {
		return nil, errUnexpectedCall
	}
	return s.findOrCreateFn(ctx, names)
}

func (s *tagRepoStub) Update(ctx context.Context, id, name string) (*models.Tag, error) {
	if s.updateFn == nil {
		return nil, errUnexpectedCall
	}
	return s.updateFn(ctx, id, name)
}

func (s *tagRepoStub) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errUnexpectedCall
	}
	return s.deleteFn(ctx, id)
}

type revokerStub struct {
	jti string
	ttl time.Duration
	err error
}

func (s *revokerStub) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	s.jti = jti
	s.ttl = ttl
	return s.err
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code, "unexpected error: %v", err)
}

func strPtr(s string) *string { return &s }
