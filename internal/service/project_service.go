package service

import (
	"context"
	"strings"

	"folio/internal/models"
	"folio/internal/repository"
)

type ProjectService struct {
	repo repository.ProjectRepository
}

type CreateProjectInput struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"required,notblank"`
	URL         string `json:"url" validate:"omitempty,optionalurl"`
	Image       string `json:"image" validate:"omitempty,optionalurl"`
	RepoURL     string `json:"repoUrl" validate:"omitempty,optionalurl"`
}

// UpdateProjectInput is a partial update: absent fields are left unchanged and
// an empty optional URL clears it.
type UpdateProjectInput struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description" validate:"omitnil,notblank"`
	URL         *string `json:"url" validate:"omitempty,optionalurl"`
	Image       *string `json:"image" validate:"omitempty,optionalurl"`
	RepoURL     *string `json:"repoUrl" validate:"omitempty,optionalurl"`
}

func (in UpdateProjectInput) patch() models.ProjectPatch {
	return models.ProjectPatch{
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Image:       in.Image,
		RepoURL:     in.RepoURL,
	}
}

func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	project := &models.Project{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		URL:         models.NullIfEmpty(&in.URL),
		Image:       models.NullIfEmpty(&in.Image),
		RepoURL:     models.NullIfEmpty(&in.RepoURL),
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, mapStoreError(err, "Project already exists")
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapStoreError(err, "")
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "")
	}
	if project == nil {
		return nil, models.NewNotFoundError("Project", id)
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.repo.Update(ctx, id, in.patch())
	if err != nil {
		return nil, mapStoreError(err, "Project already exists")
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return mapStoreError(s.repo.Delete(ctx, id), "")
}
