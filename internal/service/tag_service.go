package service

import (
	"context"
	"strings"

	"folio/internal/models"
	"folio/internal/repository"
)

const msgTagExists = "Tag already exists"

type TagService struct {
	repo repository.TagRepository
}

type CreateTagInput struct {
	Name string `json:"name" validate:"required,notblank,max=50"`
}

type UpdateTagInput struct {
	Name string `json:"name" validate:"required,notblank,max=50"`
}

func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) Create(ctx context.Context, in CreateTagInput) (*models.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("name is required")
	}
	tag := &models.Tag{Name: name}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, mapStoreError(err, msgTagExists)
	}
	return tag, nil
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapStoreError(err, "")
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "")
	}
	if tag == nil {
		return nil, models.NewNotFoundError("Tag", id)
	}
	return tag, nil
}

// Update renames a tag.
func (s *TagService) Update(ctx context.Context, id string, in UpdateTagInput) (*models.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("name is required")
	}
	tag, err := s.repo.Update(ctx, id, name)
	if err != nil {
		return nil, mapStoreError(err, msgTagExists)
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	return mapStoreError(s.repo.Delete(ctx, id), "")
}
