package repository

import (
	"context"
	"errors"
	"time"

	"folio/internal/cache"
	"folio/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository defines persistence operations for portfolio projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindAll(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	db    *gorm.DB
	cache *cache.Store
}

// NewProjectRepository returns a ProjectRepository. store may be nil.
func NewProjectRepository(db *gorm.DB, store *cache.Store) ProjectRepository {
	return &projectRepository{db: db, cache: store}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return err
	}
	r.cache.Invalidate(ctx, cache.ProjectsAllKey)
	return nil
}

func (r *projectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.cache.Aside(ctx, cache.ProjectsAllKey, &projects, cache.ListTTL, func() error {
		return r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	cols := patch.Columns()
	cols["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(cols)
	if err := affectedOrNotFound(res, "Project", id); err != nil {
		return nil, err
	}
	r.cache.Invalidate(ctx, cache.ProjectsAllKey)

	project, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, models.NewNotFoundError("Project", id)
	}
	return project, nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if err := affectedOrNotFound(res, "Project", id); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, cache.ProjectsAllKey)
	return nil
}
