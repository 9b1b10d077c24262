package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

// CreateCategoryInput contains the input parameters for creating a category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Active      bool
}

// UpdateCategoryInput contains the input parameters for updating a category.
type UpdateCategoryInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	Active      bool
}

// CategoryListItem is the output record for category listings.
type CategoryListItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

// CategoryService defines the interface for category business logic.
type CategoryService interface {
	// CreateCategory validates and persists a new category. Validation
	// failures are returned as a single *model.ValidationError listing
	// every violation.
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*model.Category, error)

	// GetCategory retrieves a category by ID.
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// ListCategories returns one page of categories matching the query.
	ListCategories(ctx context.Context, query repository.SearchQuery) (repository.Page[CategoryListItem], error)

	// UpdateCategory applies new field values to an existing category.
	UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*model.Category, error)

	// DeleteCategory removes a category. Deleting an absent id is a no-op.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*model.Category, error) {
	category := model.NewCategory(input.Name, input.Description, input.Active)

	n := model.NewNotification()
	category.Validate(n)
	if n.HasErrors() {
		return nil, model.NewValidationError(n)
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) ListCategories(ctx context.Context, query repository.SearchQuery) (repository.Page[CategoryListItem], error) {
	page, err := s.repo.FindAll(ctx, query)
	if err != nil {
		return repository.Page[CategoryListItem]{}, fmt.Errorf("list categories: %w", err)
	}

	return repository.MapPage(page, func(c *model.Category) CategoryListItem {
		return CategoryListItem{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Active:      c.Active,
			CreatedAt:   c.CreatedAt,
		}
	}), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	category.Update(input.Name, input.Description, input.Active)

	n := model.NewNotification()
	category.Validate(n)
	if n.HasErrors() {
		return nil, model.NewValidationError(n)
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}
