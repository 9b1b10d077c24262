package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	var persisted *model.Category
	repo := &mockCategoryRepository{
		createFn: func(ctx context.Context, category *model.Category) error {
			persisted = category
			return nil
		},
	}

	svc := NewCategoryService(repo)
	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
		Name:        "Documentaries",
		Description: "Non-fiction films",
		Active:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if persisted == nil {
		t.Fatal("category was not persisted")
	}
	if category.ID == uuid.Nil {
		t.Error("category ID not assigned")
	}
	if !category.Active {
		t.Error("active flag not carried over")
	}
}

func TestCategoryService_CreateCategory_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateCategoryInput
		wantMsg string
	}{
		{
			name:    "empty name",
			input:   CreateCategoryInput{Name: "", Active: true},
			wantMsg: "name",
		},
		{
			name:    "name too short",
			input:   CreateCategoryInput{Name: "ab", Active: true},
			wantMsg: "name",
		},
		{
			name:    "name too long",
			input:   CreateCategoryInput{Name: strings.Repeat("x", 256), Active: true},
			wantMsg: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCategoryRepository{
				createFn: func(ctx context.Context, category *model.Category) error {
					t.Fatal("invalid category must not be persisted")
					return nil
				},
			}

			svc := NewCategoryService(repo)
			_, err := svc.CreateCategory(context.Background(), tt.input)

			var vErr *model.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *model.ValidationError, got %v", err)
			}
			if !strings.Contains(vErr.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", vErr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestCategoryService_GetCategory_NotFound(t *testing.T) {
	repo := &mockCategoryRepository{}

	svc := NewCategoryService(repo)
	_, err := svc.GetCategory(context.Background(), uuid.New())
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	existing := model.NewCategory("Movies", "All movies", true)

	var persisted *model.Category
	repo := &mockCategoryRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Category, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, category *model.Category) error {
			persisted = category
			return nil
		},
	}

	svc := NewCategoryService(repo)
	category, err := svc.UpdateCategory(context.Background(), UpdateCategoryInput{
		ID:          existing.ID,
		Name:        "Feature Films",
		Description: "Full-length movies",
		Active:      false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if persisted == nil {
		t.Fatal("category was not persisted")
	}
	if category.Name != "Feature Films" {
		t.Errorf("name = %q", category.Name)
	}
	if category.Active {
		t.Error("category should be inactive")
	}
}

func TestCategoryService_ListCategories(t *testing.T) {
	first := model.NewCategory("Movies", "", true)
	second := model.NewCategory("Series", "", true)

	repo := &mockCategoryRepository{
		findAllFn: func(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Category], error) {
			return repository.Page[*model.Category]{
				CurrentPage: 0,
				PerPage:     10,
				Total:       2,
				Items:       []*model.Category{first, second},
			}, nil
		},
	}

	svc := NewCategoryService(repo)
	page, err := svc.ListCategories(context.Background(), repository.SearchQuery{PerPage: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("total = %d", page.Total)
	}
	if len(page.Items) != 2 || page.Items[0].Name != "Movies" {
		t.Errorf("items = %+v", page.Items)
	}
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	deleted := false
	repo := &mockCategoryRepository{
		deleteByIDFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := NewCategoryService(repo)
	if err := svc.DeleteCategory(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("delete was not forwarded to the repository")
	}
}
