package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

// CreateGenreInput contains the input parameters for creating a genre.
type CreateGenreInput struct {
	Name       string
	Active     bool
	Categories []uuid.UUID
}

// UpdateGenreInput contains the input parameters for updating a genre.
type UpdateGenreInput struct {
	ID         uuid.UUID
	Name       string
	Active     bool
	Categories []uuid.UUID
}

// GenreListItem is the output record for genre listings.
type GenreListItem struct {
	ID        uuid.UUID
	Name      string
	Active    bool
	CreatedAt time.Time
}

// GenreService defines the interface for genre business logic.
type GenreService interface {
	CreateGenre(ctx context.Context, input CreateGenreInput) (*model.Genre, error)
	GetGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	ListGenres(ctx context.Context, query repository.SearchQuery) (repository.Page[GenreListItem], error)
	UpdateGenre(ctx context.Context, input UpdateGenreInput) (*model.Genre, error)
	DeleteGenre(ctx context.Context, id uuid.UUID) error
}

type genreService struct {
	repo       repository.GenreRepository
	categories repository.CategoryRepository
}

// NewGenreService creates a new GenreService instance.
func NewGenreService(repo repository.GenreRepository, categories repository.CategoryRepository) GenreService {
	return &genreService{repo: repo, categories: categories}
}

func (s *genreService) CreateGenre(ctx context.Context, input CreateGenreInput) (*model.Genre, error) {
	genre := model.NewGenre(input.Name, input.Active, input.Categories)

	n := model.NewNotification()
	genre.Validate(n)
	appendMissingIDs(ctx, n, "categories", input.Categories, s.categories.ExistsByIDs)
	if n.HasErrors() {
		return nil, model.NewValidationError(n)
	}

	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, fmt.Errorf("create genre: %w", err)
	}

	return genre, nil
}

func (s *genreService) GetGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *genreService) ListGenres(ctx context.Context, query repository.SearchQuery) (repository.Page[GenreListItem], error) {
	page, err := s.repo.FindAll(ctx, query)
	if err != nil {
		return repository.Page[GenreListItem]{}, fmt.Errorf("list genres: %w", err)
	}

	return repository.MapPage(page, func(g *model.Genre) GenreListItem {
		return GenreListItem{
			ID:        g.ID,
			Name:      g.Name,
			Active:    g.Active,
			CreatedAt: g.CreatedAt,
		}
	}), nil
}

func (s *genreService) UpdateGenre(ctx context.Context, input UpdateGenreInput) (*model.Genre, error) {
	genre, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	genre.Update(input.Name, input.Active, input.Categories)

	n := model.NewNotification()
	genre.Validate(n)
	appendMissingIDs(ctx, n, "categories", input.Categories, s.categories.ExistsByIDs)
	if n.HasErrors() {
		return nil, model.NewValidationError(n)
	}

	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, fmt.Errorf("update genre: %w", err)
	}

	return genre, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}

// appendMissingIDs checks cross-aggregate references and appends one error per
// missing id so every broken reference is reported in the same notification.
func appendMissingIDs(
	ctx context.Context,
	n *model.Notification,
	field string,
	ids []uuid.UUID,
	exists func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error),
) {
	if len(ids) == 0 {
		return
	}

	found, err := exists(ctx, ids)
	if err != nil {
		n.Append(model.Error{Message: fmt.Sprintf("could not verify %s references", field)})
		return
	}

	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			n.Append(model.Error{Message: fmt.Sprintf("some %s could not be found: %s", field, id)})
		}
	}
}
