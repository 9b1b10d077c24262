package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
	"github.com/flixkit/catalog/internal/infrastructure/metrics"
)

var genreSortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// GenreRepository implements repository.GenreRepository using PostgreSQL.
// Linked category ids live in a uuid array column on the genre row.
type GenreRepository struct {
	db DBTX
}

// NewGenreRepository creates a new GenreRepository instance.
func NewGenreRepository(db DBTX) *GenreRepository {
	return &GenreRepository{db: db}
}

// Create persists a new genre.
func (r *GenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	const query = `
		INSERT INTO genres (id, name, active, categories, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, "genres").Inc()
	_, err := r.db.Exec(ctx, query,
		genre.ID,
		genre.Name,
		genre.Active,
		genre.Categories,
		genre.CreatedAt,
		genre.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateEntity
		}
		return fmt.Errorf("failed to create genre: %w", err)
	}

	return nil
}

// GetByID retrieves a genre by its unique identifier.
func (r *GenreRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	const query = `
		SELECT id, name, active, categories, created_at, updated_at
		FROM genres
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "genres").Inc()

	var genre model.Genre
	err := r.db.QueryRow(ctx, query, id).Scan(
		&genre.ID,
		&genre.Name,
		&genre.Active,
		&genre.Categories,
		&genre.CreatedAt,
		&genre.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by ID: %w", err)
	}

	return &genre, nil
}

// Update persists changes to an existing genre.
func (r *GenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	const query = `
		UPDATE genres
		SET name = $2, active = $3, categories = $4, updated_at = $5
		WHERE id = $1
	`

	genre.UpdatedAt = time.Now()

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, "genres").Inc()
	tag, err := r.db.Exec(ctx, query,
		genre.ID,
		genre.Name,
		genre.Active,
		genre.Categories,
		genre.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrGenreNotFound
	}

	return nil
}

// DeleteByID removes a genre. Deleting an absent id is a no-op.
func (r *GenreRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM genres WHERE id = $1`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, "genres").Inc()
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	return nil
}

// FindAll returns one page of genres matching the search query.
func (r *GenreRepository) FindAll(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Genre], error) {
	sql := `
		SELECT id, name, active, categories, created_at, updated_at, count(*) OVER() AS total
		FROM genres
		WHERE ($1 = '' OR name ILIKE $1)
		ORDER BY ` + orderClause(query, genreSortColumns, "name") + `
		LIMIT $2 OFFSET $3
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "genres").Inc()
	rows, err := r.db.Query(ctx, sql, likePattern(query.Terms), query.PerPage, query.Offset())
	if err != nil {
		return repository.Page[*model.Genre]{}, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	page := repository.Page[*model.Genre]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
	}
	for rows.Next() {
		var (
			genre model.Genre
			total int64
		)
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Active,
			&genre.Categories,
			&genre.CreatedAt,
			&genre.UpdatedAt,
			&total,
		)
		if err != nil {
			return repository.Page[*model.Genre]{}, fmt.Errorf("failed to scan genre: %w", err)
		}
		page.Total = total
		page.Items = append(page.Items, &genre)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[*model.Genre]{}, fmt.Errorf("error iterating genres: %w", err)
	}

	return page, nil
}

// ExistsByIDs returns the subset of the given ids that exist.
func (r *GenreRepository) ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `SELECT id FROM genres WHERE id = ANY($1)`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "genres").Inc()
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query genre ids: %w", err)
	}
	defer rows.Close()

	var existing []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan genre id: %w", err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genre ids: %w", err)
	}

	return existing, nil
}

// Compile-time verification that GenreRepository implements repository.GenreRepository.
var _ repository.GenreRepository = (*GenreRepository)(nil)
