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

var categorySortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// CategoryRepository implements repository.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	const query = `
		INSERT INTO categories (id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, "categories").Inc()
	_, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.Active,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateEntity
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by its unique identifier.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	const query = `
		SELECT id, name, description, active, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "categories").Inc()

	var category model.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Active,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}

	return &category, nil
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	const query = `
		UPDATE categories
		SET name = $2, description = $3, active = $4, updated_at = $5
		WHERE id = $1
	`

	category.UpdatedAt = time.Now()

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, "categories").Inc()
	tag, err := r.db.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.Active,
		category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// DeleteByID removes a category. Deleting an absent id is a no-op.
func (r *CategoryRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM categories WHERE id = $1`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, "categories").Inc()
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

// FindAll returns one page of categories matching the search query.
func (r *CategoryRepository) FindAll(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Category], error) {
	sql := `
		SELECT id, name, description, active, created_at, updated_at, count(*) OVER() AS total
		FROM categories
		WHERE ($1 = '' OR name ILIKE $1 OR description ILIKE $1)
		ORDER BY ` + orderClause(query, categorySortColumns, "name") + `
		LIMIT $2 OFFSET $3
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "categories").Inc()
	rows, err := r.db.Query(ctx, sql, likePattern(query.Terms), query.PerPage, query.Offset())
	if err != nil {
		return repository.Page[*model.Category]{}, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	page := repository.Page[*model.Category]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
	}
	for rows.Next() {
		var (
			category model.Category
			total    int64
		)
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.Active,
			&category.CreatedAt,
			&category.UpdatedAt,
			&total,
		)
		if err != nil {
			return repository.Page[*model.Category]{}, fmt.Errorf("failed to scan category: %w", err)
		}
		page.Total = total
		page.Items = append(page.Items, &category)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[*model.Category]{}, fmt.Errorf("error iterating categories: %w", err)
	}

	return page, nil
}

// ExistsByIDs returns the subset of the given ids that exist.
func (r *CategoryRepository) ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `SELECT id FROM categories WHERE id = ANY($1)`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "categories").Inc()
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query category ids: %w", err)
	}
	defer rows.Close()

	var existing []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan category id: %w", err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category ids: %w", err)
	}

	return existing, nil
}

// Compile-time verification that CategoryRepository implements repository.CategoryRepository.
var _ repository.CategoryRepository = (*CategoryRepository)(nil)
