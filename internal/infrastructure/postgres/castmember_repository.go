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

var castMemberSortColumns = map[string]string{
	"name":       "name",
	"type":       "type",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// CastMemberRepository implements repository.CastMemberRepository using PostgreSQL.
type CastMemberRepository struct {
	db DBTX
}

// NewCastMemberRepository creates a new CastMemberRepository instance.
func NewCastMemberRepository(db DBTX) *CastMemberRepository {
	return &CastMemberRepository{db: db}
}

// Create persists a new cast member.
func (r *CastMemberRepository) Create(ctx context.Context, member *model.CastMember) error {
	const query = `
		INSERT INTO cast_members (id, name, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, "cast_members").Inc()
	_, err := r.db.Exec(ctx, query,
		member.ID,
		member.Name,
		member.Type.String(),
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateEntity
		}
		return fmt.Errorf("failed to create cast member: %w", err)
	}

	return nil
}

// GetByID retrieves a cast member by its unique identifier.
func (r *CastMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CastMember, error) {
	const query = `
		SELECT id, name, type, created_at, updated_at
		FROM cast_members
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "cast_members").Inc()

	var (
		member     model.CastMember
		memberType string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.Name,
		&memberType,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCastMemberNotFound
		}
		return nil, fmt.Errorf("failed to get cast member by ID: %w", err)
	}

	member.Type = model.CastMemberType(memberType)
	return &member, nil
}

// Update persists changes to an existing cast member.
func (r *CastMemberRepository) Update(ctx context.Context, member *model.CastMember) error {
	const query = `
		UPDATE cast_members
		SET name = $2, type = $3, updated_at = $4
		WHERE id = $1
	`

	member.UpdatedAt = time.Now()

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, "cast_members").Inc()
	tag, err := r.db.Exec(ctx, query,
		member.ID,
		member.Name,
		member.Type.String(),
		member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update cast member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrCastMemberNotFound
	}

	return nil
}

// DeleteByID removes a cast member. Deleting an absent id is a no-op.
func (r *CastMemberRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM cast_members WHERE id = $1`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, "cast_members").Inc()
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete cast member: %w", err)
	}

	return nil
}

// FindAll returns one page of cast members matching the search query.
func (r *CastMemberRepository) FindAll(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.CastMember], error) {
	sql := `
		SELECT id, name, type, created_at, updated_at, count(*) OVER() AS total
		FROM cast_members
		WHERE ($1 = '' OR name ILIKE $1)
		ORDER BY ` + orderClause(query, castMemberSortColumns, "name") + `
		LIMIT $2 OFFSET $3
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "cast_members").Inc()
	rows, err := r.db.Query(ctx, sql, likePattern(query.Terms), query.PerPage, query.Offset())
	if err != nil {
		return repository.Page[*model.CastMember]{}, fmt.Errorf("failed to query cast members: %w", err)
	}
	defer rows.Close()

	page := repository.Page[*model.CastMember]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
	}
	for rows.Next() {
		var (
			member     model.CastMember
			memberType string
			total      int64
		)
		err := rows.Scan(
			&member.ID,
			&member.Name,
			&memberType,
			&member.CreatedAt,
			&member.UpdatedAt,
			&total,
		)
		if err != nil {
			return repository.Page[*model.CastMember]{}, fmt.Errorf("failed to scan cast member: %w", err)
		}
		member.Type = model.CastMemberType(memberType)
		page.Total = total
		page.Items = append(page.Items, &member)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[*model.CastMember]{}, fmt.Errorf("error iterating cast members: %w", err)
	}

	return page, nil
}

// ExistsByIDs returns the subset of the given ids that exist.
func (r *CastMemberRepository) ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `SELECT id FROM cast_members WHERE id = ANY($1)`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "cast_members").Inc()
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query cast member ids: %w", err)
	}
	defer rows.Close()

	var existing []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cast member id: %w", err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cast member ids: %w", err)
	}

	return existing, nil
}

// Compile-time verification that CastMemberRepository implements repository.CastMemberRepository.
var _ repository.CastMemberRepository = (*CastMemberRepository)(nil)
