package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
)

// VideoRepository defines the persistence gateway for the video aggregate.
// Implementations are provided by the infrastructure layer (e.g. PostgreSQL).
type VideoRepository interface {
	// Create persists a new video aggregate.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by its unique identifier.
	// Returns ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// Update loads the aggregate under a row lock, applies fn to it and
	// persists the result within the same transaction, so fn's checks and
	// the write cannot interleave with a concurrent mutation of the same
	// video. fn returns false to skip the write (the transaction still
	// commits). Returns ErrVideoNotFound if the video does not exist and
	// any error fn returns unchanged.
	Update(ctx context.Context, id uuid.UUID, fn func(video *model.Video) (bool, error)) error

	// DeleteByID removes a video. Deleting an absent video is not an error.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// FindAll returns one page of videos matching the search query.
	FindAll(ctx context.Context, query SearchQuery) (Page[*model.Video], error)
}

// CategoryRepository defines the persistence gateway for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, query SearchQuery) (Page[*model.Category], error)

	// ExistsByIDs returns the subset of ids that exist, used to validate
	// cross-aggregate references without loading the aggregates.
	ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// GenreRepository defines the persistence gateway for genres.
type GenreRepository interface {
	Create(ctx context.Context, genre *model.Genre) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	Update(ctx context.Context, genre *model.Genre) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, query SearchQuery) (Page[*model.Genre], error)
	ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// CastMemberRepository defines the persistence gateway for cast members.
type CastMemberRepository interface {
	Create(ctx context.Context, member *model.CastMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CastMember, error)
	Update(ctx context.Context, member *model.CastMember) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, query SearchQuery) (Page[*model.CastMember], error)
	ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
