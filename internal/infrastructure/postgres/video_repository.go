package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
	"github.com/flixkit/catalog/internal/infrastructure/metrics"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// videoSortColumns maps accepted sort fields to their column names.
var videoSortColumns = map[string]string{
	"title":       "title",
	"launched_at": "launched_at",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}

// videoMediaRecord is the jsonb representation of an audiovisual media slot.
type videoMediaRecord struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Checksum        string    `json:"checksum"`
	RawLocation     string    `json:"raw_location"`
	EncodedLocation string    `json:"encoded_location"`
	Status          string    `json:"status"`
}

// imageMediaRecord is the jsonb representation of an image media slot.
type imageMediaRecord struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
	Checksum string    `json:"checksum"`
}

// VideoRepository implements repository.VideoRepository using PostgreSQL.
// Media slots are stored as jsonb columns and relation ids as uuid arrays,
// so the whole aggregate loads with a single row read.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = `id, title, description, launched_at, duration, rating, opened, published,
		banner, thumbnail, thumbnail_half, trailer, video_media,
		categories, genres, cast_members, created_at, updated_at`

// Create persists a new video aggregate.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (id, title, description, launched_at, duration, rating, opened, published,
			banner, thumbnail, thumbnail_half, trailer, video_media,
			categories, genres, cast_members, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	args, err := videoArgs(video)
	if err != nil {
		return err
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, "videos").Inc()
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateEntity
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video aggregate by its unique identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "videos").Inc()
	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	return video, nil
}

// Update applies fn to the current row under a FOR UPDATE lock and persists
// the mutated aggregate in the same transaction. A concurrent Update on the
// same id blocks on the lock and then sees the committed row, so fn's checks
// always run against the state the write will replace.
func (r *VideoRepository) Update(ctx context.Context, id uuid.UUID, fn func(video *model.Video) (bool, error)) error {
	const selectQuery = `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE id = $1
		FOR UPDATE
	`
	const updateQuery = `
		UPDATE videos
		SET title = $2, description = $3, launched_at = $4, duration = $5, rating = $6,
			opened = $7, published = $8,
			banner = $9, thumbnail = $10, thumbnail_half = $11, trailer = $12, video_media = $13,
			categories = $14, genres = $15, cast_members = $16, updated_at = $17
		WHERE id = $1
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "videos").Inc()
	video, err := scanVideo(tx.QueryRow(ctx, selectQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrVideoNotFound
		}
		return fmt.Errorf("failed to lock video: %w", err)
	}

	persist, err := fn(video)
	if err != nil {
		return err
	}
	if !persist {
		return tx.Commit(ctx)
	}

	args, err := videoArgs(video)
	if err != nil {
		return err
	}
	// Drop created_at: it is never rewritten. The updated_at written is the
	// one the aggregate stamped when fn mutated it.
	args = append(args[:16], args[17])

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, "videos").Inc()
	if _, err := tx.Exec(ctx, updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteByID removes a video aggregate. Deleting an absent id is a no-op.
func (r *VideoRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM videos WHERE id = $1`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, "videos").Inc()
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	return nil
}

// FindAll returns one page of videos matching the search query.
func (r *VideoRepository) FindAll(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Video], error) {
	sql := `
		SELECT ` + videoColumns + `, count(*) OVER() AS total
		FROM videos
		WHERE ($1 = '' OR title ILIKE $1)
		ORDER BY ` + orderClause(query, videoSortColumns, "title") + `
		LIMIT $2 OFFSET $3
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, "videos").Inc()
	rows, err := r.db.Query(ctx, sql, likePattern(query.Terms), query.PerPage, query.Offset())
	if err != nil {
		return repository.Page[*model.Video]{}, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	page := repository.Page[*model.Video]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
	}
	for rows.Next() {
		video, total, err := scanVideoWithTotal(rows)
		if err != nil {
			return repository.Page[*model.Video]{}, fmt.Errorf("failed to scan video: %w", err)
		}
		page.Total = total
		page.Items = append(page.Items, video)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[*model.Video]{}, fmt.Errorf("error iterating videos: %w", err)
	}

	return page, nil
}

func videoArgs(video *model.Video) ([]any, error) {
	banner, err := marshalImage(video.Banner)
	if err != nil {
		return nil, fmt.Errorf("marshal banner: %w", err)
	}
	thumbnail, err := marshalImage(video.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("marshal thumbnail: %w", err)
	}
	thumbnailHalf, err := marshalImage(video.ThumbnailHalf)
	if err != nil {
		return nil, fmt.Errorf("marshal thumbnail half: %w", err)
	}
	trailer, err := marshalVideoMedia(video.Trailer)
	if err != nil {
		return nil, fmt.Errorf("marshal trailer: %w", err)
	}
	videoMedia, err := marshalVideoMedia(video.Video)
	if err != nil {
		return nil, fmt.Errorf("marshal video media: %w", err)
	}

	return []any{
		video.ID,
		video.Title,
		video.Description,
		video.LaunchedAt,
		video.Duration,
		video.Rating.String(),
		video.Opened,
		video.Published,
		banner,
		thumbnail,
		thumbnailHalf,
		trailer,
		videoMedia,
		video.Categories,
		video.Genres,
		video.CastMembers,
		video.CreatedAt,
		video.UpdatedAt,
	}, nil
}

func scanVideo(row pgx.Row) (*model.Video, error) {
	var (
		video         model.Video
		rating        string
		banner        []byte
		thumbnail     []byte
		thumbnailHalf []byte
		trailer       []byte
		videoMedia    []byte
	)

	err := row.Scan(
		&video.ID,
		&video.Title,
		&video.Description,
		&video.LaunchedAt,
		&video.Duration,
		&rating,
		&video.Opened,
		&video.Published,
		&banner,
		&thumbnail,
		&thumbnailHalf,
		&trailer,
		&videoMedia,
		&video.Categories,
		&video.Genres,
		&video.CastMembers,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return hydrateVideo(&video, rating, banner, thumbnail, thumbnailHalf, trailer, videoMedia)
}

func scanVideoWithTotal(rows pgx.Rows) (*model.Video, int64, error) {
	var (
		video         model.Video
		rating        string
		banner        []byte
		thumbnail     []byte
		thumbnailHalf []byte
		trailer       []byte
		videoMedia    []byte
		total         int64
	)

	err := rows.Scan(
		&video.ID,
		&video.Title,
		&video.Description,
		&video.LaunchedAt,
		&video.Duration,
		&rating,
		&video.Opened,
		&video.Published,
		&banner,
		&thumbnail,
		&thumbnailHalf,
		&trailer,
		&videoMedia,
		&video.Categories,
		&video.Genres,
		&video.CastMembers,
		&video.CreatedAt,
		&video.UpdatedAt,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}

	hydrated, err := hydrateVideo(&video, rating, banner, thumbnail, thumbnailHalf, trailer, videoMedia)
	if err != nil {
		return nil, 0, err
	}

	return hydrated, total, nil
}

func hydrateVideo(video *model.Video, rating string, banner, thumbnail, thumbnailHalf, trailer, videoMedia []byte) (*model.Video, error) {
	video.Rating = model.Rating(rating)

	var err error
	if video.Banner, err = unmarshalImage(banner); err != nil {
		return nil, fmt.Errorf("unmarshal banner: %w", err)
	}
	if video.Thumbnail, err = unmarshalImage(thumbnail); err != nil {
		return nil, fmt.Errorf("unmarshal thumbnail: %w", err)
	}
	if video.ThumbnailHalf, err = unmarshalImage(thumbnailHalf); err != nil {
		return nil, fmt.Errorf("unmarshal thumbnail half: %w", err)
	}
	if video.Trailer, err = unmarshalVideoMedia(trailer); err != nil {
		return nil, fmt.Errorf("unmarshal trailer: %w", err)
	}
	if video.Video, err = unmarshalVideoMedia(videoMedia); err != nil {
		return nil, fmt.Errorf("unmarshal video media: %w", err)
	}

	return video, nil
}

func marshalImage(media *model.ImageMedia) ([]byte, error) {
	if media == nil {
		return nil, nil
	}
	return json.Marshal(imageMediaRecord{
		ID:       media.ID,
		Name:     media.Name,
		Location: media.Location,
		Checksum: media.Checksum,
	})
}

func unmarshalImage(data []byte) (*model.ImageMedia, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var record imageMediaRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &model.ImageMedia{
		ID:       record.ID,
		Name:     record.Name,
		Location: record.Location,
		Checksum: record.Checksum,
	}, nil
}

func marshalVideoMedia(media *model.VideoMedia) ([]byte, error) {
	if media == nil {
		return nil, nil
	}
	return json.Marshal(videoMediaRecord{
		ID:              media.ID,
		Name:            media.Name,
		Checksum:        media.Checksum,
		RawLocation:     media.RawLocation,
		EncodedLocation: media.EncodedLocation,
		Status:          media.Status.String(),
	})
}

func unmarshalVideoMedia(data []byte) (*model.VideoMedia, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var record videoMediaRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &model.VideoMedia{
		ID:              record.ID,
		Name:            record.Name,
		Checksum:        record.Checksum,
		RawLocation:     record.RawLocation,
		EncodedLocation: record.EncodedLocation,
		Status:          model.MediaStatus(record.Status),
	}, nil
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
