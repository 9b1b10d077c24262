package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

// CreateVideoInput contains the input parameters for creating a video.
type CreateVideoInput struct {
	Title       string
	Description string
	LaunchedAt  int
	Duration    float64
	Rating      model.Rating
	Opened      bool
	Published   bool
	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

// UpdateVideoInput contains the input parameters for updating a video.
type UpdateVideoInput struct {
	ID uuid.UUID
	CreateVideoInput
}

// UploadMediaInput contains the input parameters for attaching a binary asset
// to one of the video's media slots.
type UploadMediaInput struct {
	VideoID   uuid.UUID
	MediaType model.MediaType
	Resource  repository.Resource
}

// VideoListItem is the output record for video listings.
type VideoListItem struct {
	ID          uuid.UUID
	Title       string
	Description string
	LaunchedAt  int
	Rating      model.Rating
	CreatedAt   time.Time
}

// VideoService defines the interface for video business logic operations.
type VideoService interface {
	// CreateVideo validates and persists a new video aggregate. Every
	// violated invariant, including broken category/genre/cast member
	// references, is reported in one *model.ValidationError.
	CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error)

	// GetVideo retrieves a video by ID.
	GetVideo(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// ListVideos returns one page of videos matching the query.
	ListVideos(ctx context.Context, query repository.SearchQuery) (repository.Page[VideoListItem], error)

	// UpdateVideo applies new descriptive fields, leaving media slots alone.
	UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error)

	// DeleteVideo removes the aggregate and clears its stored binaries.
	DeleteVideo(ctx context.Context, id uuid.UUID) error

	// UploadMedia stores a binary asset, fills the named media slot and,
	// for trailer/full-video slots, hands the raw asset to the encoder.
	UploadMedia(ctx context.Context, input UploadMediaInput) (*model.Video, error)

	// GetMediaResource streams back the stored payload for a slot.
	GetMediaResource(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType) (*repository.Resource, error)
}

type videoService struct {
	repo        repository.VideoRepository
	categories  repository.CategoryRepository
	genres      repository.GenreRepository
	castMembers repository.CastMemberRepository
	media       repository.MediaResourceGateway
	queue       repository.MessageQueue
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(
	repo repository.VideoRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
	castMembers repository.CastMemberRepository,
	media repository.MediaResourceGateway,
	queue repository.MessageQueue,
) VideoService {
	return &videoService{
		repo:        repo,
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
		media:       media,
		queue:       queue,
	}
}

func (s *videoService) CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error) {
	video := model.NewVideo(
		input.Title,
		input.Description,
		input.LaunchedAt,
		input.Duration,
		input.Rating,
		input.Opened,
		input.Published,
		input.Categories,
		input.Genres,
		input.CastMembers,
	)

	n := model.NewNotification()
	video.Validate(n)
	s.validateRelations(ctx, n, input)
	if n.HasErrors() {
		return nil, model.NewValidationError(n)
	}

	if err := s.repo.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	return video, nil
}

func (s *videoService) GetVideo(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *videoService) ListVideos(ctx context.Context, query repository.SearchQuery) (repository.Page[VideoListItem], error) {
	page, err := s.repo.FindAll(ctx, query)
	if err != nil {
		return repository.Page[VideoListItem]{}, fmt.Errorf("list videos: %w", err)
	}

	return repository.MapPage(page, func(v *model.Video) VideoListItem {
		return VideoListItem{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			LaunchedAt:  v.LaunchedAt,
			Rating:      v.Rating,
			CreatedAt:   v.CreatedAt,
		}
	}), nil
}

func (s *videoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error) {
	// Mutation and validation run inside the repository's locked
	// read-modify-write so a concurrent encoder event cannot slip its slot
	// update between this read and this write.
	var updated *model.Video
	err := s.repo.Update(ctx, input.ID, func(video *model.Video) (bool, error) {
		video.Update(
			input.Title,
			input.Description,
			input.LaunchedAt,
			input.Duration,
			input.Rating,
			input.Opened,
			input.Published,
			input.Categories,
			input.Genres,
			input.CastMembers,
		)

		n := model.NewNotification()
		video.Validate(n)
		s.validateRelations(ctx, n, input.CreateVideoInput)
		if n.HasErrors() {
			return false, model.NewValidationError(n)
		}

		updated = video
		return true, nil
	})
	if err != nil {
		var validationErr *model.ValidationError
		if errors.Is(err, repository.ErrVideoNotFound) || errors.As(err, &validationErr) {
			return nil, err
		}
		return nil, fmt.Errorf("update video: %w", err)
	}

	return updated, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	if err := s.media.ClearResources(ctx, id); err != nil {
		// The catalog entry is already gone; orphaned binaries are cleaned
		// up out of band.
		slog.Warn("failed to clear media resources",
			slog.String("video_id", id.String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

func (s *videoService) UploadMedia(ctx context.Context, input UploadMediaInput) (*model.Video, error) {
	if !input.MediaType.IsValid() {
		return nil, model.ErrUnknownMediaType
	}

	// Check existence before storing the binary so a bad id fails without an
	// orphaned object. The slot itself is filled under the repository's row
	// lock, so a status event racing this upload sees either the old media or
	// the new one, never a half-applied mix.
	if _, err := s.repo.GetByID(ctx, input.VideoID); err != nil {
		return nil, err
	}

	var updated *model.Video
	switch input.MediaType {
	case model.MediaTypeTrailer, model.MediaTypeVideo:
		media, err := s.media.StoreVideo(ctx, input.VideoID, input.MediaType, input.Resource)
		if err != nil {
			return nil, fmt.Errorf("store video media: %w", err)
		}

		err = s.repo.Update(ctx, input.VideoID, func(video *model.Video) (bool, error) {
			if input.MediaType == model.MediaTypeTrailer {
				video.UpdateTrailerMedia(media)
			} else {
				video.UpdateVideoMedia(media)
			}
			updated = video
			return true, nil
		})
		if err != nil {
			return nil, fmt.Errorf("update video: %w", err)
		}

		req := repository.EncodeRequest{
			VideoID:     input.VideoID,
			ResourceID:  media.ID,
			MediaType:   input.MediaType.String(),
			RawLocation: media.RawLocation,
		}
		if err := s.queue.PublishEncodeRequest(ctx, req); err != nil {
			return nil, fmt.Errorf("publish encode request: %w", err)
		}

	default:
		media, err := s.media.StoreImage(ctx, input.VideoID, input.MediaType, input.Resource)
		if err != nil {
			return nil, fmt.Errorf("store image media: %w", err)
		}

		err = s.repo.Update(ctx, input.VideoID, func(video *model.Video) (bool, error) {
			switch input.MediaType {
			case model.MediaTypeBanner:
				video.UpdateBanner(media)
			case model.MediaTypeThumbnail:
				video.UpdateThumbnail(media)
			case model.MediaTypeThumbnailHalf:
				video.UpdateThumbnailHalf(media)
			}
			updated = video
			return true, nil
		})
		if err != nil {
			return nil, fmt.Errorf("update video: %w", err)
		}
	}

	return updated, nil
}

func (s *videoService) GetMediaResource(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType) (*repository.Resource, error) {
	if !mediaType.IsValid() {
		return nil, model.ErrUnknownMediaType
	}
	return s.media.GetResource(ctx, videoID, mediaType)
}

func (s *videoService) validateRelations(ctx context.Context, n *model.Notification, input CreateVideoInput) {
	appendMissingIDs(ctx, n, "categories", input.Categories, s.categories.ExistsByIDs)
	appendMissingIDs(ctx, n, "genres", input.Genres, s.genres.ExistsByIDs)
	appendMissingIDs(ctx, n, "cast members", input.CastMembers, s.castMembers.ExistsByIDs)
}
