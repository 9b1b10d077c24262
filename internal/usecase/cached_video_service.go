package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
	"github.com/flixkit/catalog/internal/infrastructure/cache"
	"github.com/flixkit/catalog/internal/infrastructure/metrics"
)

// CachedVideoServiceConfig holds configuration for CachedVideoService.
type CachedVideoServiceConfig struct {
	// CacheTTL is the TTL for cached video aggregates.
	CacheTTL time.Duration
}

// DefaultCachedVideoServiceConfig returns the default configuration.
func DefaultCachedVideoServiceConfig() CachedVideoServiceConfig {
	return CachedVideoServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedVideoService wraps VideoService with read-through caching.
// Decorator pattern: caching is added without modifying the original service.
type cachedVideoService struct {
	delegate VideoService
	cache    cache.VideoCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedVideoService creates a VideoService that caches GetVideo results
// and invalidates on every mutation.
func NewCachedVideoService(
	delegate VideoService,
	videoCache cache.VideoCache,
	cfg CachedVideoServiceConfig,
) VideoService {
	return &cachedVideoService{
		delegate: delegate,
		cache:    videoCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// CreateVideo delegates to the underlying service. Nothing to invalidate:
// a freshly created video cannot be cached yet.
func (s *cachedVideoService) CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error) {
	return s.delegate.CreateVideo(ctx, input)
}

// GetVideo returns the cached aggregate when present; concurrent misses for
// the same id share a single database read via singleflight.
func (s *cachedVideoService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	result, err, shared := s.sfGroup.Do(videoID.String(), func() (interface{}, error) {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
		return s.getVideoWithCache(ctx, videoID)
	})
	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	}
	if err != nil {
		return nil, err
	}

	return result.(*model.Video), nil
}

func (s *cachedVideoService) ListVideos(ctx context.Context, query repository.SearchQuery) (repository.Page[VideoListItem], error) {
	return s.delegate.ListVideos(ctx, query)
}

func (s *cachedVideoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*model.Video, error) {
	video, err := s.delegate.UpdateVideo(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, input.ID)
	return video, nil
}

func (s *cachedVideoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	if err := s.delegate.DeleteVideo(ctx, videoID); err != nil {
		return err
	}
	s.invalidate(ctx, videoID)
	return nil
}

func (s *cachedVideoService) UploadMedia(ctx context.Context, input UploadMediaInput) (*model.Video, error) {
	video, err := s.delegate.UploadMedia(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, input.VideoID)
	return video, nil
}

func (s *cachedVideoService) GetMediaResource(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType) (*repository.Resource, error) {
	return s.delegate.GetMediaResource(ctx, videoID, mediaType)
}

// getVideoWithCache implements the cache-aside pattern.
func (s *cachedVideoService) getVideoWithCache(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.cache.Get(ctx, videoID)
	if err != nil {
		// Cache errors never fail a read; fall back to the database.
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
		slog.Warn("cache get failed, falling back to database",
			"video_id", videoID,
			"error", err,
		)
	}

	if video != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
		return video, nil
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()

	video, err = s.delegate.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, video, s.cacheTTL); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		slog.Warn("failed to cache video",
			"video_id", videoID,
			"error", err,
		)
	} else {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	}

	return video, nil
}

func (s *cachedVideoService) invalidate(ctx context.Context, videoID uuid.UUID) {
	if err := s.cache.Delete(ctx, videoID); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError).Inc()
		slog.Warn("failed to invalidate video cache",
			"video_id", videoID,
			"error", err,
		)
		return
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
}
