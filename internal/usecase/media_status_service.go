package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
	"github.com/flixkit/catalog/internal/infrastructure/cache"
	"github.com/flixkit/catalog/internal/infrastructure/metrics"
)

// UpdateMediaStatusInput is the decoded completion-or-error signal from the
// external encoder.
type UpdateMediaStatusInput struct {
	VideoID     uuid.UUID
	ResourceID  uuid.UUID
	EncodedPath string
	Status      model.MediaStatus
}

// MediaStatusService reconciles externally reported encoding progress with
// the catalog's view of a video's media state.
//
// Delivery is at-least-once with no ordering guarantee, so the operation is
// idempotent: events for unknown videos, stale resource ids, duplicate
// terminal states and illegal transitions are absorbed as no-ops (counted and
// logged, never surfaced). Only operational failures return an error, which
// lets the broker's requeue policy own retries.
type MediaStatusService interface {
	UpdateMediaStatus(ctx context.Context, input UpdateMediaStatusInput) error
}

type mediaStatusService struct {
	repo  repository.VideoRepository
	cache cache.VideoCache
}

// NewMediaStatusService creates a new MediaStatusService instance.
// cache may be nil when no invalidation is needed.
func NewMediaStatusService(repo repository.VideoRepository, videoCache cache.VideoCache) MediaStatusService {
	return &mediaStatusService{repo: repo, cache: videoCache}
}

func (s *mediaStatusService) UpdateMediaStatus(ctx context.Context, input UpdateMediaStatusInput) error {
	// The legality check and the write run inside the repository's locked
	// read-modify-write, so a concurrent delivery for the same video is
	// checked against the state this one committed, not a shared snapshot.
	applied := false
	err := s.repo.Update(ctx, input.VideoID, func(video *model.Video) (bool, error) {
		mediaType, media, ok := matchMediaResource(video, input.ResourceID)
		if !ok {
			// Stale signal for a slot whose media has since been replaced.
			slog.Warn("media status event for unknown resource",
				slog.String("video_id", input.VideoID.String()),
				slog.String("resource_id", input.ResourceID.String()),
			)
			metrics.ReconciliationEventsTotal.WithLabelValues(metrics.ReconciliationStaleResource).Inc()
			return false, nil
		}

		if media.Status == input.Status {
			// Redelivery of an already-applied transition.
			metrics.ReconciliationEventsTotal.WithLabelValues(metrics.ReconciliationDuplicate).Inc()
			return false, nil
		}

		var transitionErr error
		switch input.Status {
		case model.MediaStatusProcessing:
			transitionErr = video.Processing(mediaType)
		case model.MediaStatusCompleted:
			transitionErr = video.Completed(mediaType, input.EncodedPath)
		case model.MediaStatusError:
			transitionErr = video.Failed(mediaType)
		default:
			slog.Warn("media status event with unknown status",
				slog.String("video_id", input.VideoID.String()),
				slog.String("status", input.Status.String()),
			)
			metrics.ReconciliationEventsTotal.WithLabelValues(metrics.ReconciliationInvalidEvent).Inc()
			return false, nil
		}

		if transitionErr != nil {
			if errors.Is(transitionErr, model.ErrInvalidTransition) || errors.Is(transitionErr, model.ErrEmptyEncodedLocation) {
				// A stale or duplicate signal must never regress a more
				// advanced state; no persistence happens.
				slog.Warn("media status transition rejected",
					slog.String("video_id", input.VideoID.String()),
					slog.String("media_type", mediaType.String()),
					slog.String("current_status", media.Status.String()),
					slog.String("requested_status", input.Status.String()),
					slog.String("error", transitionErr.Error()),
				)
				metrics.ReconciliationEventsTotal.WithLabelValues(metrics.ReconciliationIllegalTransition).Inc()
				return false, nil
			}
			return false, transitionErr
		}

		applied = true
		return true, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			// No sender to report back to; drop the event.
			slog.Warn("media status event for unknown video",
				slog.String("video_id", input.VideoID.String()),
				slog.String("resource_id", input.ResourceID.String()),
			)
			metrics.ReconciliationEventsTotal.WithLabelValues(metrics.ReconciliationUnknownVideo).Inc()
			return nil
		}
		return fmt.Errorf("update video: %w", err)
	}

	if applied {
		s.invalidateCache(ctx, input.VideoID)
		metrics.ReconciliationEventsTotal.WithLabelValues(metrics.ReconciliationApplied).Inc()
	}
	return nil
}

// matchMediaResource resolves which slot the event's resource id refers to by
// comparing against the aggregate's current media ids.
func matchMediaResource(video *model.Video, resourceID uuid.UUID) (model.MediaType, model.VideoMedia, bool) {
	if trailer, ok := video.VideoMediaFor(model.MediaTypeTrailer); ok && trailer.ID == resourceID {
		return model.MediaTypeTrailer, trailer, true
	}
	if full, ok := video.VideoMediaFor(model.MediaTypeVideo); ok && full.ID == resourceID {
		return model.MediaTypeVideo, full, true
	}
	return "", model.VideoMedia{}, false
}

func (s *mediaStatusService) invalidateCache(ctx context.Context, videoID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, videoID); err != nil {
		slog.Warn("failed to invalidate video cache",
			slog.String("video_id", videoID.String()),
			slog.String("error", err.Error()),
		)
	}
}
