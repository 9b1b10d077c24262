package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

func videoWithTrailer(t *testing.T, status model.MediaStatus) (*model.Video, model.VideoMedia) {
	t.Helper()

	video := model.NewVideo("Test Video", "", 2023, 90, model.RatingL, false, true, nil, nil, nil)
	media := model.NewVideoMedia("trailer.mp4", "abc", "raw/trailer.mp4")
	media.Status = status
	if status == model.MediaStatusCompleted {
		media.EncodedLocation = "enc/trailer.mp4"
	}
	video.UpdateTrailerMedia(media)

	return video, media
}

// lockingRepo returns a mock whose Update applies fn to the given aggregate
// and counts how many calls actually persisted.
func lockingRepo(t *testing.T, video *model.Video, persisted *int) *mockVideoRepository {
	t.Helper()

	return &mockVideoRepository{
		updateFn: func(ctx context.Context, id uuid.UUID, apply func(video *model.Video) (bool, error)) error {
			if id != video.ID {
				t.Errorf("locked wrong video: %s", id)
			}
			persist, err := apply(video)
			if err != nil {
				return err
			}
			if persist {
				*persisted++
			}
			return nil
		},
	}
}

func TestMediaStatusService_CompletedFromPending(t *testing.T) {
	video, media := videoWithTrailer(t, model.MediaStatusPending)

	persisted := 0
	repo := lockingRepo(t, video, &persisted)

	deleted := 0
	videoCache := &mockVideoCache{
		deleteFn: func(ctx context.Context, videoID uuid.UUID) error {
			deleted++
			return nil
		},
	}

	svc := NewMediaStatusService(repo, videoCache)
	err := svc.UpdateMediaStatus(context.Background(), UpdateMediaStatusInput{
		VideoID:     video.ID,
		ResourceID:  media.ID,
		EncodedPath: "enc/trailer.mp4",
		Status:      model.MediaStatusCompleted,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted != 1 {
		t.Errorf("expected exactly 1 persisted write, got %d", persisted)
	}
	if deleted != 1 {
		t.Errorf("expected cache invalidation, got %d deletes", deleted)
	}

	trailer, ok := video.VideoMediaFor(model.MediaTypeTrailer)
	if !ok {
		t.Fatal("trailer slot empty after persist")
	}
	if trailer.Status != model.MediaStatusCompleted {
		t.Errorf("persisted status = %s, want COMPLETED", trailer.Status)
	}
	if trailer.EncodedLocation != "enc/trailer.mp4" {
		t.Errorf("persisted encoded location = %q", trailer.EncodedLocation)
	}
}

func TestMediaStatusService_DuplicateCompletedIsNoOp(t *testing.T) {
	video, media := videoWithTrailer(t, model.MediaStatusCompleted)

	persisted := 0
	repo := lockingRepo(t, video, &persisted)

	svc := NewMediaStatusService(repo, nil)
	err := svc.UpdateMediaStatus(context.Background(), UpdateMediaStatusInput{
		VideoID:     video.ID,
		ResourceID:  media.ID,
		EncodedPath: "enc/trailer.mp4",
		Status:      model.MediaStatusCompleted,
	})
	if err != nil {
		t.Fatalf("redelivered terminal event should be a no-op success, got %v", err)
	}
	if persisted != 0 {
		t.Errorf("redelivery must not persist, got %d writes", persisted)
	}

	trailer, _ := video.VideoMediaFor(model.MediaTypeTrailer)
	if trailer.Status != model.MediaStatusCompleted || trailer.EncodedLocation != "enc/trailer.mp4" {
		t.Errorf("final state changed by redelivery: %+v", trailer)
	}
}

func TestMediaStatusService_IllegalTransitionIsAbsorbed(t *testing.T) {
	video, media := videoWithTrailer(t, model.MediaStatusCompleted)

	persisted := 0
	repo := lockingRepo(t, video, &persisted)

	svc := NewMediaStatusService(repo, nil)
	err := svc.UpdateMediaStatus(context.Background(), UpdateMediaStatusInput{
		VideoID:    video.ID,
		ResourceID: media.ID,
		Status:     model.MediaStatusProcessing,
	})
	if err != nil {
		t.Fatalf("illegal transition should be absorbed, got %v", err)
	}
	if persisted != 0 {
		t.Errorf("illegal transition must not persist, got %d writes", persisted)
	}

	trailer, _ := video.VideoMediaFor(model.MediaTypeTrailer)
	if trailer.Status != model.MediaStatusCompleted {
		t.Errorf("stored aggregate regressed to %s", trailer.Status)
	}
}

func TestMediaStatusService_StaleResourceIsDropped(t *testing.T) {
	video, _ := videoWithTrailer(t, model.MediaStatusPending)

	persisted := 0
	repo := lockingRepo(t, video, &persisted)

	svc := NewMediaStatusService(repo, nil)
	err := svc.UpdateMediaStatus(context.Background(), UpdateMediaStatusInput{
		VideoID:     video.ID,
		ResourceID:  uuid.New(), // matches neither trailer nor full video
		EncodedPath: "enc/trailer.mp4",
		Status:      model.MediaStatusCompleted,
	})
	if err != nil {
		t.Fatalf("stale resource event should complete without error, got %v", err)
	}
	if persisted != 0 {
		t.Errorf("stale resource event must not persist, got %d writes", persisted)
	}
}

func TestMediaStatusService_UnknownVideoIsDropped(t *testing.T) {
	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return nil, repository.ErrVideoNotFound
		},
	}

	svc := NewMediaStatusService(repo, nil)
	err := svc.UpdateMediaStatus(context.Background(), UpdateMediaStatusInput{
		VideoID:     uuid.New(),
		ResourceID:  uuid.New(),
		EncodedPath: "enc/x.mp4",
		Status:      model.MediaStatusCompleted,
	})
	if err != nil {
		t.Fatalf("unknown video should be dropped, not raised, got %v", err)
	}
}

func TestMediaStatusService_ErrorEventRecordsFailure(t *testing.T) {
	video, media := videoWithTrailer(t, model.MediaStatusProcessing)

	persisted := 0
	repo := lockingRepo(t, video, &persisted)

	svc := NewMediaStatusService(repo, nil)
	err := svc.UpdateMediaStatus(context.Background(), UpdateMediaStatusInput{
		VideoID:    video.ID,
		ResourceID: media.ID,
		Status:     model.MediaStatusError,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted != 1 {
		t.Errorf("expected 1 persisted write, got %d", persisted)
	}

	trailer, _ := video.VideoMediaFor(model.MediaTypeTrailer)
	if trailer.Status != model.MediaStatusError {
		t.Errorf("persisted status = %s, want ERROR", trailer.Status)
	}
}

func TestMediaStatusService_FullVideoSlot(t *testing.T) {
	video := model.NewVideo("Test Video", "", 2023, 90, model.RatingL, false, true, nil, nil, nil)
	media := model.NewVideoMedia("movie.mp4", "abc", "raw/movie.mp4")
	video.UpdateVideoMedia(media)

	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return video, nil
		},
	}

	svc := NewMediaStatusService(repo, nil)
	err := svc.UpdateMediaStatus(context.Background(), UpdateMediaStatusInput{
		VideoID:    video.ID,
		ResourceID: media.ID,
		Status:     model.MediaStatusProcessing,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	full, _ := video.VideoMediaFor(model.MediaTypeVideo)
	if full.Status != model.MediaStatusProcessing {
		t.Errorf("status = %s, want PROCESSING", full.Status)
	}
}

// Two deliveries for the same slot land at once. Each one's legality check
// runs against the state the other committed, never against a shared earlier
// read, so the terminal COMPLETED survives whichever order the lock grants.
func TestMediaStatusService_ConcurrentDeliveriesNeverRegress(t *testing.T) {
	video, media := videoWithTrailer(t, model.MediaStatusPending)

	var mu sync.Mutex
	repo := &mockVideoRepository{
		updateFn: func(ctx context.Context, id uuid.UUID, apply func(video *model.Video) (bool, error)) error {
			mu.Lock()
			defer mu.Unlock()
			_, err := apply(video)
			return err
		},
	}

	svc := NewMediaStatusService(repo, nil)

	var wg sync.WaitGroup
	for _, status := range []model.MediaStatus{model.MediaStatusProcessing, model.MediaStatusCompleted} {
		wg.Add(1)
		go func(status model.MediaStatus) {
			defer wg.Done()

			input := UpdateMediaStatusInput{
				VideoID:    video.ID,
				ResourceID: media.ID,
				Status:     status,
			}
			if status == model.MediaStatusCompleted {
				input.EncodedPath = "enc/trailer.mp4"
			}
			if err := svc.UpdateMediaStatus(context.Background(), input); err != nil {
				t.Errorf("delivery %s: %v", status, err)
			}
		}(status)
	}
	wg.Wait()

	trailer, _ := video.VideoMediaFor(model.MediaTypeTrailer)
	if trailer.Status != model.MediaStatusCompleted {
		t.Errorf("final status = %s, want COMPLETED regardless of delivery order", trailer.Status)
	}
	if trailer.EncodedLocation != "enc/trailer.mp4" {
		t.Errorf("final encoded location = %q", trailer.EncodedLocation)
	}
}

func TestMediaStatusService_RepositoryFailurePropagates(t *testing.T) {
	video, media := videoWithTrailer(t, model.MediaStatusPending)

	repo := &mockVideoRepository{
		updateFn: func(ctx context.Context, id uuid.UUID, apply func(video *model.Video) (bool, error)) error {
			return errors.New("connection refused")
		},
	}

	svc := NewMediaStatusService(repo, nil)
	err := svc.UpdateMediaStatus(context.Background(), UpdateMediaStatusInput{
		VideoID:     video.ID,
		ResourceID:  media.ID,
		EncodedPath: "enc/trailer.mp4",
		Status:      model.MediaStatusCompleted,
	})
	if err == nil {
		t.Fatal("operational failure must propagate to the caller")
	}
}
