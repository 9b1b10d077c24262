package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

func newCachedService(repo *mockVideoRepository, videoCache *mockVideoCache) VideoService {
	inner := newVideoService(repo, &mockMediaResourceGateway{}, &mockMessageQueue{})
	return NewCachedVideoService(inner, videoCache, DefaultCachedVideoServiceConfig())
}

func TestCachedVideoService_GetVideo_CacheHit(t *testing.T) {
	cached := model.NewVideo("Cached", "", 2022, 90, model.RatingL, false, true, nil, nil, nil)

	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			t.Fatal("cache hit must not touch the repository")
			return nil, nil
		},
	}
	videoCache := &mockVideoCache{
		getFn: func(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
			return cached, nil
		},
	}

	svc := newCachedService(repo, videoCache)
	video, err := svc.GetVideo(context.Background(), cached.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video.ID != cached.ID {
		t.Errorf("got wrong video: %s", video.ID)
	}
}

func TestCachedVideoService_GetVideo_CacheMissPopulates(t *testing.T) {
	stored := model.NewVideo("Stored", "", 2022, 90, model.RatingL, false, true, nil, nil, nil)

	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return stored, nil
		},
	}

	var cachedVideo *model.Video
	videoCache := &mockVideoCache{
		setFn: func(ctx context.Context, video *model.Video, ttl time.Duration) error {
			cachedVideo = video
			return nil
		},
	}

	svc := newCachedService(repo, videoCache)
	video, err := svc.GetVideo(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video.ID != stored.ID {
		t.Errorf("got wrong video: %s", video.ID)
	}
	if cachedVideo == nil || cachedVideo.ID != stored.ID {
		t.Error("miss should populate the cache")
	}
}

func TestCachedVideoService_GetVideo_CacheErrorFallsBack(t *testing.T) {
	stored := model.NewVideo("Stored", "", 2022, 90, model.RatingL, false, true, nil, nil, nil)

	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return stored, nil
		},
	}
	videoCache := &mockVideoCache{
		getFn: func(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
			return nil, errors.New("redis down")
		},
	}

	svc := newCachedService(repo, videoCache)
	video, err := svc.GetVideo(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("cache failure must not fail the read: %v", err)
	}
	if video.ID != stored.ID {
		t.Errorf("got wrong video: %s", video.ID)
	}
}

func TestCachedVideoService_GetVideo_ConcurrentMissesShareOneRead(t *testing.T) {
	stored := model.NewVideo("Stored", "", 2022, 90, model.RatingL, false, true, nil, nil, nil)

	var mu sync.Mutex
	repoReads := 0
	release := make(chan struct{})

	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			mu.Lock()
			repoReads++
			mu.Unlock()
			<-release
			return stored, nil
		},
	}

	svc := newCachedService(repo, &mockVideoCache{})

	const goroutines = 10
	var wg sync.WaitGroup
	started := make(chan struct{}, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			if _, err := svc.GetVideo(context.Background(), stored.ID); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	for i := 0; i < goroutines; i++ {
		<-started
	}
	// Give the in-flight call a moment to gather waiters before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if repoReads != 1 {
		t.Errorf("expected 1 repository read, got %d", repoReads)
	}
}

func TestCachedVideoService_DeleteVideo_Invalidates(t *testing.T) {
	videoID := uuid.New()

	invalidated := false
	videoCache := &mockVideoCache{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			invalidated = true
			if id != videoID {
				t.Errorf("invalidated wrong video: %s", id)
			}
			return nil
		},
	}

	svc := newCachedService(&mockVideoRepository{}, videoCache)
	if err := svc.DeleteVideo(context.Background(), videoID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !invalidated {
		t.Error("delete should invalidate the cache entry")
	}
}

func TestCachedVideoService_UpdateVideo_Invalidates(t *testing.T) {
	video := model.NewVideo("Title", "", 2022, 90, model.RatingL, false, true, nil, nil, nil)

	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return video, nil
		},
	}

	invalidated := false
	videoCache := &mockVideoCache{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			invalidated = true
			return nil
		},
	}

	svc := newCachedService(repo, videoCache)
	_, err := svc.UpdateVideo(context.Background(), UpdateVideoInput{
		ID: video.ID,
		CreateVideoInput: CreateVideoInput{
			Title:      "New Title",
			LaunchedAt: 2023,
			Duration:   91,
			Rating:     model.RatingL,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !invalidated {
		t.Error("update should invalidate the cache entry")
	}
}

func TestCachedVideoService_UpdateVideo_FailureSkipsInvalidation(t *testing.T) {
	repo := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return nil, repository.ErrVideoNotFound
		},
	}
	videoCache := &mockVideoCache{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("failed update must not invalidate")
			return nil
		},
	}

	svc := newCachedService(repo, videoCache)
	_, err := svc.UpdateVideo(context.Background(), UpdateVideoInput{
		ID:               uuid.New(),
		CreateVideoInput: validCreateInput(),
	})
	if !errors.Is(err, repository.ErrVideoNotFound) {
		t.Errorf("expected ErrVideoNotFound, got %v", err)
	}
}
