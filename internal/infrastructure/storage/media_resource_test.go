package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

// memoryStorage is an in-memory ObjectStorage for gateway tests.
type memoryStorage struct {
	objects      map[string][]byte
	contentTypes map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (s *memoryStorage) Store(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.contentTypes[key] = contentType
	return nil
}

func (s *memoryStorage) Get(ctx context.Context, key string) (*repository.StoredObject, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	return &repository.StoredObject{
		Key:         key,
		ContentType: s.contentTypes[key],
		Size:        int64(len(data)),
		Content:     io.NopCloser(bytes.NewReader(data)),
	}, nil
}

func (s *memoryStorage) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *memoryStorage) DeleteAll(ctx context.Context, keys []string) error {
	for _, key := range keys {
		delete(s.objects, key)
		delete(s.contentTypes, key)
	}
	return nil
}

func (s *memoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func TestMediaResourceGateway_StoreVideo(t *testing.T) {
	store := newMemoryStorage()
	gateway := NewMediaResourceGateway(store)
	videoID := uuid.New()

	media, err := gateway.StoreVideo(context.Background(), videoID, model.MediaTypeTrailer, repository.Resource{
		Name:        "trailer.mp4",
		ContentType: "video/mp4",
		Checksum:    "abc",
		Content:     strings.NewReader("frames"),
		Size:        6,
	})
	if err != nil {
		t.Fatalf("StoreVideo() unexpected error = %v", err)
	}

	if media.Status != model.MediaStatusPending {
		t.Errorf("fresh media status = %s, want PENDING", media.Status)
	}
	wantKey := "videos/" + videoID.String() + "/trailer"
	if media.RawLocation != wantKey {
		t.Errorf("raw location = %q, want %q", media.RawLocation, wantKey)
	}
	if _, ok := store.objects[wantKey]; !ok {
		t.Errorf("payload not stored under %q", wantKey)
	}
}

func TestMediaResourceGateway_StoreImage(t *testing.T) {
	store := newMemoryStorage()
	gateway := NewMediaResourceGateway(store)
	videoID := uuid.New()

	media, err := gateway.StoreImage(context.Background(), videoID, model.MediaTypeThumbnailHalf, repository.Resource{
		Name:        "thumb.png",
		ContentType: "image/png",
		Checksum:    "def",
		Content:     strings.NewReader("pixels"),
		Size:        6,
	})
	if err != nil {
		t.Fatalf("StoreImage() unexpected error = %v", err)
	}

	wantKey := "videos/" + videoID.String() + "/thumbnail_half"
	if media.Location != wantKey {
		t.Errorf("location = %q, want %q", media.Location, wantKey)
	}
}

func TestMediaResourceGateway_GetResource(t *testing.T) {
	store := newMemoryStorage()
	gateway := NewMediaResourceGateway(store)
	videoID := uuid.New()

	_, err := gateway.StoreVideo(context.Background(), videoID, model.MediaTypeVideo, repository.Resource{
		Name:        "movie.mp4",
		ContentType: "video/mp4",
		Content:     strings.NewReader("frames"),
		Size:        6,
	})
	if err != nil {
		t.Fatalf("StoreVideo() unexpected error = %v", err)
	}

	resource, err := gateway.GetResource(context.Background(), videoID, model.MediaTypeVideo)
	if err != nil {
		t.Fatalf("GetResource() unexpected error = %v", err)
	}
	if resource.ContentType != "video/mp4" || resource.Size != 6 {
		t.Errorf("GetResource() = %+v", resource)
	}

	data, err := io.ReadAll(resource.Content)
	if err != nil {
		t.Fatalf("read content: %v", err)
	}
	if string(data) != "frames" {
		t.Errorf("content = %q", data)
	}
}

func TestMediaResourceGateway_GetResource_NotFound(t *testing.T) {
	gateway := NewMediaResourceGateway(newMemoryStorage())

	_, err := gateway.GetResource(context.Background(), uuid.New(), model.MediaTypeBanner)
	if err != repository.ErrObjectNotFound {
		t.Errorf("GetResource() error = %v, want ErrObjectNotFound", err)
	}
}

func TestMediaResourceGateway_ClearResources(t *testing.T) {
	store := newMemoryStorage()
	gateway := NewMediaResourceGateway(store)
	videoID := uuid.New()
	otherID := uuid.New()

	for _, mt := range []model.MediaType{model.MediaTypeTrailer, model.MediaTypeBanner} {
		if _, err := gateway.StoreImage(context.Background(), videoID, mt, repository.Resource{
			Name:    "asset",
			Content: strings.NewReader("x"),
			Size:    1,
		}); err != nil {
			t.Fatalf("StoreImage() unexpected error = %v", err)
		}
	}
	if _, err := gateway.StoreImage(context.Background(), otherID, model.MediaTypeBanner, repository.Resource{
		Name:    "asset",
		Content: strings.NewReader("x"),
		Size:    1,
	}); err != nil {
		t.Fatalf("StoreImage() unexpected error = %v", err)
	}

	if err := gateway.ClearResources(context.Background(), videoID); err != nil {
		t.Fatalf("ClearResources() unexpected error = %v", err)
	}

	if len(store.objects) != 1 {
		t.Errorf("expected only the other video's asset to remain, got %v", store.objects)
	}
	exists, _ := store.Exists(context.Background(), "videos/"+otherID.String()+"/banner")
	if !exists {
		t.Error("other video's asset was removed")
	}
}

func TestMediaResourceGateway_ClearResources_Empty(t *testing.T) {
	gateway := NewMediaResourceGateway(newMemoryStorage())

	if err := gateway.ClearResources(context.Background(), uuid.New()); err != nil {
		t.Errorf("ClearResources() on empty prefix should be a no-op, got %v", err)
	}
}
