package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

// MediaResourceGateway implements repository.MediaResourceGateway on top of
// an ObjectStorage. Payloads live under videos/{video_id}/{slot}, so a whole
// aggregate's binaries can be cleared with one prefix listing.
type MediaResourceGateway struct {
	storage repository.ObjectStorage
}

// NewMediaResourceGateway creates a new MediaResourceGateway instance.
func NewMediaResourceGateway(storage repository.ObjectStorage) *MediaResourceGateway {
	return &MediaResourceGateway{storage: storage}
}

// StoreVideo stores a trailer or full-video payload and returns the resulting
// media value object in PENDING state.
func (g *MediaResourceGateway) StoreVideo(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType, resource repository.Resource) (model.VideoMedia, error) {
	key := mediaKey(videoID, mediaType)
	if err := g.storage.Store(ctx, key, resource.Content, resource.Size, resource.ContentType); err != nil {
		return model.VideoMedia{}, fmt.Errorf("store video resource: %w", err)
	}

	return model.NewVideoMedia(resource.Name, resource.Checksum, key), nil
}

// StoreImage stores an image payload and returns the media value object.
func (g *MediaResourceGateway) StoreImage(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType, resource repository.Resource) (model.ImageMedia, error) {
	key := mediaKey(videoID, mediaType)
	if err := g.storage.Store(ctx, key, resource.Content, resource.Size, resource.ContentType); err != nil {
		return model.ImageMedia{}, fmt.Errorf("store image resource: %w", err)
	}

	return model.NewImageMedia(resource.Name, key, resource.Checksum), nil
}

// GetResource retrieves the stored payload for a slot.
func (g *MediaResourceGateway) GetResource(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType) (*repository.Resource, error) {
	obj, err := g.storage.Get(ctx, mediaKey(videoID, mediaType))
	if err != nil {
		return nil, err
	}

	return &repository.Resource{
		Name:        path.Base(obj.Key),
		ContentType: obj.ContentType,
		Checksum:    obj.Checksum,
		Content:     obj.Content,
		Size:        obj.Size,
	}, nil
}

// ClearResources removes every payload stored for the video.
func (g *MediaResourceGateway) ClearResources(ctx context.Context, videoID uuid.UUID) error {
	keys, err := g.storage.List(ctx, videoPrefix(videoID))
	if err != nil {
		return fmt.Errorf("list video resources: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := g.storage.DeleteAll(ctx, keys); err != nil {
		return fmt.Errorf("delete video resources: %w", err)
	}
	return nil
}

func videoPrefix(videoID uuid.UUID) string {
	return "videos/" + videoID.String() + "/"
}

func mediaKey(videoID uuid.UUID, mediaType model.MediaType) string {
	return videoPrefix(videoID) + strings.ToLower(mediaType.String())
}

// Compile-time verification that MediaResourceGateway implements repository.MediaResourceGateway.
var _ repository.MediaResourceGateway = (*MediaResourceGateway)(nil)
