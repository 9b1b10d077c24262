package repository

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
)

// Resource is a binary media payload handed to or served from storage.
type Resource struct {
	Name        string
	ContentType string
	Checksum    string
	Content     io.Reader
	Size        int64
}

// MediaResourceGateway stores and retrieves a video's binary assets, keyed by
// video id and media slot. The key layout inside storage belongs to the
// implementation; the catalog only holds the returned location strings.
type MediaResourceGateway interface {
	// StoreVideo stores a trailer/full-video payload and returns the
	// resulting media value object in PENDING state.
	StoreVideo(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType, resource Resource) (model.VideoMedia, error)

	// StoreImage stores an image payload and returns the media value object.
	StoreImage(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType, resource Resource) (model.ImageMedia, error)

	// GetResource retrieves the stored payload for a slot.
	// Returns ErrObjectNotFound if nothing was uploaded for the slot.
	GetResource(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType) (*Resource, error)

	// ClearResources removes every payload stored for the video.
	ClearResources(ctx context.Context, videoID uuid.UUID) error
}
