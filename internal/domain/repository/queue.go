package repository

import (
	"context"

	"github.com/google/uuid"
)

// EncodeRequest asks the external encoder to process a raw video asset.
type EncodeRequest struct {
	VideoID     uuid.UUID `json:"video_id"`
	ResourceID  uuid.UUID `json:"resource_id"`
	MediaType   string    `json:"media_type"`
	RawLocation string    `json:"raw_location"`
}

// MediaStatusEvent is the decoded completion-or-error notification produced
// by the external encoder. Delivery is at-least-once with no ordering
// guarantee; consumers must be idempotent.
type MediaStatusEvent struct {
	ID          uuid.UUID `json:"id"`          // video id
	ResourceID  uuid.UUID `json:"resource_id"` // media id the event refers to
	EncodedPath string    `json:"encoded_path"`
	Status      string    `json:"status"` // COMPLETED, ERROR or PROCESSING
}

// MessageQueue defines the interface for broker operations.
// Implementations are provided by the infrastructure layer (e.g. RabbitMQ).
type MessageQueue interface {
	// PublishEncodeRequest hands a raw asset to the external encoder.
	// Used by the API server after a trailer/full-video upload.
	PublishEncodeRequest(ctx context.Context, req EncodeRequest) error

	// ConsumeMediaStatusEvents consumes encoder notifications, calling the
	// handler for each decoded event. Blocks until the context is cancelled
	// or the channel is closed. Used by the worker service.
	ConsumeMediaStatusEvents(ctx context.Context, handler func(event MediaStatusEvent) error) error

	// Close gracefully closes the connection to the broker.
	Close() error
}
