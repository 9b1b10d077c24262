package model

import (
	"errors"

	"github.com/google/uuid"
)

// MediaStatus represents the processing state of a video asset.
type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "PENDING"
	MediaStatusProcessing MediaStatus = "PROCESSING"
	MediaStatusCompleted  MediaStatus = "COMPLETED"
	MediaStatusError      MediaStatus = "ERROR"
)

// Valid status transitions:
// PENDING -> PROCESSING -> COMPLETED
//        \-> COMPLETED (processing signal lost or delivered out of order)
//        \-> ERROR (also from PROCESSING)
// COMPLETED and ERROR are terminal.
var validMediaTransitions = map[MediaStatus][]MediaStatus{
	MediaStatusPending:    {MediaStatusProcessing, MediaStatusCompleted, MediaStatusError},
	MediaStatusProcessing: {MediaStatusCompleted, MediaStatusError},
	MediaStatusCompleted:  {},
	MediaStatusError:      {},
}

func (s MediaStatus) IsValid() bool {
	switch s {
	case MediaStatusPending, MediaStatusProcessing, MediaStatusCompleted, MediaStatusError:
		return true
	default:
		return false
	}
}

func (s MediaStatus) CanTransitionTo(next MediaStatus) bool {
	allowed, exists := validMediaTransitions[s]
	if !exists {
		return false
	}
	for _, status := range allowed {
		if status == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is legal from s.
func (s MediaStatus) IsTerminal() bool {
	return s == MediaStatusCompleted || s == MediaStatusError
}

func (s MediaStatus) String() string {
	return string(s)
}

// MediaType names an attachment point on the video aggregate.
type MediaType string

const (
	MediaTypeVideo         MediaType = "VIDEO"
	MediaTypeTrailer       MediaType = "TRAILER"
	MediaTypeBanner        MediaType = "BANNER"
	MediaTypeThumbnail     MediaType = "THUMBNAIL"
	MediaTypeThumbnailHalf MediaType = "THUMBNAIL_HALF"
)

func (t MediaType) IsValid() bool {
	switch t {
	case MediaTypeVideo, MediaTypeTrailer, MediaTypeBanner, MediaTypeThumbnail, MediaTypeThumbnailHalf:
		return true
	default:
		return false
	}
}

func (t MediaType) String() string {
	return string(t)
}

var (
	ErrInvalidTransition    = errors.New("invalid media status transition")
	ErrEmptyEncodedLocation = errors.New("encoded location is required to complete media")
)

// ImageMedia describes a static image asset (banner, thumbnail) with no
// processing lifecycle. Value semantics; equality is by value.
type ImageMedia struct {
	ID       uuid.UUID
	Name     string
	Location string
	Checksum string
}

// NewImageMedia creates an image media value with a fresh identity.
func NewImageMedia(name, location, checksum string) ImageMedia {
	return ImageMedia{
		ID:       uuid.New(),
		Name:     name,
		Location: location,
		Checksum: checksum,
	}
}

// VideoMedia describes a video asset moving through the encoding lifecycle.
// Immutable: every transition produces a new instance. EncodedLocation stays
// empty until the status reaches COMPLETED.
type VideoMedia struct {
	ID              uuid.UUID
	Name            string
	Checksum        string
	RawLocation     string
	EncodedLocation string
	Status          MediaStatus
}

// NewVideoMedia creates a video media value in PENDING state.
func NewVideoMedia(name, checksum, rawLocation string) VideoMedia {
	return VideoMedia{
		ID:          uuid.New(),
		Name:        name,
		Checksum:    checksum,
		RawLocation: rawLocation,
		Status:      MediaStatusPending,
	}
}

// Processing returns a copy advanced to PROCESSING.
func (m VideoMedia) Processing() (VideoMedia, error) {
	if !m.Status.CanTransitionTo(MediaStatusProcessing) {
		return m, ErrInvalidTransition
	}
	m.Status = MediaStatusProcessing
	return m, nil
}

// Completed returns a copy advanced to COMPLETED with the encoded location set.
// An empty encoded location is a defect, not a valid terminal state.
func (m VideoMedia) Completed(encodedLocation string) (VideoMedia, error) {
	if encodedLocation == "" {
		return m, ErrEmptyEncodedLocation
	}
	if !m.Status.CanTransitionTo(MediaStatusCompleted) {
		return m, ErrInvalidTransition
	}
	m.Status = MediaStatusCompleted
	m.EncodedLocation = encodedLocation
	return m, nil
}

// Failed returns a copy advanced to ERROR.
func (m VideoMedia) Failed() (VideoMedia, error) {
	if !m.Status.CanTransitionTo(MediaStatusError) {
		return m, ErrInvalidTransition
	}
	m.Status = MediaStatusError
	return m, nil
}
