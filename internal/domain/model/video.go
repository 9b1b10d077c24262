package model

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Rating is the age classification of a video.
type Rating string

const (
	RatingER    Rating = "ER"
	RatingL     Rating = "L"
	RatingAge10 Rating = "AGE_10"
	RatingAge12 Rating = "AGE_12"
	RatingAge14 Rating = "AGE_14"
	RatingAge16 Rating = "AGE_16"
	RatingAge18 Rating = "AGE_18"
)

func (r Rating) IsValid() bool {
	switch r {
	case RatingER, RatingL, RatingAge10, RatingAge12, RatingAge14, RatingAge16, RatingAge18:
		return true
	default:
		return false
	}
}

func (r Rating) String() string {
	return string(r)
}

var (
	ErrMediaSlotEmpty   = errors.New("media slot is empty")
	ErrUnknownMediaType = errors.New("unknown media type")
)

const maxVideoTitleLength = 255

// Video is the aggregate root owning the media slots and the associated
// category, genre and cast member identifiers. All mutation goes through
// aggregate methods, each of which refreshes UpdatedAt. No method performs
// I/O; persistence is the caller's responsibility.
type Video struct {
	ID          uuid.UUID
	Title       string
	Description string
	LaunchedAt  int
	Duration    float64
	Rating      Rating
	Opened      bool
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Banner        *ImageMedia
	Thumbnail     *ImageMedia
	ThumbnailHalf *ImageMedia
	Trailer       *VideoMedia
	Video         *VideoMedia

	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

// NewVideo creates a video with a fresh identity, equal created/updated
// timestamps and empty media slots. Invariants are checked separately via
// Validate so every violation can be reported at once.
func NewVideo(
	title, description string,
	launchedAt int,
	duration float64,
	rating Rating,
	opened, published bool,
	categories, genres, castMembers []uuid.UUID,
) *Video {
	now := time.Now()
	return &Video{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		LaunchedAt:  launchedAt,
		Duration:    duration,
		Rating:      rating,
		Opened:      opened,
		Published:   published,
		CreatedAt:   now,
		UpdatedAt:   now,
		Categories:  categories,
		Genres:      genres,
		CastMembers: castMembers,
	}
}

// Validate appends one error per violated invariant. It never short-circuits:
// a missing title paired with a bad rating yields two errors.
func (v *Video) Validate(n *Notification) {
	if v.Title == "" {
		n.Append(Error{Message: "'title' should not be empty"})
	} else if utf8.RuneCountInString(v.Title) > maxVideoTitleLength {
		n.Append(Error{Message: fmt.Sprintf("'title' must be between 1 and %d characters", maxVideoTitleLength)})
	}
	if v.Rating == "" {
		n.Append(Error{Message: "'rating' should not be empty"})
	} else if !v.Rating.IsValid() {
		n.Append(Error{Message: fmt.Sprintf("'rating' %q is not a known rating", v.Rating)})
	}
	if v.LaunchedAt <= 0 {
		n.Append(Error{Message: "'launchedAt' should be a positive year"})
	}
}

// Update replaces the descriptive fields and relation sets, leaving the media
// slots untouched, and refreshes UpdatedAt.
func (v *Video) Update(
	title, description string,
	launchedAt int,
	duration float64,
	rating Rating,
	opened, published bool,
	categories, genres, castMembers []uuid.UUID,
) {
	v.Title = title
	v.Description = description
	v.LaunchedAt = launchedAt
	v.Duration = duration
	v.Rating = rating
	v.Opened = opened
	v.Published = published
	v.Categories = categories
	v.Genres = genres
	v.CastMembers = castMembers
	v.touch()
}

// UpdateTrailerMedia replaces the trailer slot.
func (v *Video) UpdateTrailerMedia(media VideoMedia) {
	v.Trailer = &media
	v.touch()
}

// UpdateVideoMedia replaces the full-video slot.
func (v *Video) UpdateVideoMedia(media VideoMedia) {
	v.Video = &media
	v.touch()
}

// UpdateBanner replaces the banner slot.
func (v *Video) UpdateBanner(media ImageMedia) {
	v.Banner = &media
	v.touch()
}

// UpdateThumbnail replaces the thumbnail slot.
func (v *Video) UpdateThumbnail(media ImageMedia) {
	v.Thumbnail = &media
	v.touch()
}

// UpdateThumbnailHalf replaces the half-thumbnail slot.
func (v *Video) UpdateThumbnailHalf(media ImageMedia) {
	v.ThumbnailHalf = &media
	v.touch()
}

// VideoMediaFor returns the video media in the named slot, reporting absence
// explicitly so status checks never dereference an empty slot.
func (v *Video) VideoMediaFor(mediaType MediaType) (VideoMedia, bool) {
	switch mediaType {
	case MediaTypeTrailer:
		if v.Trailer == nil {
			return VideoMedia{}, false
		}
		return *v.Trailer, true
	case MediaTypeVideo:
		if v.Video == nil {
			return VideoMedia{}, false
		}
		return *v.Video, true
	default:
		return VideoMedia{}, false
	}
}

// Processing advances the named slot to PROCESSING.
func (v *Video) Processing(mediaType MediaType) error {
	return v.transition(mediaType, func(m VideoMedia) (VideoMedia, error) {
		return m.Processing()
	})
}

// Completed advances the named slot to COMPLETED, setting the encoded location.
func (v *Video) Completed(mediaType MediaType, encodedLocation string) error {
	return v.transition(mediaType, func(m VideoMedia) (VideoMedia, error) {
		return m.Completed(encodedLocation)
	})
}

// Failed advances the named slot to ERROR.
func (v *Video) Failed(mediaType MediaType) error {
	return v.transition(mediaType, func(m VideoMedia) (VideoMedia, error) {
		return m.Failed()
	})
}

func (v *Video) transition(mediaType MediaType, apply func(VideoMedia) (VideoMedia, error)) error {
	switch mediaType {
	case MediaTypeTrailer, MediaTypeVideo:
	default:
		return ErrUnknownMediaType
	}

	media, ok := v.VideoMediaFor(mediaType)
	if !ok {
		return ErrMediaSlotEmpty
	}

	next, err := apply(media)
	if err != nil {
		return err
	}

	if mediaType == MediaTypeTrailer {
		v.Trailer = &next
	} else {
		v.Video = &next
	}
	v.touch()
	return nil
}

func (v *Video) touch() {
	v.UpdatedAt = time.Now()
}
