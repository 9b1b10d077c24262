package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/flixkit/catalog/internal/domain/model"
)

const videoCacheKeyPrefix = "video:"

// videoMediaJSON mirrors model.VideoMedia for caching. An explicit struct
// avoids coupling the wire format to the domain model.
type videoMediaJSON struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Checksum        string `json:"checksum"`
	RawLocation     string `json:"raw_location"`
	EncodedLocation string `json:"encoded_location"`
	Status          string `json:"status"`
}

type imageMediaJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Checksum string `json:"checksum"`
}

type videoJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	LaunchedAt  int     `json:"launched_at"`
	Duration    float64 `json:"duration"`
	Rating      string  `json:"rating"`
	Opened      bool    `json:"opened"`
	Published   bool    `json:"published"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`

	Banner        *imageMediaJSON `json:"banner,omitempty"`
	Thumbnail     *imageMediaJSON `json:"thumbnail,omitempty"`
	ThumbnailHalf *imageMediaJSON `json:"thumbnail_half,omitempty"`
	Trailer       *videoMediaJSON `json:"trailer,omitempty"`
	Video         *videoMediaJSON `json:"video,omitempty"`

	Categories  []string `json:"categories"`
	Genres      []string `json:"genres"`
	CastMembers []string `json:"cast_members"`
}

// RedisVideoCache implements VideoCache using Redis as the backing store.
type RedisVideoCache struct {
	client *redis.Client
}

// NewRedisVideoCache creates a new Redis-backed video cache.
func NewRedisVideoCache(client *redis.Client) *RedisVideoCache {
	return &RedisVideoCache{client: client}
}

// Get retrieves a video from Redis cache. Returns nil, nil on cache miss.
func (c *RedisVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	data, err := c.client.Get(ctx, c.buildKey(videoID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	video, err := deserializeVideo(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize video: %w", err)
	}

	return video, nil
}

// Set stores a video in Redis cache with the specified TTL.
func (c *RedisVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	data, err := serializeVideo(video)
	if err != nil {
		return fmt.Errorf("serialize video: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(video.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Delete removes a video from Redis cache.
func (c *RedisVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if err := c.client.Del(ctx, c.buildKey(videoID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *RedisVideoCache) buildKey(videoID uuid.UUID) string {
	return videoCacheKeyPrefix + videoID.String()
}

func serializeVideo(video *model.Video) ([]byte, error) {
	v := videoJSON{
		ID:          video.ID.String(),
		Title:       video.Title,
		Description: video.Description,
		LaunchedAt:  video.LaunchedAt,
		Duration:    video.Duration,
		Rating:      video.Rating.String(),
		Opened:      video.Opened,
		Published:   video.Published,
		CreatedAt:   video.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   video.UpdatedAt.Format(time.RFC3339Nano),
		Categories:  idsToStrings(video.Categories),
		Genres:      idsToStrings(video.Genres),
		CastMembers: idsToStrings(video.CastMembers),
	}

	if video.Banner != nil {
		v.Banner = imageToJSON(*video.Banner)
	}
	if video.Thumbnail != nil {
		v.Thumbnail = imageToJSON(*video.Thumbnail)
	}
	if video.ThumbnailHalf != nil {
		v.ThumbnailHalf = imageToJSON(*video.ThumbnailHalf)
	}
	if video.Trailer != nil {
		v.Trailer = videoMediaToJSON(*video.Trailer)
	}
	if video.Video != nil {
		v.Video = videoMediaToJSON(*video.Video)
	}

	return json.Marshal(v)
}

func deserializeVideo(data []byte) (*model.Video, error) {
	var v videoJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(v.ID)
	if err != nil {
		return nil, fmt.Errorf("parse video ID: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, v.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	categories, err := stringsToIDs(v.Categories)
	if err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	genres, err := stringsToIDs(v.Genres)
	if err != nil {
		return nil, fmt.Errorf("parse genres: %w", err)
	}
	castMembers, err := stringsToIDs(v.CastMembers)
	if err != nil {
		return nil, fmt.Errorf("parse cast members: %w", err)
	}

	video := &model.Video{
		ID:          id,
		Title:       v.Title,
		Description: v.Description,
		LaunchedAt:  v.LaunchedAt,
		Duration:    v.Duration,
		Rating:      model.Rating(v.Rating),
		Opened:      v.Opened,
		Published:   v.Published,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Categories:  categories,
		Genres:      genres,
		CastMembers: castMembers,
	}

	if video.Banner, err = imageFromJSON(v.Banner); err != nil {
		return nil, fmt.Errorf("parse banner: %w", err)
	}
	if video.Thumbnail, err = imageFromJSON(v.Thumbnail); err != nil {
		return nil, fmt.Errorf("parse thumbnail: %w", err)
	}
	if video.ThumbnailHalf, err = imageFromJSON(v.ThumbnailHalf); err != nil {
		return nil, fmt.Errorf("parse thumbnail half: %w", err)
	}
	if video.Trailer, err = videoMediaFromJSON(v.Trailer); err != nil {
		return nil, fmt.Errorf("parse trailer: %w", err)
	}
	if video.Video, err = videoMediaFromJSON(v.Video); err != nil {
		return nil, fmt.Errorf("parse video media: %w", err)
	}

	return video, nil
}

func imageToJSON(m model.ImageMedia) *imageMediaJSON {
	return &imageMediaJSON{
		ID:       m.ID.String(),
		Name:     m.Name,
		Location: m.Location,
		Checksum: m.Checksum,
	}
}

func imageFromJSON(j *imageMediaJSON) (*model.ImageMedia, error) {
	if j == nil {
		return nil, nil
	}
	id, err := uuid.Parse(j.ID)
	if err != nil {
		return nil, err
	}
	return &model.ImageMedia{
		ID:       id,
		Name:     j.Name,
		Location: j.Location,
		Checksum: j.Checksum,
	}, nil
}

func videoMediaToJSON(m model.VideoMedia) *videoMediaJSON {
	return &videoMediaJSON{
		ID:              m.ID.String(),
		Name:            m.Name,
		Checksum:        m.Checksum,
		RawLocation:     m.RawLocation,
		EncodedLocation: m.EncodedLocation,
		Status:          m.Status.String(),
	}
}

func videoMediaFromJSON(j *videoMediaJSON) (*model.VideoMedia, error) {
	if j == nil {
		return nil, nil
	}
	id, err := uuid.Parse(j.ID)
	if err != nil {
		return nil, err
	}
	return &model.VideoMedia{
		ID:              id,
		Name:            j.Name,
		Checksum:        j.Checksum,
		RawLocation:     j.RawLocation,
		EncodedLocation: j.EncodedLocation,
		Status:          model.MediaStatus(j.Status),
	}, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToIDs(values []string) ([]uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, len(values))
	for i, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
