package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
	"github.com/flixkit/catalog/internal/usecase"
)

// maxUploadSize caps media uploads at 1 GiB.
const maxUploadSize = 1 << 30

// Request/Response types

type VideoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	LaunchedAt  int      `json:"launched_at"`
	Duration    float64  `json:"duration"`
	Rating      string   `json:"rating"`
	Opened      bool     `json:"opened"`
	Published   bool     `json:"published"`
	Categories  []string `json:"categories"`
	Genres      []string `json:"genres"`
	CastMembers []string `json:"cast_members"`
}

type VideoMediaResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Checksum        string `json:"checksum"`
	RawLocation     string `json:"raw_location"`
	EncodedLocation string `json:"encoded_location,omitempty"`
	Status          string `json:"status"`
}

type ImageMediaResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Checksum string `json:"checksum"`
}

type VideoResponse struct {
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

	Banner        *ImageMediaResponse `json:"banner,omitempty"`
	Thumbnail     *ImageMediaResponse `json:"thumbnail,omitempty"`
	ThumbnailHalf *ImageMediaResponse `json:"thumbnail_half,omitempty"`
	Trailer       *VideoMediaResponse `json:"trailer,omitempty"`
	Video         *VideoMediaResponse `json:"video,omitempty"`

	Categories  []string `json:"categories"`
	Genres      []string `json:"genres"`
	CastMembers []string `json:"cast_members"`
}

type VideoListItemResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LaunchedAt  int    `json:"launched_at"`
	Rating      string `json:"rating"`
	CreatedAt   string `json:"created_at"`
}

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	svc usecase.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Create handles POST /v1/videos
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeVideoInput(w, r)
	if !ok {
		return
	}

	video, err := h.svc.CreateVideo(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toVideoResponse(video))
}

// Get handles GET /v1/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseID(w, r)
	if !ok {
		return
	}

	video, err := h.svc.GetVideo(r.Context(), videoID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// List handles GET /v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListVideos(r.Context(), searchQueryFromRequest(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toPageResponse(page, func(item usecase.VideoListItem) VideoListItemResponse {
		return VideoListItemResponse{
			ID:          item.ID.String(),
			Title:       item.Title,
			Description: item.Description,
			LaunchedAt:  item.LaunchedAt,
			Rating:      item.Rating.String(),
			CreatedAt:   item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}))
}

// Update handles PUT /v1/videos/{id}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseID(w, r)
	if !ok {
		return
	}

	input, ok := decodeVideoInput(w, r)
	if !ok {
		return
	}

	video, err := h.svc.UpdateVideo(r.Context(), usecase.UpdateVideoInput{
		ID:               videoID,
		CreateVideoInput: input,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// Delete handles DELETE /v1/videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), videoID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadMedia handles POST /v1/videos/{id}/medias/{type}
func (h *VideoHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseID(w, r)
	if !ok {
		return
	}

	mediaType, ok := parseMediaType(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Expected a multipart form with a media_file field")
		return
	}

	file, header, err := r.FormFile("media_file")
	if err != nil {
		Error(w, http.StatusBadRequest, "missing_media_file", "The media_file field is required")
		return
	}
	defer file.Close()

	// The multipart file is seekable, so hash it first and rewind.
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to read uploaded file")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to read uploaded file")
		return
	}

	video, err := h.svc.UploadMedia(r.Context(), usecase.UploadMediaInput{
		VideoID:   videoID,
		MediaType: mediaType,
		Resource: repository.Resource{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Checksum:    hex.EncodeToString(hash.Sum(nil)),
			Content:     file,
			Size:        header.Size,
		},
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toVideoResponse(video))
}

// GetMedia handles GET /v1/videos/{id}/medias/{type}
func (h *VideoHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseID(w, r)
	if !ok {
		return
	}

	mediaType, ok := parseMediaType(w, r)
	if !ok {
		return
	}

	resource, err := h.svc.GetMediaResource(r.Context(), videoID, mediaType)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if closer, ok := resource.Content.(io.Closer); ok {
		defer closer.Close()
	}

	w.Header().Set("Content-Type", resource.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(resource.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resource.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, resource.Content)
}

func (h *VideoHandler) handleServiceError(w http.ResponseWriter, err error) {
	if serviceError(w, err) {
		return
	}
	switch {
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", "Video not found")
	case errors.Is(err, repository.ErrObjectNotFound):
		Error(w, http.StatusNotFound, "media_not_found", "No media stored for this slot")
	case errors.Is(err, model.ErrUnknownMediaType):
		Error(w, http.StatusBadRequest, "invalid_media_type", "Unknown media type")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "ID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parseMediaType(w http.ResponseWriter, r *http.Request) (model.MediaType, bool) {
	mediaType := model.MediaType(strings.ToUpper(chi.URLParam(r, "type")))
	if !mediaType.IsValid() {
		Error(w, http.StatusBadRequest, "invalid_media_type", "Unknown media type")
		return "", false
	}
	return mediaType, true
}

func decodeVideoInput(w http.ResponseWriter, r *http.Request) (usecase.CreateVideoInput, bool) {
	var req VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return usecase.CreateVideoInput{}, false
	}

	categories, err := parseIDs(req.Categories)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_categories", "Category IDs must be valid UUIDs")
		return usecase.CreateVideoInput{}, false
	}
	genres, err := parseIDs(req.Genres)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_genres", "Genre IDs must be valid UUIDs")
		return usecase.CreateVideoInput{}, false
	}
	castMembers, err := parseIDs(req.CastMembers)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_cast_members", "Cast member IDs must be valid UUIDs")
		return usecase.CreateVideoInput{}, false
	}

	return usecase.CreateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		LaunchedAt:  req.LaunchedAt,
		Duration:    req.Duration,
		Rating:      model.Rating(req.Rating),
		Opened:      req.Opened,
		Published:   req.Published,
		Categories:  categories,
		Genres:      genres,
		CastMembers: castMembers,
	}, true
}

func parseIDs(values []string) ([]uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(values))
	for i, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func toVideoResponse(v *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          v.ID.String(),
		Title:       v.Title,
		Description: v.Description,
		LaunchedAt:  v.LaunchedAt,
		Duration:    v.Duration,
		Rating:      v.Rating.String(),
		Opened:      v.Opened,
		Published:   v.Published,
		CreatedAt:   v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   v.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Categories:  idsToStrings(v.Categories),
		Genres:      idsToStrings(v.Genres),
		CastMembers: idsToStrings(v.CastMembers),
	}

	if v.Banner != nil {
		resp.Banner = toImageMediaResponse(*v.Banner)
	}
	if v.Thumbnail != nil {
		resp.Thumbnail = toImageMediaResponse(*v.Thumbnail)
	}
	if v.ThumbnailHalf != nil {
		resp.ThumbnailHalf = toImageMediaResponse(*v.ThumbnailHalf)
	}
	if v.Trailer != nil {
		resp.Trailer = toVideoMediaResponse(*v.Trailer)
	}
	if v.Video != nil {
		resp.Video = toVideoMediaResponse(*v.Video)
	}

	return resp
}

func toImageMediaResponse(m model.ImageMedia) *ImageMediaResponse {
	return &ImageMediaResponse{
		ID:       m.ID.String(),
		Name:     m.Name,
		Location: m.Location,
		Checksum: m.Checksum,
	}
}

func toVideoMediaResponse(m model.VideoMedia) *VideoMediaResponse {
	return &VideoMediaResponse{
		ID:              m.ID.String(),
		Name:            m.Name,
		Checksum:        m.Checksum,
		RawLocation:     m.RawLocation,
		EncodedLocation: m.EncodedLocation,
		Status:          m.Status.String(),
	}
}
