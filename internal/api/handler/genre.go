package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
	"github.com/flixkit/catalog/internal/usecase"
)

type GenreRequest struct {
	Name       string   `json:"name"`
	Active     bool     `json:"active"`
	Categories []string `json:"categories"`
}

type GenreResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Active     bool     `json:"active"`
	Categories []string `json:"categories"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

type GenreListItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

// GenreHandler handles genre-related HTTP requests.
type GenreHandler struct {
	svc usecase.GenreService
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(svc usecase.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

// Create handles POST /v1/genres
func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	categories, err := parseIDs(req.Categories)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_categories", "Category IDs must be valid UUIDs")
		return
	}

	genre, err := h.svc.CreateGenre(r.Context(), usecase.CreateGenreInput{
		Name:       req.Name,
		Active:     req.Active,
		Categories: categories,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toGenreResponse(genre))
}

// Get handles GET /v1/genres/{id}
func (h *GenreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	genre, err := h.svc.GetGenre(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toGenreResponse(genre))
}

// List handles GET /v1/genres
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListGenres(r.Context(), searchQueryFromRequest(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toPageResponse(page, func(item usecase.GenreListItem) GenreListItemResponse {
		return GenreListItemResponse{
			ID:        item.ID.String(),
			Name:      item.Name,
			Active:    item.Active,
			CreatedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}))
}

// Update handles PUT /v1/genres/{id}
func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	categories, err := parseIDs(req.Categories)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_categories", "Category IDs must be valid UUIDs")
		return
	}

	genre, err := h.svc.UpdateGenre(r.Context(), usecase.UpdateGenreInput{
		ID:         id,
		Name:       req.Name,
		Active:     req.Active,
		Categories: categories,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toGenreResponse(genre))
}

// Delete handles DELETE /v1/genres/{id}
func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteGenre(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GenreHandler) handleServiceError(w http.ResponseWriter, err error) {
	if serviceError(w, err) {
		return
	}
	if errors.Is(err, repository.ErrGenreNotFound) {
		Error(w, http.StatusNotFound, "genre_not_found", "Genre not found")
		return
	}
	Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}

func toGenreResponse(g *model.Genre) GenreResponse {
	return GenreResponse{
		ID:         g.ID.String(),
		Name:       g.Name,
		Active:     g.Active,
		Categories: idsToStrings(g.Categories),
		CreatedAt:  g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  g.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
