package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
	"github.com/flixkit/catalog/internal/usecase"
)

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	svc usecase.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc usecase.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// Create handles POST /v1/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toCategoryResponse(category))
}

// Get handles GET /v1/categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	category, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toCategoryResponse(category))
}

// List handles GET /v1/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListCategories(r.Context(), searchQueryFromRequest(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toPageResponse(page, func(item usecase.CategoryListItem) CategoryResponse {
		return CategoryResponse{
			ID:          item.ID.String(),
			Name:        item.Name,
			Description: item.Description,
			Active:      item.Active,
			CreatedAt:   item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}))
}

// Update handles PUT /v1/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	category, err := h.svc.UpdateCategory(r.Context(), usecase.UpdateCategoryInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toCategoryResponse(category))
}

// Delete handles DELETE /v1/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) handleServiceError(w http.ResponseWriter, err error) {
	if serviceError(w, err) {
		return
	}
	if errors.Is(err, repository.ErrCategoryNotFound) {
		Error(w, http.StatusNotFound, "category_not_found", "Category not found")
		return
	}
	Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}

func toCategoryResponse(c *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
