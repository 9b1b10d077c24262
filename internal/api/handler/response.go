package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func Error(w http.ResponseWriter, status int, err string, message string) {
	JSON(w, status, ErrorResponse{
		Error:   err,
		Message: message,
	})
}

// ValidationErrorResponse lists every violated invariant of one request.
type ValidationErrorResponse struct {
	Message string                `json:"message"`
	Errors  []ValidationErrorItem `json:"errors"`
}

type ValidationErrorItem struct {
	Message string `json:"message"`
}

// ValidationFailed renders a 422 with the full violation list, in the order
// the violations were found.
func ValidationFailed(w http.ResponseWriter, vErr *model.ValidationError) {
	items := make([]ValidationErrorItem, 0, len(vErr.Violations))
	for _, violation := range vErr.Violations {
		items = append(items, ValidationErrorItem{Message: violation.Message})
	}
	JSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Message: "validation failed",
		Errors:  items,
	})
}

// PageResponse is the envelope for paginated listings.
type PageResponse[T any] struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	Items       []T   `json:"items"`
}

func toPageResponse[T, U any](page repository.Page[T], fn func(T) U) PageResponse[U] {
	items := make([]U, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, fn(item))
	}
	return PageResponse[U]{
		CurrentPage: page.CurrentPage,
		PerPage:     page.PerPage,
		Total:       page.Total,
		Items:       items,
	}
}

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// searchQueryFromRequest reads the common listing parameters. Pages are
// zero-based; out-of-range values fall back to defaults instead of failing.
func searchQueryFromRequest(r *http.Request) repository.SearchQuery {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 0 {
		page = 0
	}

	perPage, err := strconv.Atoi(q.Get("per_page"))
	if err != nil || perPage <= 0 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	return repository.SearchQuery{
		Page:      page,
		PerPage:   perPage,
		Terms:     q.Get("search"),
		Sort:      q.Get("sort"),
		Direction: q.Get("dir"),
	}
}

// serviceError maps shared service failures; handlers layer their own
// entity-specific not-found cases on top.
func serviceError(w http.ResponseWriter, err error) bool {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		ValidationFailed(w, vErr)
	case errors.Is(err, repository.ErrDuplicateEntity):
		Error(w, http.StatusConflict, "duplicate_entity", "An entity with this identifier already exists")
	default:
		return false
	}
	return true
}
