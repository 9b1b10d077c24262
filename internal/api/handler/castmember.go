package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
	"github.com/flixkit/catalog/internal/usecase"
)

type CastMemberRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type CastMemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CastMemberHandler handles cast member HTTP requests.
type CastMemberHandler struct {
	svc usecase.CastMemberService
}

// NewCastMemberHandler creates a new CastMemberHandler.
func NewCastMemberHandler(svc usecase.CastMemberService) *CastMemberHandler {
	return &CastMemberHandler{svc: svc}
}

// Create handles POST /v1/cast_members
func (h *CastMemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CastMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	member, err := h.svc.CreateCastMember(r.Context(), usecase.CreateCastMemberInput{
		Name: req.Name,
		Type: model.CastMemberType(req.Type),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toCastMemberResponse(member))
}

// Get handles GET /v1/cast_members/{id}
func (h *CastMemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	member, err := h.svc.GetCastMember(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toCastMemberResponse(member))
}

// List handles GET /v1/cast_members
func (h *CastMemberHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListCastMembers(r.Context(), searchQueryFromRequest(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toPageResponse(page, func(item usecase.CastMemberListItem) CastMemberResponse {
		return CastMemberResponse{
			ID:        item.ID.String(),
			Name:      item.Name,
			Type:      item.Type.String(),
			CreatedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}))
}

// Update handles PUT /v1/cast_members/{id}
func (h *CastMemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req CastMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	member, err := h.svc.UpdateCastMember(r.Context(), usecase.UpdateCastMemberInput{
		ID:   id,
		Name: req.Name,
		Type: model.CastMemberType(req.Type),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toCastMemberResponse(member))
}

// Delete handles DELETE /v1/cast_members/{id}
func (h *CastMemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteCastMember(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CastMemberHandler) handleServiceError(w http.ResponseWriter, err error) {
	if serviceError(w, err) {
		return
	}
	if errors.Is(err, repository.ErrCastMemberNotFound) {
		Error(w, http.StatusNotFound, "cast_member_not_found", "Cast member not found")
		return
	}
	Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}

func toCastMemberResponse(m *model.CastMember) CastMemberResponse {
	return CastMemberResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Type:      m.Type.String(),
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: m.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
