package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

// CreateCastMemberInput contains the input parameters for creating a cast member.
type CreateCastMemberInput struct {
	Name string
	Type model.CastMemberType
}

// UpdateCastMemberInput contains the input parameters for updating a cast member.
type UpdateCastMemberInput struct {
	ID   uuid.UUID
	Name string
	Type model.CastMemberType
}

// CastMemberListItem is the output record for cast member listings.
type CastMemberListItem struct {
	ID        uuid.UUID
	Name      string
	Type      model.CastMemberType
	CreatedAt time.Time
}

// CastMemberService defines the interface for cast member business logic.
type CastMemberService interface {
	CreateCastMember(ctx context.Context, input CreateCastMemberInput) (*model.CastMember, error)
	GetCastMember(ctx context.Context, id uuid.UUID) (*model.CastMember, error)
	ListCastMembers(ctx context.Context, query repository.SearchQuery) (repository.Page[CastMemberListItem], error)
	UpdateCastMember(ctx context.Context, input UpdateCastMemberInput) (*model.CastMember, error)
	DeleteCastMember(ctx context.Context, id uuid.UUID) error
}

type castMemberService struct {
	repo repository.CastMemberRepository
}

// NewCastMemberService creates a new CastMemberService instance.
func NewCastMemberService(repo repository.CastMemberRepository) CastMemberService {
	return &castMemberService{repo: repo}
}

func (s *castMemberService) CreateCastMember(ctx context.Context, input CreateCastMemberInput) (*model.CastMember, error) {
	member := model.NewCastMember(input.Name, input.Type)

	n := model.NewNotification()
	member.Validate(n)
	if n.HasErrors() {
		return nil, model.NewValidationError(n)
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create cast member: %w", err)
	}

	return member, nil
}

func (s *castMemberService) GetCastMember(ctx context.Context, id uuid.UUID) (*model.CastMember, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *castMemberService) ListCastMembers(ctx context.Context, query repository.SearchQuery) (repository.Page[CastMemberListItem], error) {
	page, err := s.repo.FindAll(ctx, query)
	if err != nil {
		return repository.Page[CastMemberListItem]{}, fmt.Errorf("list cast members: %w", err)
	}

	return repository.MapPage(page, func(m *model.CastMember) CastMemberListItem {
		return CastMemberListItem{
			ID:        m.ID,
			Name:      m.Name,
			Type:      m.Type,
			CreatedAt: m.CreatedAt,
		}
	}), nil
}

func (s *castMemberService) UpdateCastMember(ctx context.Context, input UpdateCastMemberInput) (*model.CastMember, error) {
	member, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	member.Update(input.Name, input.Type)

	n := model.NewNotification()
	member.Validate(n)
	if n.HasErrors() {
		return nil, model.NewValidationError(n)
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update cast member: %w", err)
	}

	return member, nil
}

func (s *castMemberService) DeleteCastMember(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}
