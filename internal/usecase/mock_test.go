package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flixkit/catalog/internal/domain/model"
	"github.com/flixkit/catalog/internal/domain/repository"
)

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn     func(ctx context.Context, video *model.Video) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	updateFn     func(ctx context.Context, id uuid.UUID, apply func(video *model.Video) (bool, error)) error
	deleteByIDFn func(ctx context.Context, id uuid.UUID) error
	findAllFn    func(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Video], error)
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) Update(ctx context.Context, id uuid.UUID, apply func(video *model.Video) (bool, error)) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, apply)
	}
	video, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = apply(video)
	return err
}

func (m *mockVideoRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockVideoRepository) FindAll(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Video], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, query)
	}
	return repository.Page[*model.Video]{}, nil
}

// mockCategoryRepository provides a configurable mock for CategoryRepository.
type mockCategoryRepository struct {
	createFn      func(ctx context.Context, category *model.Category) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.Category, error)
	updateFn      func(ctx context.Context, category *model.Category) error
	deleteByIDFn  func(ctx context.Context, id uuid.UUID) error
	findAllFn     func(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Category], error)
	existsByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockCategoryRepository) FindAll(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Category], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, query)
	}
	return repository.Page[*model.Category]{}, nil
}

func (m *mockCategoryRepository) ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if m.existsByIDsFn != nil {
		return m.existsByIDsFn(ctx, ids)
	}
	return ids, nil
}

// mockGenreRepository provides a configurable mock for GenreRepository.
type mockGenreRepository struct {
	createFn      func(ctx context.Context, genre *model.Genre) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	updateFn      func(ctx context.Context, genre *model.Genre) error
	deleteByIDFn  func(ctx context.Context, id uuid.UUID) error
	findAllFn     func(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Genre], error)
	existsByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockGenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	if m.createFn != nil {
		return m.createFn(ctx, genre)
	}
	return nil
}

func (m *mockGenreRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrGenreNotFound
}

func (m *mockGenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, genre)
	}
	return nil
}

func (m *mockGenreRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockGenreRepository) FindAll(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.Genre], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, query)
	}
	return repository.Page[*model.Genre]{}, nil
}

func (m *mockGenreRepository) ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if m.existsByIDsFn != nil {
		return m.existsByIDsFn(ctx, ids)
	}
	return ids, nil
}

// mockCastMemberRepository provides a configurable mock for CastMemberRepository.
type mockCastMemberRepository struct {
	createFn      func(ctx context.Context, member *model.CastMember) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.CastMember, error)
	updateFn      func(ctx context.Context, member *model.CastMember) error
	deleteByIDFn  func(ctx context.Context, id uuid.UUID) error
	findAllFn     func(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.CastMember], error)
	existsByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockCastMemberRepository) Create(ctx context.Context, member *model.CastMember) error {
	if m.createFn != nil {
		return m.createFn(ctx, member)
	}
	return nil
}

func (m *mockCastMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CastMember, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCastMemberNotFound
}

func (m *mockCastMemberRepository) Update(ctx context.Context, member *model.CastMember) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, member)
	}
	return nil
}

func (m *mockCastMemberRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockCastMemberRepository) FindAll(ctx context.Context, query repository.SearchQuery) (repository.Page[*model.CastMember], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, query)
	}
	return repository.Page[*model.CastMember]{}, nil
}

func (m *mockCastMemberRepository) ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if m.existsByIDsFn != nil {
		return m.existsByIDsFn(ctx, ids)
	}
	return ids, nil
}

// mockMediaResourceGateway provides a configurable mock for MediaResourceGateway.
type mockMediaResourceGateway struct {
	storeVideoFn     func(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType, resource repository.Resource) (model.VideoMedia, error)
	storeImageFn     func(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType, resource repository.Resource) (model.ImageMedia, error)
	getResourceFn    func(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType) (*repository.Resource, error)
	clearResourcesFn func(ctx context.Context, videoID uuid.UUID) error
}

func (m *mockMediaResourceGateway) StoreVideo(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType, resource repository.Resource) (model.VideoMedia, error) {
	if m.storeVideoFn != nil {
		return m.storeVideoFn(ctx, videoID, mediaType, resource)
	}
	return model.NewVideoMedia(resource.Name, resource.Checksum, "raw/"+resource.Name), nil
}

func (m *mockMediaResourceGateway) StoreImage(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType, resource repository.Resource) (model.ImageMedia, error) {
	if m.storeImageFn != nil {
		return m.storeImageFn(ctx, videoID, mediaType, resource)
	}
	return model.NewImageMedia(resource.Name, "images/"+resource.Name, resource.Checksum), nil
}

func (m *mockMediaResourceGateway) GetResource(ctx context.Context, videoID uuid.UUID, mediaType model.MediaType) (*repository.Resource, error) {
	if m.getResourceFn != nil {
		return m.getResourceFn(ctx, videoID, mediaType)
	}
	return nil, repository.ErrObjectNotFound
}

func (m *mockMediaResourceGateway) ClearResources(ctx context.Context, videoID uuid.UUID) error {
	if m.clearResourcesFn != nil {
		return m.clearResourcesFn(ctx, videoID)
	}
	return nil
}

// mockMessageQueue provides a configurable mock for MessageQueue.
type mockMessageQueue struct {
	publishEncodeRequestFn     func(ctx context.Context, req repository.EncodeRequest) error
	consumeMediaStatusEventsFn func(ctx context.Context, handler func(event repository.MediaStatusEvent) error) error
}

func (m *mockMessageQueue) PublishEncodeRequest(ctx context.Context, req repository.EncodeRequest) error {
	if m.publishEncodeRequestFn != nil {
		return m.publishEncodeRequestFn(ctx, req)
	}
	return nil
}

func (m *mockMessageQueue) ConsumeMediaStatusEvents(ctx context.Context, handler func(event repository.MediaStatusEvent) error) error {
	if m.consumeMediaStatusEventsFn != nil {
		return m.consumeMediaStatusEventsFn(ctx, handler)
	}
	return nil
}

func (m *mockMessageQueue) Close() error {
	return nil
}

// mockVideoCache provides a configurable mock for cache.VideoCache.
type mockVideoCache struct {
	getFn    func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	setFn    func(ctx context.Context, video *model.Video, ttl time.Duration) error
	deleteFn func(ctx context.Context, videoID uuid.UUID) error
}

func (m *mockVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getFn != nil {
		return m.getFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, video, ttl)
	}
	return nil
}

func (m *mockVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID)
	}
	return nil
}
