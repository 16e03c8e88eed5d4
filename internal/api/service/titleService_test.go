package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) GetAll(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) Create(ctx context.Context, g *models.Genre) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func newTitleTestService() (*MockTitleRepository, *MockCategoryRepository, *MockGenreRepository, TitleService) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	return titleRepo, categoryRepo, genreRepo, NewTitleService(titleRepo, categoryRepo, genreRepo)
}

func TestCreateTitle_Success(t *testing.T) {
	titleRepo, categoryRepo, genreRepo, svc := newTitleTestService()

	fiction := models.Genre{ID: 3, Name: "Science Fiction", Slug: "scifi"}
	categoryRepo.On("GetBySlug", mock.Anything, "books").Return(&models.Category{ID: 2, Name: "Books", Slug: "books"}, nil)
	genreRepo.On("GetBySlugs", mock.Anything, []string{"scifi"}).Return([]models.Genre{fiction}, nil)
	titleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Title).ID = 10
		}).
		Return(nil)
	titleRepo.On("ReplaceGenres", mock.Anything, mock.AnythingOfType("*models.Title"), []models.Genre{fiction}).Return(nil)
	titleRepo.On("GetByID", mock.Anything, int64(10)).Return(&models.Title{
		ID:     10,
		Name:   "Dune",
		Year:   1965,
		Genres: []models.Genre{fiction},
	}, nil)

	title, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "Dune",
		Year:     1965,
		Category: "books",
		Genres:   []string{"scifi"},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), title.ID)
	titleRepo.AssertExpectations(t)
}

func TestCreateTitle_FutureYear(t *testing.T) {
	titleRepo, _, _, svc := newTitleTestService()

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "From the Future",
		Year:     time.Now().Year() + 1,
		Category: "books",
		Genres:   []string{"scifi"},
	})
	assert.ErrorIs(t, err, ErrYearOutOfRange)
	titleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_UnknownCategory(t *testing.T) {
	_, categoryRepo, _, svc := newTitleTestService()

	categoryRepo.On("GetBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "Dune",
		Year:     1965,
		Category: "nope",
		Genres:   []string{"scifi"},
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateTitle_UnknownGenreSlug(t *testing.T) {
	_, categoryRepo, genreRepo, svc := newTitleTestService()

	categoryRepo.On("GetBySlug", mock.Anything, "books").Return(&models.Category{ID: 2, Slug: "books"}, nil)
	// one of the two slugs resolves, so the lookup comes back short
	genreRepo.On("GetBySlugs", mock.Anything, []string{"scifi", "ghost"}).
		Return([]models.Genre{{ID: 3, Slug: "scifi"}}, nil)

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "Dune",
		Year:     1965,
		Category: "books",
		Genres:   []string{"scifi", "ghost"},
	})
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestUpdateTitle_PartialFields(t *testing.T) {
	titleRepo, _, _, svc := newTitleTestService()

	titleRepo.On("GetByID", mock.Anything, int64(10)).Return(&models.Title{
		ID:   10,
		Name: "Dune",
		Year: 1965,
	}, nil)
	titleRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Title")).Return(nil)

	newName := "Dune (Director's Cut)"
	title, err := svc.Update(context.Background(), 10, dto.UpdateTitleRequest{Name: &newName})
	assert.NoError(t, err)
	assert.Equal(t, newName, title.Name)
	assert.Equal(t, 1965, title.Year)
}

func TestUpdateTitle_NotFound(t *testing.T) {
	titleRepo, _, _, svc := newTitleTestService()

	titleRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), 99, dto.UpdateTitleRequest{})
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestDeleteTitle_NotFound(t *testing.T) {
	titleRepo, _, _, svc := newTitleTestService()

	titleRepo.On("Delete", mock.Anything, int64(99)).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}
