package service

import (
	"context"
	"testing"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockTitleRepository mocks the TitleRepository interface
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) GetAll(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) Create(ctx context.Context, t *models.Title) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, t *models.Title) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTitleRepository) ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error {
	args := m.Called(ctx, t, genres)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(titleID, reviewID int64) error {
	args := m.Called(titleID, reviewID)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(titleID, reviewID int64) (*models.Review, error) {
	args := m.Called(titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ExistsByAuthorAndTitle(authorID string, titleID int64) (bool, error) {
	args := m.Called(authorID, titleID)
	return args.Bool(0), args.Error(1)
}

func testAuthor() *models.User {
	return &models.User{
		ID:       "author-1",
		Username: "alice",
		Role:     models.RoleUser,
	}
}

func TestCreateReview_Success(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1, Name: "Dune"}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", "author-1", int64(1)).Return(false, nil)
	reviewRepo.On("Create", mock.AnythingOfType("*models.Review")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Review).ID = 42
		}).
		Return(nil)
	reviewRepo.On("GetByID", int64(1), int64(42)).Return(&models.Review{
		ID:       42,
		TitleID:  1,
		AuthorID: "author-1",
		Text:     "superb",
		Score:    9,
		Author:   *testAuthor(),
	}, nil)

	review, err := svc.Create(context.Background(), testAuthor(), 1, "superb", 9)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), review.ID)
	assert.Equal(t, "author-1", review.AuthorID)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_SecondReviewForSameTitle(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", "author-1", int64(1)).Return(true, nil)

	review, err := svc.Create(context.Background(), testAuthor(), 1, "again", 7)
	assert.Nil(t, review)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReview_TitleNotFound(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), testAuthor(), 99, "text", 5)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestCreateReview_ScoreBounds(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("ExistsByAuthorAndTitle", "author-1", int64(1)).Return(false, nil)

	_, err := svc.Create(context.Background(), testAuthor(), 1, "low", 0)
	assert.ErrorIs(t, err, ErrScoreTooLow)

	_, err = svc.Create(context.Background(), testAuthor(), 1, "high", 11)
	assert.ErrorIs(t, err, ErrScoreTooHigh)

	reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateReview_EditDoesNotTripUniqueness(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("GetByID", int64(1), int64(42)).Return(&models.Review{
		ID:       42,
		TitleID:  1,
		AuthorID: "author-1",
		Text:     "old",
		Score:    5,
	}, nil)
	reviewRepo.On("Update", mock.AnythingOfType("*models.Review")).Return(nil)

	newScore := 8
	review, err := svc.Update(context.Background(), 1, 42, nil, &newScore)
	assert.NoError(t, err)
	assert.Equal(t, 8, review.Score)
	assert.Equal(t, "old", review.Text)

	// editing an existing review is not a duplicate
	reviewRepo.AssertNotCalled(t, "ExistsByAuthorAndTitle", mock.Anything, mock.Anything)
}

func TestUpdateReview_ScoreBounds(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("GetByID", int64(1), int64(42)).Return(&models.Review{ID: 42, TitleID: 1, Score: 5}, nil)

	bad := 11
	_, err := svc.Update(context.Background(), 1, 42, nil, &bad)
	assert.ErrorIs(t, err, ErrScoreTooHigh)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestGetReview_NotFound(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("GetByID", int64(1), int64(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteReview_NotFound(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	svc := NewReviewService(reviewRepo, titleRepo)

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("Delete", int64(1), int64(7)).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
