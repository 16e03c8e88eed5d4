package service

import (
	"context"
	"testing"

	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(reviewID, commentID int64) error {
	args := m.Called(reviewID, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(reviewID, commentID int64) (*models.Comment, error) {
	args := m.Called(reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByReview(reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(reviewID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func newCommentTestService() (*MockCommentRepository, *MockReviewRepository, *MockTitleRepository, CommentService) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	titleRepo := new(MockTitleRepository)
	return commentRepo, reviewRepo, titleRepo, NewCommentService(commentRepo, reviewRepo, titleRepo)
}

func TestCreateComment_Success(t *testing.T) {
	commentRepo, reviewRepo, titleRepo, svc := newCommentTestService()

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("GetByID", int64(1), int64(42)).Return(&models.Review{ID: 42, TitleID: 1}, nil)
	commentRepo.On("Create", mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Comment).ID = 7
		}).
		Return(nil)
	commentRepo.On("GetByID", int64(42), int64(7)).Return(&models.Comment{
		ID:       7,
		ReviewID: 42,
		Text:     "agreed",
	}, nil)

	comment, err := svc.Create(context.Background(), testAuthor(), 1, 42, "agreed")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), comment.ID)
	commentRepo.AssertExpectations(t)
}

func TestCreateComment_ReviewUnderDifferentTitle(t *testing.T) {
	commentRepo, reviewRepo, titleRepo, svc := newCommentTestService()

	// the review exists but belongs to another title, so the scoped lookup
	// comes back empty
	titleRepo.On("GetByID", mock.Anything, int64(2)).Return(&models.Title{ID: 2}, nil)
	reviewRepo.On("GetByID", int64(2), int64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), testAuthor(), 2, 42, "lost")
	assert.ErrorIs(t, err, ErrReviewNotFound)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateComment_TitleNotFound(t *testing.T) {
	_, _, titleRepo, svc := newCommentTestService()

	titleRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), testAuthor(), 99, 42, "void")
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestUpdateComment_PartialText(t *testing.T) {
	commentRepo, reviewRepo, titleRepo, svc := newCommentTestService()

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("GetByID", int64(1), int64(42)).Return(&models.Review{ID: 42, TitleID: 1}, nil)
	commentRepo.On("GetByID", int64(42), int64(7)).Return(&models.Comment{ID: 7, ReviewID: 42, Text: "old"}, nil)
	commentRepo.On("Update", mock.AnythingOfType("*models.Comment")).Return(nil)

	newText := "revised"
	comment, err := svc.Update(context.Background(), 1, 42, 7, &newText)
	assert.NoError(t, err)
	assert.Equal(t, "revised", comment.Text)
}

func TestGetComment_NotFound(t *testing.T) {
	commentRepo, reviewRepo, titleRepo, svc := newCommentTestService()

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("GetByID", int64(1), int64(42)).Return(&models.Review{ID: 42, TitleID: 1}, nil)
	commentRepo.On("GetByID", int64(42), int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 1, 42, 404)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteComment_NotFound(t *testing.T) {
	commentRepo, reviewRepo, titleRepo, svc := newCommentTestService()

	titleRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Title{ID: 1}, nil)
	reviewRepo.On("GetByID", int64(1), int64(42)).Return(&models.Review{ID: 42, TitleID: 1}, nil)
	commentRepo.On("Delete", int64(42), int64(404)).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 1, 42, 404)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
