package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, author *models.User, titleID int64, text string, score int) (*models.Review, error)
	Update(ctx context.Context, titleID, reviewID int64, text *string, score *int) (*models.Review, error)
	Delete(ctx context.Context, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func validateScore(score int) error {
	if score < 1 {
		return ErrScoreTooLow
	}
	if score > 10 {
		return ErrScoreTooHigh
	}
	return nil
}

func (s *reviewService) resolveTitle(ctx context.Context, titleID int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return title, nil
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if _, err := s.resolveTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.GetByTitle(titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if _, err := s.resolveTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Create enforces the one-review-per-author-per-title invariant. The
// duplicate check runs before the insert; author and title come from the
// request context, never from the payload.
func (s *reviewService) Create(ctx context.Context, author *models.User, titleID int64, text string, score int) (*models.Review, error) {
	title, err := s.resolveTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(author.ID, title.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	if err := validateScore(score); err != nil {
		return nil, err
	}

	review := &models.Review{
		TitleID:  title.ID,
		AuthorID: author.ID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		// the composite unique index backs the pre-check under concurrency
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	// reload with the author association for the response
	return s.reviewRepo.GetByID(title.ID, review.ID)
}

// Update is partial: only score bounds are re-validated. An author editing
// their own review is not a duplicate, so the uniqueness check does not
// re-run. Author and title are immutable.
func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, text *string, score *int) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if score != nil {
		if err := validateScore(*score); err != nil {
			return nil, err
		}
		review.Score = *score
	}
	if text != nil {
		review.Text = *text
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.resolveTitle(ctx, titleID); err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
