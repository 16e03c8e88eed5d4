package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateReviewRequest: payload for posting a review. Author and title are
// never part of the payload; they are injected from the request context.
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

// UpdateReviewRequest: partial update; author and title stay immutable
type UpdateReviewRequest struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty"`
}

// ReviewResponse: review payload with the author referenced by username
type ReviewResponse struct {
	ID        int64     `json:"id"`
	TitleID   int64     `json:"title_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		TitleID:   r.TitleID,
		Author:    r.Author.Username,
		Text:      r.Text,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
	}
}
