package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateCommentRequest: payload for commenting on a review. The author and
// the owning review come from the request context, not the body.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateCommentRequest: partial update of a comment
type UpdateCommentRequest struct {
	Text *string `json:"text,omitempty"`
}

// CommentResponse: comment payload; author is empty when the account is gone
type CommentResponse struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"review_id"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
}

func FromModelToCommentResponse(c *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        c.ID,
		ReviewID:  c.ReviewID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
	if c.Author != nil {
		resp.Author = c.Author.Username
	}
	return resp
}
