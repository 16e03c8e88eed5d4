package dto

import "reviewhub/internal/api/models"

// CreateTitleRequest: write payload; category and genres arrive as slugs.
// Year bounds are checked in the service against the current calendar year.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category" binding:"required"`
	Genres      []string `json:"genre" binding:"required"`
}

// UpdateTitleRequest: partial write payload; nil fields stay untouched
type UpdateTitleRequest struct {
	Name        *string   `json:"name,omitempty" binding:"omitempty,max=200"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Genres      *[]string `json:"genre,omitempty"`
}

// TitleResponse: read payload with nested category/genres plus the computed
// rating (null when the title has no reviews)
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description *string           `json:"description,omitempty"`
	Rating      *float64          `json:"rating"`
	Category    *CategoryResponse `json:"category"`
	Genres      []GenreResponse   `json:"genre"`
}

func FromModelToTitleResponse(t *models.Title) *TitleResponse {
	resp := &TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Rating:      t.Rating,
		Genres:      []GenreResponse{},
	}
	if t.Category != nil {
		resp.Category = FromModelToCategoryResponse(t.Category)
	}
	for i := range t.Genres {
		resp.Genres = append(resp.Genres, *FromModelToGenreResponse(&t.Genres[i]))
	}
	return resp
}
