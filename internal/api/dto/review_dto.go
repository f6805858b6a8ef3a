package dto

import (
	"time"

	"anitakes/internal/api/models"
)

// CreateReviewDTO for creating a review. Bound from multipart form fields;
// the optional image file part is handled separately by the handler.
type CreateReviewDTO struct {
	AnimeTitle string `form:"animeTitle" binding:"required"`
	ReviewText string `form:"reviewText" binding:"required,min=10"`
	Rating     int    `form:"rating" binding:"required,min=1,max=10"`
	AnimeImage string `form:"animeImage" binding:"required,url"`
}

// UpdateReviewDTO for updating a review. Every field is optional but must
// pass the same validation as on create when present.
type UpdateReviewDTO struct {
	AnimeTitle *string `form:"animeTitle" binding:"omitempty,min=1"`
	ReviewText *string `form:"reviewText" binding:"omitempty,min=10"`
	Rating     *int    `form:"rating" binding:"omitempty,min=1,max=10"`
	AnimeImage *string `form:"animeImage" binding:"omitempty,url"`
}

// ReviewResponse for returning review information with the owner's username
type ReviewResponse struct {
	ID         int64     `json:"id"`
	AnimeTitle string    `json:"anime_title"`
	ReviewText string    `json:"review_text"`
	Rating     int       `json:"rating"`
	AnimeImage string    `json:"anime_image"`
	ImageURL   *string   `json:"image_url,omitempty"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         review.ID,
		AnimeTitle: review.AnimeTitle,
		ReviewText: review.ReviewText,
		Rating:     review.Rating,
		AnimeImage: review.AnimeImage,
		ImageURL:   review.ImageURL,
		UserID:     review.UserID,
		Username:   review.User.Username,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedReviewResponse creates a paginated review response
func NewPaginatedReviewResponse(data []ReviewResponse, total, page, limit int) *PaginatedReviewResponse {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
