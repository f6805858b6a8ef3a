package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"anitakes/internal/api/dto"
	"anitakes/internal/api/models"
	"anitakes/internal/api/repository"
	"anitakes/internal/media"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrNotOwner       = errors.New("you don't have permission to modify this resource")
)

// ImageUpload is an optional image file attached to a create/update request.
type ImageUpload struct {
	Filename string
	Data     io.Reader
}

type ReviewService interface {
	CreateReview(ctx context.Context, userID string, input dto.CreateReviewDTO, image *ImageUpload) (*dto.ReviewResponse, error)
	ListReviews(page, limit int, sortBy, order string) (*dto.PaginatedReviewResponse, error)
	GetReviewByID(reviewID int64) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID int64, userID string, patch dto.UpdateReviewDTO, image *ImageUpload) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID int64, userID string) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	uploader   media.Uploader
	cleanup    media.Cleanup
	logger     *slog.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, uploader media.Uploader, cleanup media.Cleanup, logger *slog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		uploader:   uploader,
		cleanup:    cleanup,
		logger:     logger,
	}
}

// CreateReview persists a new review, uploading the optional image first so
// the record never references an image that doesn't exist.
func (s *reviewService) CreateReview(ctx context.Context, userID string, input dto.CreateReviewDTO, image *ImageUpload) (*dto.ReviewResponse, error) {
	review := &models.Review{
		AnimeTitle: input.AnimeTitle,
		ReviewText: input.ReviewText,
		Rating:     input.Rating,
		AnimeImage: input.AnimeImage,
		UserID:     userID,
	}

	if image != nil {
		result, err := s.uploader.Upload(ctx, image.Filename, image.Data)
		if err != nil {
			return nil, err
		}
		review.ImageURL = &result.URL
		review.ImagePublicID = &result.PublicID
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	// Reload with owner data
	review, err := s.reviewRepo.GetByID(review.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

// ListReviews retrieves a page of reviews with the owner usernames joined
func (s *reviewService) ListReviews(page, limit int, sortBy, order string) (*dto.PaginatedReviewResponse, error) {
	reviews, total, err := s.reviewRepo.List(page, limit, sortBy, order)
	if err != nil {
		return nil, err
	}

	reviewResponses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, *dto.FromModelToReviewResponse(&review))
	}

	return dto.NewPaginatedReviewResponse(reviewResponses, int(total), page, limit), nil
}

// GetReviewByID retrieves a single review
func (s *reviewService) GetReviewByID(reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

// UpdateReview replaces only the provided fields. When a new image arrives it
// is uploaded first; the previous one is then removed best-effort before the
// record is stored.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID int64, userID string, patch dto.UpdateReviewDTO, image *ImageUpload) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if review.UserID != userID {
		return nil, ErrNotOwner
	}

	if patch.AnimeTitle != nil {
		review.AnimeTitle = *patch.AnimeTitle
	}
	if patch.ReviewText != nil {
		review.ReviewText = *patch.ReviewText
	}
	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}
	if patch.AnimeImage != nil {
		review.AnimeImage = *patch.AnimeImage
	}

	if image != nil {
		result, err := s.uploader.Upload(ctx, image.Filename, image.Data)
		if err != nil {
			return nil, err
		}
		if review.ImagePublicID != nil {
			s.deleteRemoteImage(ctx, *review.ImagePublicID)
		}
		review.ImageURL = &result.URL
		review.ImagePublicID = &result.PublicID
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	// Reload with owner data
	review, err = s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

// DeleteReview removes the review and its comments in one transaction, then
// removes the uploaded image best-effort.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID int64, userID string) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.UserID != userID {
		return ErrNotOwner
	}

	if err := s.reviewRepo.DeleteWithComments(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.ImagePublicID != nil {
		s.deleteRemoteImage(ctx, *review.ImagePublicID)
	}

	return nil
}

// deleteRemoteImage tries to remove an image at the media host. Failures
// never propagate to the caller; the handle is queued for a later retry.
func (s *reviewService) deleteRemoteImage(ctx context.Context, publicID string) {
	err := s.uploader.Delete(ctx, publicID)
	if err == nil {
		return
	}
	s.logger.Warn("remote image deletion failed, queueing for retry", "public_id", publicID, "error", err)

	if err := s.cleanup.Enqueue(ctx, publicID); err != nil {
		s.logger.Error("failed to queue image for cleanup", "public_id", publicID, "error", err)
	}
}
