package service

import (
	"errors"

	"anitakes/internal/api/dto"
	"anitakes/internal/api/models"
	"anitakes/internal/api/repository"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	CreateComment(reviewID int64, userID, text string) (*dto.CommentResponse, error)
	GetReviewComments(reviewID int64, page, limit int, sortBy, order string) (*dto.PaginatedCommentResponse, error)
	DeleteComment(commentID int64, userID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// CreateComment creates a new comment against an existing review
func (s *commentService) CreateComment(reviewID int64, userID, text string) (*dto.CommentResponse, error) {
	// Check if review exists
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		Text:     text,
		UserID:   userID,
		ReviewID: reviewID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// Reload with owner data
	comment, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// GetReviewComments retrieves all comments for a review with pagination
func (s *commentService) GetReviewComments(reviewID int64, page, limit int, sortBy, order string) (*dto.PaginatedCommentResponse, error) {
	// Check if review exists
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(reviewID, page, limit, sortBy, order)
	if err != nil {
		return nil, err
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, *dto.FromModelToCommentResponse(&comment))
	}

	return dto.NewPaginatedCommentResponse(commentResponses, int(total), page, limit), nil
}

// DeleteComment deletes a comment after checking ownership
func (s *commentService) DeleteComment(commentID int64, userID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID {
		return ErrNotOwner
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	return nil
}
