package repository

import (
	"anitakes/internal/api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	GetByID(reviewID int64) (*models.Review, error)
	List(page, limit int, sortBy, order string) ([]models.Review, int64, error)
	// DeleteWithComments removes the review and every comment referencing it
	// inside a single transaction.
	DeleteWithComments(reviewID int64) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update an existing review
func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// GetByID retrieves a review by its ID with the owner preloaded
func (r *reviewRepository) GetByID(reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ?", reviewID).
		Preload("User").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// List retrieves reviews with pagination and sorting
func (r *reviewRepository) List(page, limit int, sortBy, order string) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	// Count total reviews
	if err := r.db.Model(&models.Review{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated reviews
	offset := (page - 1) * limit
	err := r.db.
		Preload("User").
		Order(orderClause(reviewSortColumns, sortBy, order)).
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error

	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// DeleteWithComments deletes the review's comments and the review itself in
// one transaction so a failure leaves nothing half-removed.
func (r *reviewRepository) DeleteWithComments(reviewID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", reviewID).Delete(&models.Review{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
