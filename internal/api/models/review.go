package models

import "time"

type Review struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	AnimeTitle string `json:"anime_title" gorm:"not null"`
	ReviewText string `json:"review_text" gorm:"not null;type:text"`
	Rating     int    `json:"rating" gorm:"not null"` // integer 1-10
	AnimeImage string `json:"anime_image" gorm:"not null"`

	// Optional user-uploaded image; ImagePublicID is the deletion handle
	// at the media host. Nil means no image was ever uploaded.
	ImageURL      *string `json:"image_url,omitempty"`
	ImagePublicID *string `json:"image_public_id,omitempty"`

	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
