package models

import (
	"time"

	"gorm.io/gorm"
)

type CollageLike struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CollageID uint           `gorm:"index" json:"collage_id"`
	Collage   Collage        `gorm:"foreignKey:CollageID" json:"collage,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ToggleLike creates or removes a like and keeps the collage's counter in
// sync. Returns whether the collage is liked after the call.
func ToggleLike(db *gorm.DB, userID, collageID uint) (bool, error) {
	var like CollageLike
	result := db.Where("user_id = ? AND collage_id = ?", userID, collageID).First(&like)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			newLike := CollageLike{
				UserID:    userID,
				CollageID: collageID,
			}
			if err := db.Create(&newLike).Error; err != nil {
				return false, err
			}
			err := db.Model(&Collage{}).Where("id = ?", collageID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
			return true, err
		}
		return false, result.Error
	}

	if err := db.Delete(&like).Error; err != nil {
		return true, err
	}
	err := db.Model(&Collage{}).Where("id = ? AND like_count > 0", collageID).
		UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	return false, err
}

// HasLiked reports whether the user currently likes the collage
func HasLiked(db *gorm.DB, userID, collageID uint) (bool, error) {
	var count int64
	err := db.Model(&CollageLike{}).
		Where("user_id = ? AND collage_id = ?", userID, collageID).
		Count(&count).Error
	return count > 0, err
}
