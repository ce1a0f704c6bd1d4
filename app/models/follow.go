package models

import (
	"time"

	"gorm.io/gorm"
)

// Follow records that one user follows another
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"index:idx_follow_pair,unique" json:"follower_id"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	FollowedID uint      `gorm:"index:idx_follow_pair,unique" json:"followed_id"`
	Followed   User      `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Block records that one user blocked another
type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID uint      `gorm:"index:idx_block_pair,unique" json:"blocker_id"`
	Blocker   User      `gorm:"foreignKey:BlockerID" json:"blocker,omitempty"`
	BlockedID uint      `gorm:"index:idx_block_pair,unique" json:"blocked_id"`
	Blocked   User      `gorm:"foreignKey:BlockedID" json:"blocked,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ToggleFollow creates or removes a follow edge
func ToggleFollow(db *gorm.DB, followerID, followedID uint) error {
	var follow Follow
	result := db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).First(&follow)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			newFollow := Follow{
				FollowerID: followerID,
				FollowedID: followedID,
			}
			return db.Create(&newFollow).Error
		}
		return result.Error
	}

	return db.Delete(&follow).Error
}

// ToggleBlock creates or removes a block edge. Blocking also removes any
// follow edges between the two users in both directions.
func ToggleBlock(db *gorm.DB, blockerID, blockedID uint) error {
	var block Block
	result := db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).First(&block)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			if err := db.Where(
				"(follower_id = ? AND followed_id = ?) OR (follower_id = ? AND followed_id = ?)",
				blockerID, blockedID, blockedID, blockerID,
			).Delete(&Follow{}).Error; err != nil {
				return err
			}
			newBlock := Block{
				BlockerID: blockerID,
				BlockedID: blockedID,
			}
			return db.Create(&newBlock).Error
		}
		return result.Error
	}

	return db.Delete(&block).Error
}

// IsBlocked reports whether blocker has blocked blocked
func IsBlocked(db *gorm.DB, blockerID, blockedID uint) (bool, error) {
	var count int64
	err := db.Model(&Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}
