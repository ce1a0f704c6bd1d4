package models

import (
	"time"

	"gorm.io/gorm"
)

// Challenge is a design challenge users can submit published collages to
type Challenge struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatorID   uint           `gorm:"index" json:"creator_id"`
	Creator     User           `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=3,max=255"`
	Description string         `gorm:"type:text" json:"description"`
	Deadline    *time.Time     `gorm:"type:timestamp;default:null" json:"deadline,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsOpen reports whether submissions are still accepted
func (c *Challenge) IsOpen() bool {
	return c.Deadline == nil || time.Now().Before(*c.Deadline)
}

// ChallengeSubmission links a published collage to a challenge
type ChallengeSubmission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ChallengeID uint           `gorm:"index:idx_submission_pair,unique" json:"challenge_id"`
	Challenge   Challenge      `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	CollageID   uint           `gorm:"index:idx_submission_pair,unique" json:"collage_id"`
	Collage     Collage        `gorm:"foreignKey:CollageID" json:"collage,omitempty"`
	UserID      uint           `gorm:"index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
