package models

import (
	"time"

	"gorm.io/gorm"
)

// Pin is one stock image saved to a board, available for collaging
type Pin struct {
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title,omitempty"`
}

// Board is a user's moodboard: a set of pinned source images plus the
// collage being assembled from them. The working collage lives in a Draft
// once the user saves; until then the board carries no layout of its own.
type Board struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Description string         `gorm:"type:text" json:"description"`
	Pins        []Pin          `gorm:"serializer:json;type:json" json:"pins"`
	DraftID     *uint          `gorm:"index" json:"draft_id,omitempty"`
	Collages    []Collage      `gorm:"many2many:board_collages;" json:"collages,omitempty"`
	ViewCount   int            `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// AddPin appends a pinned image to the board
func (b *Board) AddPin(db *gorm.DB, pin Pin) error {
	b.Pins = append(b.Pins, pin)
	return db.Model(b).Update("pins", b.Pins).Error
}

// RemovePinAt removes the pin at index; later pins shift down
func (b *Board) RemovePinAt(db *gorm.DB, index int) error {
	if index < 0 || index >= len(b.Pins) {
		return gorm.ErrRecordNotFound
	}
	b.Pins = append(b.Pins[:index], b.Pins[index+1:]...)
	return db.Model(b).Update("pins", b.Pins).Error
}

// LinkDraft attaches the working draft to the board
func (b *Board) LinkDraft(db *gorm.DB, draftID uint) error {
	b.DraftID = &draftID
	return db.Model(b).Update("draft_id", draftID).Error
}

// UnlinkDraft detaches the working draft, used after the draft was
// published and deleted
func (b *Board) UnlinkDraft(db *gorm.DB) error {
	b.DraftID = nil
	return db.Model(b).Update("draft_id", nil).Error
}
