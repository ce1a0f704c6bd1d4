package repository

import (
	"github.com/picpatch/PicPatch/app/models"
	"gorm.io/gorm"
)

// draftRepository implements the DraftRepository interface
type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository instance
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

// Create creates a new draft in the database
func (r *draftRepository) Create(draft *models.Draft) error {
	return r.db.Create(draft).Error
}

// GetByID retrieves a draft by its ID
func (r *draftRepository) GetByID(id uint) (*models.Draft, error) {
	var draft models.Draft
	err := r.db.First(&draft, id).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// GetByUserID retrieves all drafts belonging to a specific user
func (r *draftRepository) GetByUserID(userID uint) ([]models.Draft, error) {
	var drafts []models.Draft
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").Find(&drafts).Error
	return drafts, err
}

// Update updates an existing draft in the database
func (r *draftRepository) Update(draft *models.Draft) error {
	return r.db.Save(draft).Error
}

// Delete deletes a draft by its ID
func (r *draftRepository) Delete(id uint) error {
	return r.db.Delete(&models.Draft{}, id).Error
}

// CountByUserID returns the number of drafts for a specific user
func (r *draftRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Draft{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
