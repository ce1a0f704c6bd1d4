package repository

import (
	"time"

	"github.com/picpatch/PicPatch/app/models"
	"gorm.io/gorm"
)

// challengeRepository implements the ChallengeRepository interface
type challengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository creates a new challenge repository instance
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

// Create creates a new challenge in the database
func (r *challengeRepository) Create(challenge *models.Challenge) error {
	return r.db.Create(challenge).Error
}

// GetByID retrieves a challenge by its ID
func (r *challengeRepository) GetByID(id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.db.First(&challenge, id).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// GetOpen retrieves challenges whose deadline has not passed
func (r *challengeRepository) GetOpen() ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := r.db.Where("deadline IS NULL OR deadline > ?", time.Now()).
		Order("created_at DESC").Find(&challenges).Error
	return challenges, err
}

// List retrieves challenges with pagination, newest first
func (r *challengeRepository) List(offset, limit int) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := r.db.Offset(offset).Limit(limit).
		Order("created_at DESC").Find(&challenges).Error
	return challenges, err
}

// Update updates an existing challenge in the database
func (r *challengeRepository) Update(challenge *models.Challenge) error {
	return r.db.Save(challenge).Error
}

// Delete soft deletes a challenge by its ID
func (r *challengeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Challenge{}, id).Error
}

// Submit creates a new challenge submission
func (r *challengeRepository) Submit(submission *models.ChallengeSubmission) error {
	return r.db.Create(submission).Error
}

// GetSubmissions retrieves all submissions for a challenge
func (r *challengeRepository) GetSubmissions(challengeID uint) ([]models.ChallengeSubmission, error) {
	var submissions []models.ChallengeSubmission
	err := r.db.Preload("Collage").Preload("User").
		Where("challenge_id = ?", challengeID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// HasSubmitted reports whether a collage was already entered into a challenge
func (r *challengeRepository) HasSubmitted(challengeID, collageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ChallengeSubmission{}).
		Where("challenge_id = ? AND collage_id = ?", challengeID, collageID).
		Count(&count).Error
	return count > 0, err
}
