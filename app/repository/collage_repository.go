package repository

import (
	"github.com/picpatch/PicPatch/app/models"
	"gorm.io/gorm"
)

// collageRepository implements the CollageRepository interface
type collageRepository struct {
	db *gorm.DB
}

// NewCollageRepository creates a new collage repository instance
func NewCollageRepository(db *gorm.DB) CollageRepository {
	return &collageRepository{db: db}
}

// Create creates a new collage in the database
func (r *collageRepository) Create(collage *models.Collage) error {
	return r.db.Create(collage).Error
}

// GetByID retrieves a collage by its ID
func (r *collageRepository) GetByID(id uint) (*models.Collage, error) {
	var collage models.Collage
	err := r.db.Preload("User").First(&collage, id).Error
	if err != nil {
		return nil, err
	}
	return &collage, nil
}

// GetByShareLink retrieves a collage by its share link
func (r *collageRepository) GetByShareLink(shareLink string) (*models.Collage, error) {
	var collage models.Collage
	err := r.db.Preload("User").Where("share_link = ?", shareLink).First(&collage).Error
	if err != nil {
		return nil, err
	}
	return &collage, nil
}

// GetByUserID retrieves collages belonging to a specific user with pagination
func (r *collageRepository) GetByUserID(userID uint, offset, limit int) ([]models.Collage, error) {
	var collages []models.Collage
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&collages).Error
	return collages, err
}

// Update updates an existing collage in the database
func (r *collageRepository) Update(collage *models.Collage) error {
	return r.db.Save(collage).Error
}

// Delete soft deletes a collage by its ID
func (r *collageRepository) Delete(id uint) error {
	err := r.db.Exec("DELETE FROM board_collages WHERE collage_id = ?", id).Error
	if err != nil {
		return err
	}

	return r.db.Delete(&models.Collage{}, id).Error
}

// GetFeed retrieves recent collages for a viewer, excluding authors the
// viewer has blocked and authors who blocked the viewer
func (r *collageRepository) GetFeed(viewerID uint, offset, limit int) ([]models.Collage, error) {
	var collages []models.Collage
	query := r.db.Preload("User").Order("created_at DESC")
	if viewerID != 0 {
		query = query.Where(
			"user_id NOT IN (SELECT blocked_id FROM blocks WHERE blocker_id = ?)", viewerID).
			Where("user_id NOT IN (SELECT blocker_id FROM blocks WHERE blocked_id = ?)", viewerID)
	}
	err := query.Offset(offset).Limit(limit).Find(&collages).Error
	return collages, err
}

// GetRecent retrieves the most recently posted collages
func (r *collageRepository) GetRecent(limit int) ([]models.Collage, error) {
	var collages []models.Collage
	err := r.db.Preload("User").Order("created_at DESC").Limit(limit).Find(&collages).Error
	return collages, err
}

// Count returns the total number of collages
func (r *collageRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Collage{}).Count(&count).Error
	return count, err
}

// CountByUserID returns the number of collages for a specific user
func (r *collageRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Collage{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetComments retrieves all comments on a collage, oldest first
func (r *collageRepository) GetComments(collageID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("collage_id = ?", collageID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// AddComment creates a new comment on a collage
func (r *collageRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// DeleteComment deletes a comment by its ID
func (r *collageRepository) DeleteComment(commentID uint) error {
	return r.db.Delete(&models.Comment{}, commentID).Error
}

// AddReport creates a new report against a collage
func (r *collageRepository) AddReport(report *models.CollageReport) error {
	return r.db.Create(report).Error
}

// GetOpenReports retrieves unresolved reports with pagination
func (r *collageRepository) GetOpenReports(offset, limit int) ([]models.CollageReport, error) {
	var reports []models.CollageReport
	err := r.db.Preload("Collage").Preload("Reporter").
		Where("status = ?", models.ReportStatusOpen).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&reports).Error
	return reports, err
}

// ResolveReport updates the status of a report
func (r *collageRepository) ResolveReport(reportID uint, status string) error {
	return r.db.Model(&models.CollageReport{}).
		Where("id = ?", reportID).
		Update("status", status).Error
}
