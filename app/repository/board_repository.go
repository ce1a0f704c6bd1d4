package repository

import (
	"github.com/picpatch/PicPatch/app/models"
	"gorm.io/gorm"
)

// boardRepository implements the BoardRepository interface
type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new board repository instance
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

// Create creates a new board in the database
func (r *boardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// GetByID retrieves a board by its ID
func (r *boardRepository) GetByID(id uint) (*models.Board, error) {
	var board models.Board
	err := r.db.Preload("User").Preload("Collages").First(&board, id).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// GetByUserID retrieves all boards belonging to a specific user
func (r *boardRepository) GetByUserID(userID uint) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&boards).Error
	return boards, err
}

// Update updates an existing board in the database
func (r *boardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete soft deletes a board by its ID
func (r *boardRepository) Delete(id uint) error {
	err := r.db.Exec("DELETE FROM board_collages WHERE board_id = ?", id).Error
	if err != nil {
		return err
	}

	return r.db.Delete(&models.Board{}, id).Error
}

// AddCollage adds a published collage to a board
func (r *boardRepository) AddCollage(boardID, collageID uint) error {
	var count int64
	err := r.db.Table("board_collages").
		Where("board_id = ? AND collage_id = ?", boardID, collageID).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return r.db.Exec("INSERT INTO board_collages (board_id, collage_id) VALUES (?, ?)",
			boardID, collageID).Error
	}

	return nil
}

// RemoveCollage removes a collage from a board
func (r *boardRepository) RemoveCollage(boardID, collageID uint) error {
	return r.db.Exec("DELETE FROM board_collages WHERE board_id = ? AND collage_id = ?",
		boardID, collageID).Error
}

// GetCollages retrieves all collages on a board
func (r *boardRepository) GetCollages(boardID uint) ([]models.Collage, error) {
	var collages []models.Collage
	err := r.db.Table("collages").
		Joins("JOIN board_collages ON collages.id = board_collages.collage_id").
		Where("board_collages.board_id = ?", boardID).
		Order("collages.created_at DESC").
		Find(&collages).Error
	return collages, err
}

// CountByUserID returns the number of boards for a specific user
func (r *boardRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Board{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
