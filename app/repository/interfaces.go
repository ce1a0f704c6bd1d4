package repository

import (
	"github.com/picpatch/PicPatch/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetBlocked(userID uint) ([]models.User, error)
}

// BoardRepository defines the interface for board-related database operations
type BoardRepository interface {
	Create(board *models.Board) error
	GetByID(id uint) (*models.Board, error)
	GetByUserID(userID uint) ([]models.Board, error)
	Update(board *models.Board) error
	Delete(id uint) error
	AddCollage(boardID, collageID uint) error
	RemoveCollage(boardID, collageID uint) error
	GetCollages(boardID uint) ([]models.Collage, error)
	CountByUserID(userID uint) (int64, error)
}

// DraftRepository defines the interface for draft-related database operations
type DraftRepository interface {
	Create(draft *models.Draft) error
	GetByID(id uint) (*models.Draft, error)
	GetByUserID(userID uint) ([]models.Draft, error)
	Update(draft *models.Draft) error
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
}

// CollageRepository defines the interface for collage-related database operations
type CollageRepository interface {
	Create(collage *models.Collage) error
	GetByID(id uint) (*models.Collage, error)
	GetByShareLink(shareLink string) (*models.Collage, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Collage, error)
	Update(collage *models.Collage) error
	Delete(id uint) error
	GetFeed(viewerID uint, offset, limit int) ([]models.Collage, error)
	GetRecent(limit int) ([]models.Collage, error)
	Count() (int64, error)
	CountByUserID(userID uint) (int64, error)
	GetComments(collageID uint) ([]models.Comment, error)
	AddComment(comment *models.Comment) error
	DeleteComment(commentID uint) error
	AddReport(report *models.CollageReport) error
	GetOpenReports(offset, limit int) ([]models.CollageReport, error)
	ResolveReport(reportID uint, status string) error
}

// ChallengeRepository defines the interface for challenge-related database operations
type ChallengeRepository interface {
	Create(challenge *models.Challenge) error
	GetByID(id uint) (*models.Challenge, error)
	GetOpen() ([]models.Challenge, error)
	List(offset, limit int) ([]models.Challenge, error)
	Update(challenge *models.Challenge) error
	Delete(id uint) error
	Submit(submission *models.ChallengeSubmission) error
	GetSubmissions(challengeID uint) ([]models.ChallengeSubmission, error)
	HasSubmitted(challengeID, collageID uint) (bool, error)
}

// Repositories holds all repository instances
type Repositories struct {
	User      UserRepository
	Board     BoardRepository
	Draft     DraftRepository
	Collage   CollageRepository
	Challenge ChallengeRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Board:     NewBoardRepository(db),
		Draft:     NewDraftRepository(db),
		Collage:   NewCollageRepository(db),
		Challenge: NewChallengeRepository(db),
	}
}
