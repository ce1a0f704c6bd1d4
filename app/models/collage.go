package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/picpatch/PicPatch/internal/pkg/collage"
	"github.com/picpatch/PicPatch/internal/pkg/shortener"
)

// Default canvas dimensions stamped on published collages.
const (
	DefaultContainerWidth  = 1000
	DefaultContainerHeight = 800
)

// Collage is a published, public collage. Its items are stored in the
// published shape (placement nested under layout) which differs from the
// draft shape; both predate this codebase and must keep loading as-is.
type Collage struct {
	ID               uint                  `gorm:"primaryKey" json:"id"`
	UserID           uint                  `gorm:"index" json:"user_id"`
	User             User                  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name             string                `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Items            []collage.CollageItem `gorm:"serializer:json;type:json" json:"collage"`
	ContainerWidth   int                   `gorm:"default:1000" json:"containerWidth"`
	ContainerHeight  int                   `gorm:"default:800" json:"containerHeight"`
	PostedByUsername string                `gorm:"type:varchar(150)" json:"postedByUsername"`
	ShareLink        string                `gorm:"type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex" json:"share_link"`
	LikeCount        int                   `gorm:"default:0" json:"likes"`
	ViewCount        int                   `gorm:"default:0" json:"views"`
	ShareCount       int                   `gorm:"default:0" json:"shares"`
	Comments         []Comment             `gorm:"foreignKey:CollageID" json:"comments,omitempty"`
	CreatedAt        time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt        `gorm:"index" json:"-"`
}

// Composition hydrates the published items into the in-memory representation
func (c *Collage) Composition() collage.Composition {
	return collage.FromCollageItems(c.Items)
}

// ThumbnailURL returns the image of the first layer, used as list preview
func (c *Collage) ThumbnailURL() string {
	if len(c.Items) == 0 {
		return ""
	}
	return c.Items[0].ImageURL
}

// BeforeCreate is called before a new record is inserted
func (c *Collage) BeforeCreate(tx *gorm.DB) error {
	// Generate a unique temporary share link for the insert
	if c.ShareLink == "" {
		c.ShareLink = "temp-" + uuid.New().String()[:8]
	}
	return nil
}

// AfterCreate is called after a new record was inserted
func (c *Collage) AfterCreate(tx *gorm.DB) error {
	// Generate the real share link based on the ID
	if c.ShareLink == "" || c.ShareLink[:5] == "temp-" {
		c.ShareLink = shortener.EncodeID(c.ID)
		return tx.Model(c).Update("share_link", c.ShareLink).Error
	}
	return nil
}
