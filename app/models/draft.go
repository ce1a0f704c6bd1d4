package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/picpatch/PicPatch/internal/pkg/collage"
)

// Draft is a private, in-progress collage. Its items are stored in the
// flat draft shape (placement attributes directly on each item); published
// collages use a different shape, see Collage. A draft is transient
// staging: it is deleted once it has been published.
type Draft struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	UserID    uint                `gorm:"index" json:"user_id"`
	User      User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name      string              `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Items     []collage.DraftItem `gorm:"serializer:json;type:json" json:"collage"`
	CreatedAt time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`
}

// Composition hydrates the draft's items into the in-memory representation
func (d *Draft) Composition() collage.Composition {
	return collage.FromDraftItems(d.Items)
}

// SetComposition serializes a composition back into the draft shape
func (d *Draft) SetComposition(c collage.Composition) {
	d.Items = collage.ToDraftItems(c)
}
