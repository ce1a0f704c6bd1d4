package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReportStatusOpen      = "open"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// CollageReport is a user report against a published collage
type CollageReport struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CollageID  uint           `gorm:"index" json:"collage_id"`
	Collage    Collage        `gorm:"foreignKey:CollageID" json:"collage,omitempty"`
	ReporterID *uint          `gorm:"index" json:"reporter_id,omitempty"`
	Reporter   *User          `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Reason     string         `gorm:"type:varchar(100);not null" json:"reason" validate:"required"`
	Details    string         `gorm:"type:text" json:"details"`
	Status     string         `gorm:"type:varchar(50);default:'open'" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
