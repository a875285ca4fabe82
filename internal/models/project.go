package models

import (
	"time"

	"gorm.io/gorm"
)

// Project categories
const (
	CategoryWeb        = "web"
	CategoryMobile     = "mobile"
	CategoryAI         = "ai"
	CategoryIoT        = "iot"
	CategoryBlockchain = "blockchain"
	CategoryOther      = "other"
)

// Project statuses. Deletion is a soft status flip; the row survives so
// existing collaborations keep a valid reference.
const (
	ProjectActive  = "active"
	ProjectDeleted = "deleted"
)

// ValidCategory reports whether c is a known project category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryWeb, CategoryMobile, CategoryAI, CategoryIoT, CategoryBlockchain, CategoryOther:
		return true
	}
	return false
}

// Project represents a published academic project.
type Project struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:200;not null" json:"name"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Category      string         `gorm:"size:50;index;not null" json:"category"`
	Tags          string         `gorm:"size:1000" json:"tags"` // comma-separated
	EstimatedCost float64        `json:"estimated_cost"`
	ImageURL      string         `gorm:"size:500" json:"image_url"`
	ContactEmail  string         `gorm:"size:255" json:"contact_email"`
	ContactPhone  string         `gorm:"size:50" json:"contact_phone"`
	RepositoryURL string         `gorm:"size:500" json:"repository_url"`
	DemoURL       string         `gorm:"size:500" json:"demo_url"`
	Status        string         `gorm:"size:20;index;default:active" json:"status"` // active, deleted
	Featured      bool           `gorm:"default:false" json:"featured"`
	CreatedBy     uint           `gorm:"index;not null" json:"created_by"`
	Owner         *User          `gorm:"foreignKey:CreatedBy" json:"owner,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Authors []ProjectAuthor `gorm:"foreignKey:ProjectID" json:"authors,omitempty"`
}

func (Project) TableName() string { return "projects" }
