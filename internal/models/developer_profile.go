package models

import "time"

// DeveloperProfile holds the extended academic attributes of a student
// user. Exists 1:1 with a User of type student.
type DeveloperProfile struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	UserID                   uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	University               string    `gorm:"size:200" json:"university"`
	Career                   string    `gorm:"size:200" json:"career"`
	Semester                 *int      `json:"semester"`
	Skills                   string    `gorm:"size:1000" json:"skills"` // comma-separated
	GithubURL                string    `gorm:"size:500" json:"github_url"`
	LinkedinURL              string    `gorm:"size:500" json:"linkedin_url"`
	PortfolioURL             string    `gorm:"size:500" json:"portfolio_url"`
	Bio                      string    `gorm:"type:text" json:"bio"`
	Location                 string    `gorm:"size:200" json:"location"`
	AvailableForCollaboration bool     `gorm:"default:true" json:"available_for_collaboration"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func (DeveloperProfile) TableName() string { return "developer_profiles" }
