package models

import "time"

// ProjectAuthor is display-only author metadata attached to a project.
// Authors are free-form names, independent of the users table.
type ProjectAuthor struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  uint      `gorm:"index;not null" json:"project_id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	University string    `gorm:"size:200" json:"university"`
	Email      string    `gorm:"size:255" json:"email"`
	Role       string    `gorm:"size:50;default:author" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ProjectAuthor) TableName() string { return "project_authors" }
