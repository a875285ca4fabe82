package models

import (
	"time"

	"gorm.io/gorm"
)

// User account types
const (
	UserTypeStudent      = "student"
	UserTypeCollaborator = "collaborator"
)

// User represents a platform account: a student publishing projects or a
// collaborator (company/individual) looking for projects to join.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // Hashed, empty for LDAP users
	FullName  string         `gorm:"size:200" json:"full_name"`
	UserType  string         `gorm:"size:20;default:student" json:"user_type"` // student, collaborator
	AvatarURL string         `gorm:"size:500" json:"avatar_url"`
	AuthType  string         `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	DeveloperProfile *DeveloperProfile `gorm:"foreignKey:UserID" json:"developer_profile,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) IsStudent() bool { return u.UserType == UserTypeStudent }
