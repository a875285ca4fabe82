package services

import (
	"errors"
	"strings"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/pkg/response"
	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

type UpdateProfileRequest struct {
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`

	// Developer profile fields, students only
	University                string   `json:"university"`
	Career                    string   `json:"career"`
	Semester                  *int     `json:"semester"`
	Skills                    []string `json:"skills"`
	GithubURL                 string   `json:"github_url"`
	LinkedinURL               string   `json:"linkedin_url"`
	PortfolioURL              string   `json:"portfolio_url"`
	Bio                       string   `json:"bio"`
	Location                  string   `json:"location"`
	AvailableForCollaboration *bool    `json:"available_for_collaboration"`
}

// Update applies profile edits for the given user and returns the
// refreshed user row.
func (s *ProfileService) Update(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("DeveloperProfile").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	userUpdates := make(map[string]interface{})
	if req.FullName != "" {
		userUpdates["full_name"] = req.FullName
	}
	if req.AvatarURL != "" {
		userUpdates["avatar_url"] = req.AvatarURL
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(userUpdates) > 0 {
			if err := tx.Model(&user).Updates(userUpdates).Error; err != nil {
				return err
			}
		}

		if !user.IsStudent() {
			return nil
		}

		profile := user.DeveloperProfile
		if profile == nil {
			profile = &models.DeveloperProfile{UserID: user.ID}
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}

		profileUpdates := make(map[string]interface{})
		if req.University != "" {
			profileUpdates["university"] = req.University
		}
		if req.Career != "" {
			profileUpdates["career"] = req.Career
		}
		if req.Semester != nil {
			profileUpdates["semester"] = req.Semester
		}
		if req.Skills != nil {
			profileUpdates["skills"] = strings.Join(req.Skills, ",")
		}
		if req.GithubURL != "" {
			profileUpdates["github_url"] = req.GithubURL
		}
		if req.LinkedinURL != "" {
			profileUpdates["linkedin_url"] = req.LinkedinURL
		}
		if req.PortfolioURL != "" {
			profileUpdates["portfolio_url"] = req.PortfolioURL
		}
		if req.Bio != "" {
			profileUpdates["bio"] = req.Bio
		}
		if req.Location != "" {
			profileUpdates["location"] = req.Location
		}
		if req.AvailableForCollaboration != nil {
			profileUpdates["available_for_collaboration"] = *req.AvailableForCollaboration
		}

		if len(profileUpdates) > 0 {
			if err := tx.Model(profile).Updates(profileUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	var refreshed models.User
	if err := s.db.Preload("DeveloperProfile").First(&refreshed, userID).Error; err != nil {
		return nil, err
	}
	return &refreshed, nil
}
