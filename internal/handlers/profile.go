package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campuslink/backend/internal/middleware"
	"github.com/campuslink/backend/internal/services"
	"github.com/campuslink/backend/pkg/response"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{
		profileService: services.NewProfileService(db),
	}
}

// Update modifies the current user's account and developer profile
// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.profileService.Update(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
