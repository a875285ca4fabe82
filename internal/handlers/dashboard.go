package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campuslink/backend/internal/middleware"
	"github.com/campuslink/backend/internal/services"
	"github.com/campuslink/backend/pkg/response"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB, hub *services.SSEHub) *DashboardHandler {
	chat := services.NewChatService(db, hub)
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db, chat),
	}
}

// StudentStats returns the owner-side dashboard counters
// GET /api/dashboard/student
func (h *DashboardHandler) StudentStats(c *gin.Context) {
	stats, err := h.dashboardService.StudentStats(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// CollaboratorStats returns the requester-side dashboard counters
// GET /api/dashboard/collaborator
func (h *DashboardHandler) CollaboratorStats(c *gin.Context) {
	stats, err := h.dashboardService.CollaboratorStats(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
