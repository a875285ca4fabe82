package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campuslink/backend/internal/services"
	"github.com/campuslink/backend/pkg/response"
)

type SystemLogHandler struct {
	systemLogService *services.SystemLogService
}

func NewSystemLogHandler(db *gorm.DB) *SystemLogHandler {
	return &SystemLogHandler{
		systemLogService: services.NewSystemLogService(db),
	}
}

// List returns filtered, paginated system logs
// GET /api/system/logs
func (h *SystemLogHandler) List(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.systemLogService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// GetModules returns the distinct module names present in the logs
// GET /api/system/logs/modules
func (h *SystemLogHandler) GetModules(c *gin.Context) {
	modules, err := h.systemLogService.GetModules()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"modules": modules})
}

// Cleanup removes logs older than the given number of days
// DELETE /api/system/logs
func (h *SystemLogHandler) Cleanup(c *gin.Context) {
	days := h.systemLogService.GetRetentionDays()
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(c, "invalid days parameter")
			return
		}
		days = parsed
	}

	deleted, err := h.systemLogService.CleanupOldLogs(days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted, "days": days})
}

// GetRetention returns the configured log retention in days
// GET /api/system/logs/retention
func (h *SystemLogHandler) GetRetention(c *gin.Context) {
	response.Success(c, gin.H{"days": h.systemLogService.GetRetentionDays()})
}

type retentionRequest struct {
	Days int `json:"days" binding:"required,min=1"`
}

// SetRetention updates the log retention in days
// PUT /api/system/logs/retention
func (h *SystemLogHandler) SetRetention(c *gin.Context) {
	var req retentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.systemLogService.SetRetentionDays(req.Days); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"days": req.Days})
}
