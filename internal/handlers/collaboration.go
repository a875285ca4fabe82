package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campuslink/backend/internal/middleware"
	"github.com/campuslink/backend/internal/services"
	"github.com/campuslink/backend/pkg/response"
)

type CollaborationHandler struct {
	collaborationService *services.CollaborationService
}

func NewCollaborationHandler(db *gorm.DB, queue services.TaskQueue) *CollaborationHandler {
	return &CollaborationHandler{
		collaborationService: services.NewCollaborationService(db, queue),
	}
}

// Request files a collaboration request against a project
// POST /api/collaborations
func (h *CollaborationHandler) Request(c *gin.Context) {
	var req services.RequestCollaborationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	collab, err := h.collaborationService.Request(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, collab)
}

type respondRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

// Respond accepts or rejects a pending request (project owner only)
// PUT /api/collaborations/:id/respond
func (h *CollaborationHandler) Respond(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid collaboration id")
		return
	}

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	collab, err := h.collaborationService.Respond(uint(id), middleware.GetUserID(c), req.Action == "accept")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, collab)
}

// Complete marks an accepted collaboration as finished
// PUT /api/collaborations/:id/complete
func (h *CollaborationHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid collaboration id")
		return
	}

	collab, err := h.collaborationService.Complete(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, collab)
}

type progressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// UpdateProgress sets the progress percentage of an active collaboration
// PUT /api/collaborations/:id/progress
func (h *CollaborationHandler) UpdateProgress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid collaboration id")
		return
	}

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	collab, err := h.collaborationService.UpdateProgress(uint(id), middleware.GetUserID(c), *req.Progress)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, collab)
}

// Withdraw removes the caller's own pending request
// DELETE /api/collaborations/:id
func (h *CollaborationHandler) Withdraw(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid collaboration id")
		return
	}

	if err := h.collaborationService.Remove(uint(id), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "collaboration request withdrawn"})
}

// ListOutgoing returns the requests the current user has filed
// GET /api/collaborations/outgoing
func (h *CollaborationHandler) ListOutgoing(c *gin.Context) {
	collabs, err := h.collaborationService.ListOutgoing(middleware.GetUserID(c), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, collabs)
}

// ListIncoming returns the requests against the current user's projects
// GET /api/collaborations/incoming
func (h *CollaborationHandler) ListIncoming(c *gin.Context) {
	collabs, err := h.collaborationService.ListIncoming(middleware.GetUserID(c), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, collabs)
}
