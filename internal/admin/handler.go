package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// ListHosts handles GET /admin/hosts
// @Summary List host profiles by verification status (Admin only)
// @Tags Admin
// @Produce json
// @Param status query string false "Verification status (default: pending)"
// @Success 200 {object} gin.H
// @Router /api/v1/admin/hosts [get]
func (h *Handler) ListHosts(c *gin.Context) {
	hosts, err := h.service.ListHostsByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to list hosts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hosts": hosts})
}

// ApproveHost handles PATCH /admin/hosts/:id/approve
// @Summary Approve a pending host profile (Admin only)
// @Tags Admin
// @Produce json
// @Param id path uint true "User ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Failure 409 {object} gin.H
// @Router /api/v1/admin/hosts/{id}/approve [patch]
func (h *Handler) ApproveHost(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.service.ApproveHost(c.Request.Context(), userID, c.GetUint("user_id"), c.ClientIP())
	if err != nil {
		h.writeHostError(c, err, "Failed to approve host")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Host approved"})
}

// RejectHost handles PATCH /admin/hosts/:id/reject
// @Summary Reject a pending host profile with a reason (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path uint true "User ID"
// @Param rejection body RejectHostRequest true "Rejection payload"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Failure 409 {object} gin.H
// @Router /api/v1/admin/hosts/{id}/reject [patch]
func (h *Handler) RejectHost(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectHostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "A rejection reason is required"})
		return
	}

	err := h.service.RejectHost(c.Request.Context(), userID, c.GetUint("user_id"), req.Reason, c.ClientIP())
	if err != nil {
		h.writeHostError(c, err, "Failed to reject host")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Host rejected"})
}

// ListPendingEvents handles GET /admin/events/pending
// @Summary List events awaiting approval (Admin only)
// @Tags Admin
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/admin/events/pending [get]
func (h *Handler) ListPendingEvents(c *gin.Context) {
	events, err := h.service.ListPendingEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to list pending events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ApproveEvent handles PATCH /admin/events/:id/approve
// @Summary Approve a submitted event (Admin only)
// @Tags Admin
// @Produce json
// @Param id path uint true "Event ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Failure 409 {object} gin.H
// @Router /api/v1/admin/events/{id}/approve [patch]
func (h *Handler) ApproveEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.service.ApproveEvent(c.Request.Context(), eventID, c.GetUint("user_id"), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Event not found"})
		case errors.Is(err, ErrAlreadyApproved):
			c.JSON(http.StatusConflict, gin.H{"error": "already_approved", "message": "Event is already approved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to approve event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event approved", "event": e})
}

// RejectEvent handles PATCH /admin/events/:id/reject
// @Summary Reject and remove a submitted event (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path uint true "Event ID"
// @Param rejection body RejectEventRequest true "Rejection payload"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/admin/events/{id}/reject [patch]
func (h *Handler) RejectEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "A rejection reason is required"})
		return
	}

	err := h.service.RejectEvent(c.Request.Context(), eventID, c.GetUint("user_id"), req.Reason, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to reject event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event rejected"})
}

// GetUsers handles GET /admin/users
// @Summary List users with role and search filters (Admin only)
// @Tags Admin
// @Produce json
// @Param role query string false "Role filter (attendee, host, admin)"
// @Param search query string false "Name or email search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} UserListResult
// @Router /api/v1/admin/users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.GetUsers(c.Request.Context(), c.Query("role"), c.Query("search"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStats handles GET /admin/stats
// @Summary Platform dashboard counters (Admin only)
// @Tags Admin
// @Produce json
// @Success 200 {object} PlatformStats
// @Router /api/v1/admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) writeHostError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "User not found"})
	case errors.Is(err, ErrNotAHost):
		c.JSON(http.StatusBadRequest, gin.H{"error": "not_a_host", "message": "User is not a host"})
	case errors.Is(err, ErrNotPendingReview):
		c.JSON(http.StatusConflict, gin.H{"error": "not_pending", "message": "Host profile is not pending review"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": fallback})
	}
}
