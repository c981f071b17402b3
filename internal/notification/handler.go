package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMyNotifications handles GET /notifications
// @Summary List my in-app notifications, newest first
// @Tags Notifications
// @Produce json
// @Param limit query int false "Max rows (default 50, max 100)"
// @Success 200 {object} gin.H
// @Router /api/v1/notifications [get]
func (h *Handler) GetMyNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	rows, err := h.service.ListMine(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": rows})
}

// UnreadCount handles GET /notifications/unread-count
// @Summary Unread notification count
// @Tags Notifications
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/notifications/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	userID := c.GetUint("user_id")

	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkRead handles PATCH /notifications/:id/read
// @Summary Mark one notification as read
// @Tags Notifications
// @Produce json
// @Param id path uint true "Notification ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/notifications/{id}/read [patch]
func (h *Handler) MarkRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid notification ID"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), uint(id), userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to mark notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead handles PATCH /notifications/read-all
// @Summary Mark every notification as read
// @Tags Notifications
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/notifications/read-all [patch]
func (h *Handler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to mark notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// RegisterFCMToken handles POST /notifications/device-tokens
// @Summary Register a device for push notifications
// @Tags Notifications
// @Accept json
// @Produce json
// @Param token body RegisterTokenRequest true "Device token payload"
// @Success 201 {object} gin.H
// @Failure 400 {object} gin.H
// @Router /api/v1/notifications/device-tokens [post]
func (h *Handler) RegisterFCMToken(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	if err := h.service.RegisterDevice(c.Request.Context(), userID, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to register device"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Device registered"})
}

// UnregisterFCMToken handles DELETE /notifications/device-tokens
// @Summary Unregister a push device
// @Tags Notifications
// @Accept json
// @Produce json
// @Param token body RegisterTokenRequest true "Device token payload"
// @Success 200 {object} gin.H
// @Router /api/v1/notifications/device-tokens [delete]
func (h *Handler) UnregisterFCMToken(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	if err := h.service.UnregisterDevice(c.Request.Context(), userID, req.DeviceToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to unregister device"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device unregistered"})
}

// Broadcast handles POST /admin/notifications/broadcast
// @Summary Push an announcement to all devices (Admin only)
// @Tags Notifications
// @Accept json
// @Produce json
// @Param announcement body BroadcastRequest true "Announcement payload"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H
// @Router /api/v1/admin/notifications/broadcast [post]
func (h *Handler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	if err := h.service.Broadcast(req.Title, req.Body); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push_unavailable", "message": "Push notifications are not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement sent"})
}
