package message

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hawrami/events-iraq-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func currentUser(c *gin.Context) *auth.User {
	userVal, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := userVal.(auth.User)
	if !ok {
		return nil
	}
	return &user
}

// SendMessage handles POST /messages
// @Summary Send a direct message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body SendMessageRequest true "Message payload"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	resp, err := h.service.Send(user, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecipientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Recipient not found"})
		case errors.Is(err, ErrSelfMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "You cannot send a message to yourself"})
		case errors.Is(err, ErrEmptyBody):
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Message body cannot be empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": resp})
}

// GetConversation handles GET /messages/:userId
// @Summary Get a conversation thread
// @Description Returns every message exchanged with the partner, oldest first, and marks their messages as read
// @Tags Messages
// @Produce json
// @Param userId path uint true "Partner user ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/messages/{userId} [get]
func (h *Handler) GetConversation(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	partnerID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid user ID"})
		return
	}

	msgs, err := h.service.GetConversation(user.ID, uint(partnerID))
	if err != nil {
		if errors.Is(err, ErrRecipientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to load conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// ListConversations handles GET /messages
// @Summary List conversations
// @Description One entry per partner with the latest message and unread count, newest first
// @Tags Messages
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/messages [get]
func (h *Handler) ListConversations(c *gin.Context) {
	userID := c.GetUint("user_id")

	conversations, err := h.service.ListConversations(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to list conversations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// UnreadCount handles GET /messages/unread-count
// @Summary Total unread message count
// @Tags Messages
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/messages/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	userID := c.GetUint("user_id")

	count, err := h.service.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to count unread messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}
