package event

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hawrami/events-iraq-backend/internal/auth"
)

type Handler struct {
	service   *Service
	uploadDir string
}

func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

// currentUser returns the authenticated user set by the auth middleware,
// or nil on public routes
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

// ===========================
// Public listing

// ListEvents handles GET /events
// @Summary List approved events
// @Description List approved events with optional city, category and search filters. Promoted events appear first.
// @Tags Events
// @Produce json
// @Param city_id query uint false "Filter by city ID"
// @Param category_id query uint false "Filter by category ID"
// @Param search query string false "Case-insensitive title search across all languages"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} ListResult
// @Failure 500 {object} gin.H
// @Router /api/v1/events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	var filters ListFilters

	if cityStr := c.Query("city_id"); cityStr != "" {
		cityID, err := strconv.ParseUint(cityStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "city_id must be a number"})
			return
		}
		id := uint(cityID)
		filters.CityID = &id
	}

	if catStr := c.Query("category_id"); catStr != "" {
		catID, err := strconv.ParseUint(catStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "category_id must be a number"})
			return
		}
		id := uint(catID)
		filters.CategoryID = &id
	}

	filters.Search = strings.TrimSpace(c.Query("search"))
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.List(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to list events"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEvent handles GET /events/:id
// @Summary Get event details
// @Description Get a single event with creator, category, city and attendee list
// @Tags Events
// @Produce json
// @Param id path uint true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} gin.H
// @Router /api/v1/events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid event ID"})
		return
	}

	resp, err := h.service.Get(uint(id), currentUser(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to load event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": resp})
}

// ===========================
// Host routes

// CreateEvent handles POST /events
// @Summary Create an event
// @Description Create a new event. Hosts must be verified; the event awaits admin approval.
// @Tags Events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event payload"
// @Success 201 {object} EventResponse
// @Failure 400 {object} gin.H
// @Failure 403 {object} gin.H
// @Router /api/v1/events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	resp, err := h.service.Create(&req, user, c.ClientIP())
	if err != nil {
		h.writeMutationError(c, err, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": resp})
}

// UpdateEvent handles PUT /events/:id
// @Summary Update an event
// @Description Update an event. Only the creator or an admin may update.
// @Tags Events
// @Accept json
// @Produce json
// @Param id path uint true "Event ID"
// @Param event body UpdateEventRequest true "Event payload"
// @Success 200 {object} EventResponse
// @Failure 403 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/events/{id} [put]
func (h *Handler) UpdateEvent(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid event ID"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	resp, err := h.service.Update(uint(id), &req, user, c.ClientIP())
	if err != nil {
		h.writeMutationError(c, err, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": resp})
}

// DeleteEvent handles DELETE /events/:id
// @Summary Delete an event
// @Description Delete an event and its attendance records. Only the creator or an admin may delete.
// @Tags Events
// @Produce json
// @Param id path uint true "Event ID"
// @Success 200 {object} gin.H
// @Failure 403 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/events/{id} [delete]
func (h *Handler) DeleteEvent(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid event ID"})
		return
	}

	if err := h.service.Delete(uint(id), user, c.ClientIP()); err != nil {
		h.writeMutationError(c, err, "Failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// ListMyEvents handles GET /events/mine
// @Summary List events created by the current user
// @Tags Events
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/events/mine [get]
func (h *Handler) ListMyEvents(c *gin.Context) {
	userID := c.GetUint("user_id")
	events, err := h.service.ListByCreator(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to list events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ===========================
// Attendance

// ToggleAttendance handles POST /events/:id/attend
// @Summary Toggle attendance
// @Description Join the event if not attending, leave if already attending
// @Tags Events
// @Produce json
// @Param id path uint true "Event ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/events/{id}/attend [post]
func (h *Handler) ToggleAttendance(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid event ID"})
		return
	}

	attending, resp, err := h.service.ToggleAttendance(uint(id), user)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to update attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attending": attending,
		"event":     resp,
	})
}

// ===========================
// Image upload

// UploadImage handles POST /events/upload-image
// @Summary Upload an event image
// @Description Upload a jpeg/png/webp image, returns the public URL to use as image_url
// @Tags Events
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} gin.H
// @Failure 400 {object} gin.H
// @Router /api/v1/events/upload-image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported_type", "message": "Only jpeg, png and webp images are accepted"})
		return
	}

	const maxImageSize = 5 << 20 // 5 MB
	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_too_large", "message": "Image must be smaller than 5 MB"})
		return
	}

	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(h.uploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + name})
}

func (h *Handler) writeMutationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Event not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "You do not own this event"})
	case errors.Is(err, ErrHostNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": "host_not_verified", "message": "Your host account must be approved before creating events"})
	case errors.Is(err, ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_reference", "message": "Unknown category or city"})
	case errors.Is(err, ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "date must be RFC 3339, e.g. 2026-03-21T18:00:00Z"})
	case errors.Is(err, ErrMissingEnglish):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "English title and description are required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": fallback})
	}
}
