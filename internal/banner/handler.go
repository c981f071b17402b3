package banner

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

// GetBanners handles GET /banners
// @Summary Get active banners
// @Description Active banners for a city; cities without their own banners receive the citywide set
// @Tags Banners
// @Produce json
// @Param city_id query uint false "City ID (omit for citywide banners)"
// @Param placement query string false "Placement slot (home, event_list, event_detail)"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H
// @Router /api/v1/banners [get]
func (h *Handler) GetBanners(c *gin.Context) {
	var cityID *uint
	if cityStr := c.Query("city_id"); cityStr != "" {
		id, err := strconv.ParseUint(cityStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "city_id must be a number"})
			return
		}
		v := uint(id)
		cityID = &v
	}

	banners, err := h.service.GetBanners(cityID, c.Query("placement"))
	if err != nil {
		if errors.Is(err, ErrInvalidPlacement) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Unknown placement"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to load banners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// TrackClick handles POST /banners/:id/click
// @Summary Record a banner click
// @Tags Banners
// @Produce json
// @Param id path uint true "Banner ID"
// @Success 204
// @Failure 404 {object} gin.H
// @Router /api/v1/banners/{id}/click [post]
func (h *Handler) TrackClick(c *gin.Context) {
	h.track(c, h.service.TrackClick)
}

// TrackView handles POST /banners/:id/view
// @Summary Record a banner impression
// @Tags Banners
// @Produce json
// @Param id path uint true "Banner ID"
// @Success 204
// @Failure 404 {object} gin.H
// @Router /api/v1/banners/{id}/view [post]
func (h *Handler) TrackView(c *gin.Context) {
	h.track(c, h.service.TrackView)
}

func (h *Handler) track(c *gin.Context, fn func(uint) error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid banner ID"})
		return
	}

	if err := fn(uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to record"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ===========================
// Admin endpoints

// ListAllBanners handles GET /admin/banners
// @Summary List all banners including inactive (Admin only)
// @Tags Banners
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/admin/banners [get]
func (h *Handler) ListAllBanners(c *gin.Context) {
	banners, err := h.service.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to list banners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// CreateBanner handles POST /admin/banners
// @Summary Create a banner (Admin only)
// @Tags Banners
// @Accept json
// @Produce json
// @Param banner body CreateBannerRequest true "Banner payload"
// @Success 201 {object} Banner
// @Failure 400 {object} gin.H
// @Router /api/v1/admin/banners [post]
func (h *Handler) CreateBanner(c *gin.Context) {
	var req CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	b, err := h.service.Create(&req, c.GetUint("user_id"), c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrInvalidPlacement) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Unknown placement"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to create banner"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"banner": b})
}

// UpdateBanner handles PUT /admin/banners/:id
// @Summary Update a banner (Admin only)
// @Tags Banners
// @Accept json
// @Produce json
// @Param id path uint true "Banner ID"
// @Param banner body UpdateBannerRequest true "Banner payload"
// @Success 200 {object} Banner
// @Failure 404 {object} gin.H
// @Router /api/v1/admin/banners/{id} [put]
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid banner ID"})
		return
	}

	var req UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	b, err := h.service.Update(uint(id), &req, c.GetUint("user_id"), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Banner not found"})
		case errors.Is(err, ErrInvalidPlacement):
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Unknown placement"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to update banner"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"banner": b})
}

// DeleteBanner handles DELETE /admin/banners/:id
// @Summary Delete a banner (Admin only)
// @Tags Banners
// @Produce json
// @Param id path uint true "Banner ID"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/admin/banners/{id} [delete]
func (h *Handler) DeleteBanner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid banner ID"})
		return
	}

	if err := h.service.Delete(uint(id), c.GetUint("user_id"), c.ClientIP()); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to delete banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
}
