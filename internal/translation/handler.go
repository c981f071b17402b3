package translation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetTranslations handles GET /translations/:lang
// @Summary Get the UI dictionary for a language
// @Description Flat key→value map of interface strings for en, ar or ku
// @Tags Translations
// @Produce json
// @Param lang path string true "Language code (en, ar, ku)"
// @Success 200 {object} map[string]string
// @Failure 404 {object} gin.H
// @Router /api/v1/translations/{lang} [get]
func (h *Handler) GetTranslations(c *gin.Context) {
	dict, err := h.service.GetTranslations(c.Param("lang"))
	if err != nil {
		if errors.Is(err, ErrUnknownLang) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Unsupported language"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to load translations"})
		return
	}

	c.JSON(http.StatusOK, dict)
}

// UpsertTranslation handles PUT /admin/translations
// @Summary Create or update a UI string (Admin only)
// @Tags Translations
// @Accept json
// @Produce json
// @Param translation body UpsertTranslationRequest true "Translation payload"
// @Success 200 {object} Translation
// @Failure 400 {object} gin.H
// @Router /api/v1/admin/translations [put]
func (h *Handler) UpsertTranslation(c *gin.Context) {
	var req UpsertTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	t, err := h.service.Upsert(&req)
	if err != nil {
		if errors.Is(err, ErrUnknownLang) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "lang must be en, ar or ku"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to save translation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"translation": t})
}
