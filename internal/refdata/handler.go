package refdata

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

func (h *Handler) GetCities(c *gin.Context) {
	cities, err := h.service.GetCities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to load cities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cities})
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.service.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}
