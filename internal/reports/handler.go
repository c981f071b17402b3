package reports

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GenerateReport handles GET /admin/reports/:type
// @Summary Download a platform report (Admin only)
// @Description Exports events, attendance or hosts as csv, excel or pdf
// @Tags Reports
// @Produce octet-stream
// @Param type path string true "Report type (events, attendance, hosts)"
// @Param format query string false "Format (csv, excel, pdf; default csv)"
// @Param city_id query uint false "Filter by city ID"
// @Param from_date query string false "From date (YYYY-MM-DD)"
// @Param to_date query string false "To date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} gin.H
// @Router /api/v1/admin/reports/{type} [get]
func (h *Handler) GenerateReport(c *gin.Context) {
	reportType := c.Param("type")
	switch reportType {
	case ReportTypeEvents, ReportTypeAttendance, ReportTypeHosts:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Unknown report type"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)
	switch format {
	case FormatCSV, FormatExcel, FormatPDF:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Format must be csv, excel or pdf"})
		return
	}

	var filters ReportFilters

	if cityStr := c.Query("city_id"); cityStr != "" {
		cityID, err := strconv.ParseUint(cityStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "city_id must be a number"})
			return
		}
		id := uint(cityID)
		filters.CityID = &id
	}

	if fromStr := c.Query("from_date"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid from_date format. Use YYYY-MM-DD"})
			return
		}
		filters.FromDate = &from
	}

	if toStr := c.Query("to_date"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid to_date format. Use YYYY-MM-DD"})
			return
		}
		endOfDay := to.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		filters.ToDate = &endOfDay
	}

	fileBytes, filename, contentType, err := h.service.GenerateReport(
		c.Request.Context(), reportType, format, filters, c.GetUint("user_id"), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to generate report"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, fileBytes)
}
