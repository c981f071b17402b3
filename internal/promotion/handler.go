package promotion

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// StartPromotion handles POST /promotions
// @Summary Start a paid promotion for an event
// @Description Creates a payment order for boosting the event. Only the creator of an approved event may promote it.
// @Tags Promotions
// @Accept json
// @Produce json
// @Param promotion body StartPromotionRequest true "Promotion payload"
// @Success 201 {object} StartPromotionResponse
// @Failure 400 {object} gin.H
// @Failure 403 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/promotions [post]
func (h *Handler) StartPromotion(c *gin.Context) {
	var req StartPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	resp, err := h.service.StartPromotion(c.Request.Context(), req, c.GetUint("user_id"), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Event not found"})
		case errors.Is(err, ErrNotEventOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Only the event creator can promote it"})
		case errors.Is(err, ErrEventNotApproved):
			c.JSON(http.StatusBadRequest, gin.H{"error": "not_approved", "message": "The event must be approved before promotion"})
		case errors.Is(err, ErrAlreadyPromoted):
			c.JSON(http.StatusConflict, gin.H{"error": "already_promoted", "message": "The event is already promoted"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to start promotion"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// VerifyPayment handles POST /promotions/verify
// @Summary Verify a promotion payment
// @Description Verifies the checkout signature and activates the promotion on captured payments
// @Tags Promotions
// @Accept json
// @Produce json
// @Param payment body VerifyPaymentRequest true "Checkout result payload"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /api/v1/promotions/verify [post]
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	if err := h.service.VerifyAndActivate(c.Request.Context(), req, c.ClientIP()); err != nil {
		switch {
		case errors.Is(err, ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_signature", "message": "Payment signature verification failed"})
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Promotion order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to verify payment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment verified"})
}

// ListMyPromotions handles GET /promotions/mine
// @Summary List my promotion purchases
// @Tags Promotions
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/promotions/mine [get]
func (h *Handler) ListMyPromotions(c *gin.Context) {
	rows, err := h.service.ListMine(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to list promotions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotions": rows})
}
