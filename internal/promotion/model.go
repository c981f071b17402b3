package promotion

import (
	"time"
)

// Promotion payment lifecycle
const (
	StatusPending = "PENDING"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Promotion represents the promotions table: one paid boost for one
// event. A successful payment flips the event's promoted flag.
type Promotion struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   uint       `gorm:"not null;index" json:"event_id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	AmountIQD float64    `gorm:"not null" json:"amount_iqd"`
	Status    string     `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	OrderID   string     `gorm:"size:100;not null;uniqueIndex" json:"order_id"`
	PaymentID *string    `gorm:"size:100" json:"payment_id,omitempty"`
	Method    string     `gorm:"size:30" json:"method"`
	Receipt   string     `gorm:"size:64;not null" json:"receipt"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Promotion) TableName() string {
	return "promotions"
}

// StartPromotionRequest is the payload for POST /promotions
type StartPromotionRequest struct {
	EventID uint `json:"event_id" binding:"required"`
}

// StartPromotionResponse carries what the client needs to open checkout
type StartPromotionResponse struct {
	OrderID     string  `json:"order_id"`
	Receipt     string  `json:"receipt"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	RazorpayKey string  `json:"razorpay_key"`
}

// VerifyPaymentRequest is the payload for POST /promotions/verify
type VerifyPaymentRequest struct {
	OrderID     string `json:"razorpay_order_id" binding:"required"`
	PaymentID   string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySig string `json:"razorpay_signature" binding:"required"`
}

// UpdatePaymentDetailsParams carries the post-verification settlement
type UpdatePaymentDetailsParams struct {
	Status    string
	PaymentID *string
	Method    string
	PaidAt    *time.Time
}
