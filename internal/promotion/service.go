package promotion

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/hawrami/events-iraq-backend/config"
	"github.com/hawrami/events-iraq-backend/internal/auditlog"
	"github.com/hawrami/events-iraq-backend/internal/event"
	"github.com/hawrami/events-iraq-backend/utils"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrNotEventOwner    = errors.New("only the event creator can promote it")
	ErrEventNotApproved = errors.New("event must be approved before promotion")
	ErrAlreadyPromoted  = errors.New("event is already promoted")
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrOrderNotFound    = errors.New("promotion order not found")
)

type Service interface {
	StartPromotion(ctx context.Context, req StartPromotionRequest, userID uint, ip string) (*StartPromotionResponse, error)
	VerifyAndActivate(ctx context.Context, req VerifyPaymentRequest, ip string) error
	ListMine(ctx context.Context, userID uint) ([]Promotion, error)
}

type service struct {
	repo      Repository
	eventRepo event.Repository
	client    *razorpay.Client
	cfg       *config.Config
	auditSvc  auditlog.Service
}

func NewService(repo Repository, eventRepo event.Repository, cfg *config.Config, auditSvc auditlog.Service) Service {
	client := razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret)
	return &service{
		repo:      repo,
		eventRepo: eventRepo,
		client:    client,
		cfg:       cfg,
		auditSvc:  auditSvc,
	}
}

// StartPromotion creates the payment order and a pending promotion row.
// Only the creator of an approved, not-yet-promoted event can start one.
func (s *service) StartPromotion(ctx context.Context, req StartPromotionRequest, userID uint, ip string) (*StartPromotionResponse, error) {
	e, err := s.eventRepo.FindByID(req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if e.CreatorID != userID {
		return nil, ErrNotEventOwner
	}
	if !e.IsApproved {
		return nil, ErrEventNotApproved
	}
	if e.IsPromoted {
		return nil, ErrAlreadyPromoted
	}

	amount := float64(s.cfg.PromotionPriceIQD)
	receipt := uuid.New().String()

	data := map[string]interface{}{
		"amount":          int(amount),
		"currency":        "IQD",
		"receipt":         receipt,
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"user_id":  userID,
			"event_id": req.EventID,
		},
	}

	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		s.auditSvc.LogAction(ctx, &userID, auditlog.ActionEventPromoted, map[string]interface{}{
			"event_id": req.EventID,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return nil, errors.New("unable to extract order_id from Razorpay response")
	}

	p := &Promotion{
		EventID:   req.EventID,
		UserID:    userID,
		AmountIQD: amount,
		Status:    StatusPending,
		OrderID:   orderID,
		Receipt:   receipt,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create promotion record: %w", err)
	}

	return &StartPromotionResponse{
		OrderID:     orderID,
		Receipt:     receipt,
		Amount:      amount,
		Currency:    "IQD",
		RazorpayKey: s.cfg.RazorpayKey,
	}, nil
}

// VerifyAndActivate checks the payment signature, settles the promotion
// and boosts the event on success. Replayed verifications of an already
// settled order are accepted without side effects.
func (s *service) VerifyAndActivate(ctx context.Context, req VerifyPaymentRequest, ip string) error {
	expected := hmac.New(sha256.New, []byte(s.cfg.RazorpaySecret))
	expected.Write([]byte(req.OrderID + "|" + req.PaymentID))
	computedSignature := hex.EncodeToString(expected.Sum(nil))

	if !hmac.Equal([]byte(computedSignature), []byte(req.RazorpaySig)) {
		s.auditSvc.LogAction(ctx, nil, auditlog.ActionPromotionPaid, map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
			"reason":     "invalid payment signature",
		}, ip, "failure")
		return ErrInvalidSignature
	}

	p, err := s.repo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if p.Status == StatusSuccess {
		return nil // already processed
	}

	payment, err := s.client.Payment.Fetch(req.PaymentID, nil, nil)
	if err != nil {
		return fmt.Errorf("razorpay payment fetch failed: %w", err)
	}

	status, _ := payment["status"].(string)
	method := "UNKNOWN"
	if m, ok := payment["method"].(string); ok {
		method = m
	}

	newStatus := StatusFailed
	var paidAt *time.Time
	auditStatus := "failure"

	if status == "captured" {
		newStatus = StatusSuccess
		now := time.Now()
		paidAt = &now
		auditStatus = "success"
	}

	if err := s.repo.SettlePayment(ctx, req.OrderID, UpdatePaymentDetailsParams{
		Status:    newStatus,
		PaymentID: &req.PaymentID,
		Method:    method,
		PaidAt:    paidAt,
	}); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &p.UserID, auditlog.ActionPromotionPaid, map[string]interface{}{
		"order_id":        req.OrderID,
		"payment_id":      req.PaymentID,
		"event_id":        p.EventID,
		"amount_iqd":      p.AmountIQD,
		"method":          method,
		"razorpay_status": status,
	}, ip, auditStatus)

	if newStatus == StatusSuccess {
		utils.PublishNotification(utils.NotificationEvent{
			UserID:   p.UserID,
			Title:    "Event promoted",
			Message:  "Your event is now promoted and will appear at the top of listings.",
			Category: "event",
		})
	}

	return nil
}

func (s *service) ListMine(ctx context.Context, userID uint) ([]Promotion, error) {
	return s.repo.ListByUser(ctx, userID)
}
