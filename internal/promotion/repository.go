package promotion

import (
	"context"

	"github.com/hawrami/events-iraq-backend/internal/event"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Promotion) error
	GetByOrderID(ctx context.Context, orderID string) (*Promotion, error)
	ListByUser(ctx context.Context, userID uint) ([]Promotion, error)
	SettlePayment(ctx context.Context, orderID string, params UpdatePaymentDetailsParams) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Promotion) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Promotion, error) {
	var p Promotion
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Promotion, error) {
	var rows []Promotion
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// SettlePayment records the payment outcome and, on success, flips the
// event's promoted flag in the same transaction
func (r *repository) SettlePayment(ctx context.Context, orderID string, params UpdatePaymentDetailsParams) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Promotion
		if err := tx.Where("order_id = ?", orderID).First(&p).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":     params.Status,
			"payment_id": params.PaymentID,
			"method":     params.Method,
			"paid_at":    params.PaidAt,
		}
		if err := tx.Model(&Promotion{}).Where("order_id = ?", orderID).Updates(updates).Error; err != nil {
			return err
		}

		if params.Status == StatusSuccess {
			if err := tx.Model(&event.Event{}).
				Where("id = ?", p.EventID).
				Update("is_promoted", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
