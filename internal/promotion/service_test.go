package promotion_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hawrami/events-iraq-backend/config"
	"github.com/hawrami/events-iraq-backend/internal/auditlog"
	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/internal/event"
	"github.com/hawrami/events-iraq-backend/internal/promotion"
)

type fakePromoRepo struct {
	promotions map[string]*promotion.Promotion
	settled    []string
}

func newFakePromoRepo() *fakePromoRepo {
	return &fakePromoRepo{promotions: map[string]*promotion.Promotion{}}
}

func (r *fakePromoRepo) Create(_ context.Context, p *promotion.Promotion) error {
	copied := *p
	r.promotions[p.OrderID] = &copied
	return nil
}

func (r *fakePromoRepo) GetByOrderID(_ context.Context, orderID string) (*promotion.Promotion, error) {
	p, ok := r.promotions[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePromoRepo) ListByUser(_ context.Context, userID uint) ([]promotion.Promotion, error) {
	var out []promotion.Promotion
	for _, p := range r.promotions {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePromoRepo) SettlePayment(_ context.Context, orderID string, params promotion.UpdatePaymentDetailsParams) error {
	p, ok := r.promotions[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = params.Status
	p.PaymentID = params.PaymentID
	p.Method = params.Method
	p.PaidAt = params.PaidAt
	r.settled = append(r.settled, orderID)
	return nil
}

type fakeEventRepo struct {
	events map[uint]*event.Event
}

func (r *fakeEventRepo) Create(*event.Event) error { return nil }
func (r *fakeEventRepo) Update(*event.Event) error { return nil }
func (r *fakeEventRepo) Delete(uint) error         { return nil }
func (r *fakeEventRepo) FindByID(id uint) (*event.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}
func (r *fakeEventRepo) ListApproved(event.ListFilters) ([]event.Event, error) { return nil, nil }
func (r *fakeEventRepo) ListByCreator(uint) ([]event.Event, error)             { return nil, nil }
func (r *fakeEventRepo) ToggleAttendance(uint, uint) (bool, error)             { return false, nil }
func (r *fakeEventRepo) CountAttendees(uint) (int, error)                      { return 0, nil }
func (r *fakeEventRepo) ListAttendees(uint) ([]auth.User, error)               { return nil, nil }

type noopAuditSvc struct{}

func (noopAuditSvc) LogAction(context.Context, *uint, string, map[string]interface{}, string, string) error {
	return nil
}
func (noopAuditSvc) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}
func (noopAuditSvc) GetAuditLogByID(context.Context, uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

func auditStub() auditlog.Service { return noopAuditSvc{} }

func promoConfig() *config.Config {
	return &config.Config{
		RazorpayKey:       "rzp_test_key",
		RazorpaySecret:    "rzp_test_secret",
		PromotionPriceIQD: 25000,
	}
}

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestStartPromotionGuards(t *testing.T) {
	events := &fakeEventRepo{events: map[uint]*event.Event{
		1: {ID: 1, CreatorID: 10, IsApproved: true},
		2: {ID: 2, CreatorID: 10, IsApproved: false},
		3: {ID: 3, CreatorID: 10, IsApproved: true, IsPromoted: true},
	}}
	svc := promotion.NewService(newFakePromoRepo(), events, promoConfig(), auditStub())
	ctx := context.Background()

	_, err := svc.StartPromotion(ctx, promotion.StartPromotionRequest{EventID: 99}, 10, "")
	require.ErrorIs(t, err, promotion.ErrEventNotFound)

	_, err = svc.StartPromotion(ctx, promotion.StartPromotionRequest{EventID: 1}, 77, "")
	require.ErrorIs(t, err, promotion.ErrNotEventOwner)

	_, err = svc.StartPromotion(ctx, promotion.StartPromotionRequest{EventID: 2}, 10, "")
	require.ErrorIs(t, err, promotion.ErrEventNotApproved)

	_, err = svc.StartPromotion(ctx, promotion.StartPromotionRequest{EventID: 3}, 10, "")
	require.ErrorIs(t, err, promotion.ErrAlreadyPromoted)
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	repo := newFakePromoRepo()
	events := &fakeEventRepo{events: map[uint]*event.Event{}}
	svc := promotion.NewService(repo, events, promoConfig(), auditStub())

	err := svc.VerifyAndActivate(context.Background(), promotion.VerifyPaymentRequest{
		OrderID:     "order_123",
		PaymentID:   "pay_123",
		RazorpaySig: "forged",
	}, "")
	require.ErrorIs(t, err, promotion.ErrInvalidSignature)
	require.Empty(t, repo.settled)
}

func TestVerifyUnknownOrder(t *testing.T) {
	repo := newFakePromoRepo()
	svc := promotion.NewService(repo, &fakeEventRepo{events: map[uint]*event.Event{}}, promoConfig(), auditStub())

	err := svc.VerifyAndActivate(context.Background(), promotion.VerifyPaymentRequest{
		OrderID:     "order_unknown",
		PaymentID:   "pay_123",
		RazorpaySig: signPayload("rzp_test_secret", "order_unknown", "pay_123"),
	}, "")
	require.ErrorIs(t, err, promotion.ErrOrderNotFound)
}

func TestVerifyReplayOfSettledOrderIsIdempotent(t *testing.T) {
	repo := newFakePromoRepo()
	now := time.Now()
	require.NoError(t, repo.Create(context.Background(), &promotion.Promotion{
		EventID: 1, UserID: 10, AmountIQD: 25000,
		Status: promotion.StatusSuccess, OrderID: "order_123", PaidAt: &now,
	}))

	svc := promotion.NewService(repo, &fakeEventRepo{events: map[uint]*event.Event{}}, promoConfig(), auditStub())

	err := svc.VerifyAndActivate(context.Background(), promotion.VerifyPaymentRequest{
		OrderID:     "order_123",
		PaymentID:   "pay_123",
		RazorpaySig: signPayload("rzp_test_secret", "order_123", "pay_123"),
	}, "")
	require.NoError(t, err)
	require.Empty(t, repo.settled, "replay must not settle again")
}

func TestListMine(t *testing.T) {
	repo := newFakePromoRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &promotion.Promotion{OrderID: "a", UserID: 10}))
	require.NoError(t, repo.Create(ctx, &promotion.Promotion{OrderID: "b", UserID: 20}))

	svc := promotion.NewService(repo, &fakeEventRepo{events: map[uint]*event.Event{}}, promoConfig(), auditStub())

	mine, err := svc.ListMine(ctx, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "a", mine[0].OrderID)
}
