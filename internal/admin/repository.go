package admin

import (
	"context"

	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/internal/event"
	"github.com/hawrami/events-iraq-backend/internal/message"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*auth.User, error) {
	var user auth.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("HostProfile").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListHostsByStatus returns the host verification queue for one status
func (r *Repository) ListHostsByStatus(ctx context.Context, status string) ([]HostReviewItem, error) {
	var items []HostReviewItem
	err := r.db.WithContext(ctx).
		Table("users u").
		Select(`
			u.id as user_id, u.name, u.email, u.verification_status,
			hp.business_name, hp.phone, hp.website, hp.business_address,
			hp.organizer_type, hp.updated_at as submitted_at
		`).
		Joins("INNER JOIN host_profiles hp ON hp.user_id = u.id").
		Joins("INNER JOIN user_roles r ON r.id = u.role_id").
		Where("r.role_name = ? AND u.verification_status = ? AND u.deleted_at IS NULL", auth.RoleHost, status).
		Order("hp.updated_at ASC").
		Scan(&items).Error
	return items, err
}

func (r *Repository) SetVerificationStatus(ctx context.Context, userID uint, status string) error {
	return r.db.WithContext(ctx).Model(&auth.User{}).
		Where("id = ?", userID).
		Update("verification_status", status).Error
}

// ListUsers returns a paginated listing with optional role and search filters
func (r *Repository) ListUsers(ctx context.Context, roleFilter, search string, page, limit int) ([]UserListItem, int64, error) {
	query := r.db.WithContext(ctx).
		Table("users u").
		Select(`
			u.id, u.name, u.email, r.role_name as role,
			u.language, u.verification_status, u.created_at
		`).
		Joins("INNER JOIN user_roles r ON r.id = u.role_id").
		Where("u.deleted_at IS NULL")

	if roleFilter != "" {
		query = query.Where("r.role_name = ?", roleFilter)
	}
	if search != "" {
		query = query.Where("u.name ILIKE ? OR u.email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []UserListItem
	offset := (page - 1) * limit
	err := query.Order("u.created_at DESC").Limit(limit).Offset(offset).Scan(&users).Error
	return users, total, err
}

// ListPendingEvents returns submitted events awaiting approval
func (r *Repository) ListPendingEvents(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Category").
		Preload("City").
		Where("is_approved = false").
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *Repository) GetEventByID(ctx context.Context, id uint) (*event.Event, error) {
	var e event.Event
	err := r.db.WithContext(ctx).Preload("Creator").First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) SetEventApproval(ctx context.Context, eventID uint, approved bool) error {
	return r.db.WithContext(ctx).Model(&event.Event{}).
		Where("id = ?", eventID).
		Update("is_approved", approved).Error
}

func (r *Repository) DeleteEvent(ctx context.Context, eventID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&event.Attendance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event.Event{}, eventID).Error
	})
}

// GetPlatformStats aggregates the dashboard counters
func (r *Repository) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	db := r.db.WithContext(ctx)
	stats := &PlatformStats{}

	type counter struct {
		dest  *int64
		query *gorm.DB
	}

	counters := []counter{
		{&stats.TotalUsers, db.Model(&auth.User{})},
		{&stats.TotalAttendees, db.Model(&auth.User{}).
			Joins("INNER JOIN user_roles r ON r.id = users.role_id").
			Where("r.role_name = ?", auth.RoleAttendee)},
		{&stats.TotalHosts, db.Model(&auth.User{}).
			Joins("INNER JOIN user_roles r ON r.id = users.role_id").
			Where("r.role_name = ?", auth.RoleHost)},
		{&stats.PendingHosts, db.Model(&auth.User{}).
			Where("verification_status = ?", auth.VerificationPending)},
		{&stats.TotalEvents, db.Model(&event.Event{})},
		{&stats.ApprovedEvents, db.Model(&event.Event{}).Where("is_approved = true")},
		{&stats.PendingEvents, db.Model(&event.Event{}).Where("is_approved = false")},
		{&stats.PromotedEvents, db.Model(&event.Event{}).Where("is_promoted = true")},
		{&stats.TotalAttendance, db.Model(&event.Attendance{})},
		{&stats.TotalMessages, db.Model(&message.Message{})},
	}

	for _, c := range counters {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}
