package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetEventRows(ctx context.Context, filters ReportFilters) ([]EventReportRow, error)
	GetAttendanceRows(ctx context.Context, filters ReportFilters) ([]AttendanceReportRow, error)
	GetHostRows(ctx context.Context, filters ReportFilters) ([]HostReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEventRows(ctx context.Context, filters ReportFilters) ([]EventReportRow, error) {
	var rows []EventReportRow

	query := r.db.WithContext(ctx).
		Table("events e").
		Select(`
			e.id, e.title_en as title, e.date, c.name_en as city,
			cat.name_en as category, u.name as creator_name, u.email as creator_email,
			(SELECT COUNT(*) FROM event_attendees ea WHERE ea.event_id = e.id) as attendee_count,
			e.is_promoted, e.is_approved, e.created_at
		`).
		Joins("INNER JOIN cities c ON c.id = e.city_id").
		Joins("INNER JOIN categories cat ON cat.id = e.category_id").
		Joins("INNER JOIN users u ON u.id = e.creator_id").
		Where("e.deleted_at IS NULL")

	if filters.CityID != nil {
		query = query.Where("e.city_id = ?", *filters.CityID)
	}
	if filters.FromDate != nil {
		query = query.Where("e.date >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("e.date <= ?", *filters.ToDate)
	}

	err := query.Order("e.date ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) GetAttendanceRows(ctx context.Context, filters ReportFilters) ([]AttendanceReportRow, error) {
	var rows []AttendanceReportRow

	query := r.db.WithContext(ctx).
		Table("event_attendees ea").
		Select(`
			e.id as event_id, e.title_en as event_title, e.date as event_date,
			c.name_en as city, u.name as attendee_name, u.email as attendee_email,
			ea.created_at as joined_at
		`).
		Joins("INNER JOIN events e ON e.id = ea.event_id").
		Joins("INNER JOIN cities c ON c.id = e.city_id").
		Joins("INNER JOIN users u ON u.id = ea.user_id").
		Where("e.deleted_at IS NULL")

	if filters.CityID != nil {
		query = query.Where("e.city_id = ?", *filters.CityID)
	}
	if filters.FromDate != nil {
		query = query.Where("e.date >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("e.date <= ?", *filters.ToDate)
	}

	err := query.Order("e.date ASC, ea.created_at ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) GetHostRows(ctx context.Context, filters ReportFilters) ([]HostReportRow, error) {
	var rows []HostReportRow

	query := r.db.WithContext(ctx).
		Table("users u").
		Select(`
			u.id as user_id, u.name, u.email, hp.business_name,
			hp.organizer_type, u.verification_status,
			(SELECT COUNT(*) FROM events e WHERE e.creator_id = u.id AND e.deleted_at IS NULL) as event_count,
			u.created_at as registered_at
		`).
		Joins("INNER JOIN user_roles r ON r.id = u.role_id").
		Joins("LEFT JOIN host_profiles hp ON hp.user_id = u.id").
		Where("r.role_name = 'host' AND u.deleted_at IS NULL")

	if filters.FromDate != nil {
		query = query.Where("u.created_at >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("u.created_at <= ?", *filters.ToDate)
	}

	err := query.Order("u.created_at ASC").Scan(&rows).Error
	return rows, err
}
