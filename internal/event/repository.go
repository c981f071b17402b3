package event

import (
	"errors"

	"github.com/hawrami/events-iraq-backend/internal/auth"
	"gorm.io/gorm"
)

type Repository interface {
	Create(e *Event) error
	Update(e *Event) error
	Delete(id uint) error
	FindByID(id uint) (*Event, error)
	ListApproved(f ListFilters) ([]Event, error)
	ListByCreator(creatorID uint) ([]Event, error)

	ToggleAttendance(eventID, userID uint) (bool, error)
	CountAttendees(eventID uint) (int, error)
	ListAttendees(eventID uint) ([]auth.User, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(e *Event) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(e).Error
	})
}

func (r *repository) Update(e *Event) error {
	return r.db.Save(e).Error
}

func (r *repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&Attendance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, id).Error
	})
}

func (r *repository) FindByID(id uint) (*Event, error) {
	var e Event
	err := r.db.
		Preload("Creator.Role").
		Preload("Category.Sponsor").
		Preload("City").
		First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListApproved returns the full filtered set ordered by date ascending.
// The promoted boost reorders across rows, so pagination is applied by
// the service after the merge, not here.
func (r *repository) ListApproved(f ListFilters) ([]Event, error) {
	var events []Event

	query := r.db.
		Preload("Creator.Role").
		Preload("Category.Sponsor").
		Preload("City").
		Where("is_approved = ?", true)

	if f.CityID != nil {
		query = query.Where("city_id = ?", *f.CityID)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		ilike := "%" + f.Search + "%"
		query = query.Where("title_en ILIKE ? OR title_ar ILIKE ? OR title_ku ILIKE ?", ilike, ilike, ilike)
	}

	err := query.Order("date ASC").Find(&events).Error
	return events, err
}

func (r *repository) ListByCreator(creatorID uint) ([]Event, error) {
	var events []Event
	err := r.db.
		Preload("Creator.Role").
		Preload("Category.Sponsor").
		Preload("City").
		Where("creator_id = ?", creatorID).
		Order("date ASC").
		Find(&events).Error
	return events, err
}

// ToggleAttendance flips the membership row inside one transaction and
// reports the resulting state. Running it twice restores the original
// membership.
func (r *repository) ToggleAttendance(eventID, userID uint) (bool, error) {
	var attending bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing Attendance
		err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			attending = true
			return tx.Create(&Attendance{EventID: eventID, UserID: userID}).Error
		}
		if err != nil {
			return err
		}

		attending = false
		return tx.Delete(&existing).Error
	})

	return attending, err
}

func (r *repository) CountAttendees(eventID uint) (int, error) {
	var count int64
	err := r.db.Model(&Attendance{}).Where("event_id = ?", eventID).Count(&count).Error
	return int(count), err
}

func (r *repository) ListAttendees(eventID uint) ([]auth.User, error) {
	var users []auth.User
	err := r.db.
		Joins("JOIN event_attendees ON event_attendees.user_id = users.id").
		Where("event_attendees.event_id = ?", eventID).
		Order("event_attendees.created_at ASC").
		Find(&users).Error
	return users, err
}
