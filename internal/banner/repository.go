package banner

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(b *Banner) error
	Update(b *Banner) error
	Delete(id uint) error
	FindByID(id uint) (*Banner, error)
	FindActiveForCity(cityID uint, placement string, now time.Time) ([]Banner, error)
	FindActiveCitywide(placement string, now time.Time) ([]Banner, error)
	ListAll() ([]Banner, error)
	IncrementClicks(id uint) (int64, error)
	IncrementViews(id uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(b *Banner) error {
	return r.db.Create(b).Error
}

func (r *repository) Update(b *Banner) error {
	return r.db.Save(b).Error
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&Banner{}, id).Error
}

func (r *repository) FindByID(id uint) (*Banner, error) {
	var b Banner
	err := r.db.Preload("City").Preload("Sponsor").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func activeWindow(q *gorm.DB, now time.Time) *gorm.DB {
	return q.Where("is_active = true").
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now)
}

func (r *repository) FindActiveForCity(cityID uint, placement string, now time.Time) ([]Banner, error) {
	var banners []Banner
	q := r.db.Preload("Sponsor").Where("city_id = ?", cityID)
	if placement != "" {
		q = q.Where("placement = ?", placement)
	}
	err := activeWindow(q, now).Order("created_at DESC").Find(&banners).Error
	return banners, err
}

func (r *repository) FindActiveCitywide(placement string, now time.Time) ([]Banner, error) {
	var banners []Banner
	q := r.db.Preload("Sponsor").Where("city_id IS NULL")
	if placement != "" {
		q = q.Where("placement = ?", placement)
	}
	err := activeWindow(q, now).Order("created_at DESC").Find(&banners).Error
	return banners, err
}

// IncrementClicks bumps the click counter atomically, returning the
// number of rows touched so callers can detect unknown IDs
func (r *repository) IncrementClicks(id uint) (int64, error) {
	res := r.db.Model(&Banner{}).Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + 1"))
	return res.RowsAffected, res.Error
}

func (r *repository) IncrementViews(id uint) (int64, error) {
	res := r.db.Model(&Banner{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	return res.RowsAffected, res.Error
}

func (r *repository) ListAll() ([]Banner, error) {
	var banners []Banner
	err := r.db.Preload("City").Preload("Sponsor").Order("created_at DESC").Find(&banners).Error
	return banners, err
}
