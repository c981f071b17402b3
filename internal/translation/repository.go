package translation

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetByLang(lang string) ([]Translation, error)
	Upsert(t *Translation) error
	Count() (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByLang(lang string) ([]Translation, error) {
	var rows []Translation
	err := r.db.Where("lang = ?", lang).Order("key ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) Upsert(t *Translation) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}, {Name: "lang"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(t).Error
}

func (r *repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&Translation{}).Count(&count).Error
	return count, err
}
