package refdata

import (
	"gorm.io/gorm"
)

type Repository interface {
	ListCities() ([]City, error)
	ListCategories() ([]Category, error)
	CityExists(id uint) (bool, error)
	CategoryExists(id uint) (bool, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) ListCities() ([]City, error) {
	var cities []City
	err := r.db.Order("id ASC").Find(&cities).Error
	return cities, err
}

func (r *repository) ListCategories() ([]Category, error) {
	var categories []Category
	err := r.db.Preload("Sponsor").Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *repository) CityExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&City{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) CategoryExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
