package refdata

import (
	"encoding/json"
	"time"

	"github.com/hawrami/events-iraq-backend/utils"
)

const (
	citiesCacheKey     = "refdata:cities"
	categoriesCacheKey = "refdata:categories"
	cacheTTL           = 10 * time.Minute
)

type Service interface {
	GetCities() ([]City, error)
	GetCategories() ([]Category, error)
	ValidateEventRefs(categoryID, cityID uint) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCities serves the city list from redis, falling back to the DB
func (s *service) GetCities() ([]City, error) {
	if cached, ok := utils.CacheGet(citiesCacheKey); ok {
		var cities []City
		if err := json.Unmarshal([]byte(cached), &cities); err == nil {
			return cities, nil
		}
	}

	cities, err := s.repo.ListCities()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(cities); err == nil {
		utils.CacheSet(citiesCacheKey, string(payload), cacheTTL)
	}
	return cities, nil
}

func (s *service) GetCategories() ([]Category, error) {
	if cached, ok := utils.CacheGet(categoriesCacheKey); ok {
		var categories []Category
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.repo.ListCategories()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		utils.CacheSet(categoriesCacheKey, string(payload), cacheTTL)
	}
	return categories, nil
}

// ValidateEventRefs confirms both foreign keys point at existing rows
func (s *service) ValidateEventRefs(categoryID, cityID uint) (bool, error) {
	ok, err := s.repo.CategoryExists(categoryID)
	if err != nil || !ok {
		return false, err
	}
	return s.repo.CityExists(cityID)
}
