package banner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hawrami/events-iraq-backend/internal/auditlog"
	"github.com/hawrami/events-iraq-backend/utils"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("banner not found")
	ErrInvalidPlacement = errors.New("invalid placement")
)

const cacheTTL = 5 * time.Minute

type Service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, auditSvc: auditSvc}
}

func validPlacement(p string) bool {
	switch p {
	case PlacementHome, PlacementEventList, PlacementEventDetail:
		return true
	}
	return false
}

// GetBanners serves the active banners for a city. Cities without their
// own banners fall back to the citywide set; a nil cityID serves the
// citywide set directly.
func (s *Service) GetBanners(cityID *uint, placement string) ([]Banner, error) {
	if placement != "" && !validPlacement(placement) {
		return nil, ErrInvalidPlacement
	}

	cacheKey := fmt.Sprintf("banners:citywide:%s", placement)
	if cityID != nil {
		cacheKey = fmt.Sprintf("banners:city:%d:%s", *cityID, placement)
	}
	if cached, ok := utils.CacheGet(cacheKey); ok {
		var banners []Banner
		if err := json.Unmarshal([]byte(cached), &banners); err == nil {
			return banners, nil
		}
	}

	now := time.Now()
	var banners []Banner
	var err error

	if cityID != nil {
		banners, err = s.repo.FindActiveForCity(*cityID, placement, now)
		if err != nil {
			return nil, err
		}
		if len(banners) == 0 {
			banners, err = s.repo.FindActiveCitywide(placement, now)
		}
	} else {
		banners, err = s.repo.FindActiveCitywide(placement, now)
	}
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(banners); jsonErr == nil {
		utils.CacheSet(cacheKey, string(payload), cacheTTL)
	}

	return banners, nil
}

// TrackClick records one click on a banner. Counters are not cached,
// so the listing cache stays untouched.
func (s *Service) TrackClick(id uint) error {
	rows, err := s.repo.IncrementClicks(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// TrackView records one impression on a banner
func (s *Service) TrackView(id uint) error {
	rows, err := s.repo.IncrementViews(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ===========================
// Admin management

func (s *Service) ListAll() ([]Banner, error) {
	return s.repo.ListAll()
}

func (s *Service) Create(req *CreateBannerRequest, adminID uint, ip string) (*Banner, error) {
	placement := req.Placement
	if placement == "" {
		placement = PlacementHome
	}
	if !validPlacement(placement) {
		return nil, ErrInvalidPlacement
	}

	b := &Banner{
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: placement,
		CityID:    req.CityID,
		SponsorID: req.SponsorID,
		IsActive:  true,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}
	if err := s.repo.Create(b); err != nil {
		return nil, err
	}

	s.invalidateCache()
	s.audit(adminID, auditlog.ActionBannerCreated, map[string]interface{}{"banner_id": b.ID}, ip)

	return s.repo.FindByID(b.ID)
}

func (s *Service) Update(id uint, req *UpdateBannerRequest, adminID uint, ip string) (*Banner, error) {
	b, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	placement := req.Placement
	if placement == "" {
		placement = b.Placement
	}
	if !validPlacement(placement) {
		return nil, ErrInvalidPlacement
	}

	b.ImageURL = req.ImageURL
	b.TargetURL = req.TargetURL
	b.Placement = placement
	b.CityID = req.CityID
	b.SponsorID = req.SponsorID
	b.StartsAt = req.StartsAt
	b.EndsAt = req.EndsAt
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := s.repo.Update(b); err != nil {
		return nil, err
	}

	s.invalidateCache()
	s.audit(adminID, auditlog.ActionBannerUpdated, map[string]interface{}{"banner_id": b.ID}, ip)

	return s.repo.FindByID(b.ID)
}

func (s *Service) Delete(id uint, adminID uint, ip string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.invalidateCache()
	s.audit(adminID, auditlog.ActionBannerDeleted, map[string]interface{}{"banner_id": id}, ip)
	return nil
}

func (s *Service) invalidateCache() {
	utils.CacheInvalidatePrefix("banners:")
}

func (s *Service) audit(adminID uint, action string, details map[string]interface{}, ip string) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.LogAction(context.Background(), &adminID, action, details, ip, "success")
}
