package banner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hawrami/events-iraq-backend/internal/banner"
)

type fakeBannerRepo struct {
	banners map[uint]*banner.Banner
	nextID  uint
}

func newFakeBannerRepo() *fakeBannerRepo {
	return &fakeBannerRepo{banners: map[uint]*banner.Banner{}, nextID: 1}
}

func (r *fakeBannerRepo) Create(b *banner.Banner) error {
	b.ID = r.nextID
	r.nextID++
	copied := *b
	r.banners[b.ID] = &copied
	return nil
}

func (r *fakeBannerRepo) Update(b *banner.Banner) error {
	copied := *b
	r.banners[b.ID] = &copied
	return nil
}

func (r *fakeBannerRepo) Delete(id uint) error {
	delete(r.banners, id)
	return nil
}

func (r *fakeBannerRepo) FindByID(id uint) (*banner.Banner, error) {
	b, ok := r.banners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBannerRepo) active(b *banner.Banner, now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && b.StartsAt.After(now) {
		return false
	}
	if b.EndsAt != nil && b.EndsAt.Before(now) {
		return false
	}
	return true
}

func (r *fakeBannerRepo) FindActiveForCity(cityID uint, placement string, now time.Time) ([]banner.Banner, error) {
	var out []banner.Banner
	for _, b := range r.banners {
		if b.CityID == nil || *b.CityID != cityID || !r.active(b, now) {
			continue
		}
		if placement != "" && b.Placement != placement {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBannerRepo) FindActiveCitywide(placement string, now time.Time) ([]banner.Banner, error) {
	var out []banner.Banner
	for _, b := range r.banners {
		if b.CityID != nil || !r.active(b, now) {
			continue
		}
		if placement != "" && b.Placement != placement {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBannerRepo) ListAll() ([]banner.Banner, error) {
	var out []banner.Banner
	for _, b := range r.banners {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBannerRepo) IncrementClicks(id uint) (int64, error) {
	b, ok := r.banners[id]
	if !ok {
		return 0, nil
	}
	b.Clicks++
	return 1, nil
}

func (r *fakeBannerRepo) IncrementViews(id uint) (int64, error) {
	b, ok := r.banners[id]
	if !ok {
		return 0, nil
	}
	b.Views++
	return 1, nil
}

func uintPtr(v uint) *uint { return &v }

func seedBanner(repo *fakeBannerRepo, cityID *uint, active bool) uint {
	b := &banner.Banner{
		ImageURL:  "https://cdn.example.com/banner.png",
		Placement: banner.PlacementHome,
		CityID:    cityID,
		IsActive:  active,
	}
	_ = repo.Create(b)
	return b.ID
}

func TestGetBannersPrefersCityRows(t *testing.T) {
	repo := newFakeBannerRepo()
	svc := banner.NewService(repo, nil)

	cityBanner := seedBanner(repo, uintPtr(1), true)
	seedBanner(repo, nil, true) // citywide

	banners, err := svc.GetBanners(uintPtr(1), "")
	require.NoError(t, err)
	require.Len(t, banners, 1)
	require.Equal(t, cityBanner, banners[0].ID)
}

func TestGetBannersFallsBackToCitywide(t *testing.T) {
	repo := newFakeBannerRepo()
	svc := banner.NewService(repo, nil)

	citywide := seedBanner(repo, nil, true)
	seedBanner(repo, uintPtr(2), true) // different city

	// city 7 has no banners of its own
	banners, err := svc.GetBanners(uintPtr(7), "")
	require.NoError(t, err)
	require.Len(t, banners, 1)
	require.Equal(t, citywide, banners[0].ID)
}

func TestGetBannersSkipsInactive(t *testing.T) {
	repo := newFakeBannerRepo()
	svc := banner.NewService(repo, nil)

	seedBanner(repo, uintPtr(1), false)
	citywide := seedBanner(repo, nil, true)

	banners, err := svc.GetBanners(uintPtr(1), "")
	require.NoError(t, err)
	require.Len(t, banners, 1)
	require.Equal(t, citywide, banners[0].ID)
}

func TestGetBannersRejectsUnknownPlacement(t *testing.T) {
	svc := banner.NewService(newFakeBannerRepo(), nil)

	_, err := svc.GetBanners(nil, "sidebar")
	require.ErrorIs(t, err, banner.ErrInvalidPlacement)
}

func TestGetBannersHonorsScheduleWindow(t *testing.T) {
	repo := newFakeBannerRepo()
	svc := banner.NewService(repo, nil)

	future := time.Now().Add(48 * time.Hour)
	expired := time.Now().Add(-time.Hour)

	scheduled := &banner.Banner{Placement: banner.PlacementHome, IsActive: true, StartsAt: &future}
	require.NoError(t, repo.Create(scheduled))
	ended := &banner.Banner{Placement: banner.PlacementHome, IsActive: true, EndsAt: &expired}
	require.NoError(t, repo.Create(ended))

	banners, err := svc.GetBanners(nil, banner.PlacementHome)
	require.NoError(t, err)
	require.Empty(t, banners)
}

func TestCreateUpdateDelete(t *testing.T) {
	repo := newFakeBannerRepo()
	svc := banner.NewService(repo, nil)

	created, err := svc.Create(&banner.CreateBannerRequest{
		ImageURL:  "https://cdn.example.com/a.png",
		Placement: banner.PlacementEventList,
	}, 1, "127.0.0.1")
	require.NoError(t, err)
	require.True(t, created.IsActive)
	require.Equal(t, banner.PlacementEventList, created.Placement)

	inactive := false
	updated, err := svc.Update(created.ID, &banner.UpdateBannerRequest{
		ImageURL: "https://cdn.example.com/b.png",
		IsActive: &inactive,
	}, 1, "127.0.0.1")
	require.NoError(t, err)
	require.False(t, updated.IsActive)
	require.Equal(t, "https://cdn.example.com/b.png", updated.ImageURL)
	// omitted placement keeps the existing value
	require.Equal(t, banner.PlacementEventList, updated.Placement)

	require.NoError(t, svc.Delete(created.ID, 1, "127.0.0.1"))
	require.ErrorIs(t, svc.Delete(created.ID, 1, "127.0.0.1"), banner.ErrNotFound)
}

func TestTrackClickAndView(t *testing.T) {
	repo := newFakeBannerRepo()
	svc := banner.NewService(repo, nil)

	b := &banner.Banner{Placement: banner.PlacementHome, IsActive: true}
	require.NoError(t, repo.Create(b))

	require.NoError(t, svc.TrackView(b.ID))
	require.NoError(t, svc.TrackView(b.ID))
	require.NoError(t, svc.TrackClick(b.ID))

	stored, err := repo.FindByID(b.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stored.Clicks)
	require.EqualValues(t, 2, stored.Views)

	require.ErrorIs(t, svc.TrackClick(999), banner.ErrNotFound)
	require.ErrorIs(t, svc.TrackView(999), banner.ErrNotFound)
}
