package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hawrami/events-iraq-backend/internal/auditlog"
	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/internal/event"
	"github.com/hawrami/events-iraq-backend/internal/refdata"
)

// fakeRepo keeps events in memory and mimics the repository ordering
// (date ascending for listings).
type fakeRepo struct {
	events    map[uint]*event.Event
	attendees map[uint]map[uint]bool
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:    map[uint]*event.Event{},
		attendees: map[uint]map[uint]bool{},
		nextID:    1,
	}
}

func (r *fakeRepo) Create(e *event.Event) error {
	e.ID = r.nextID
	r.nextID++
	copied := *e
	r.events[e.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(e *event.Event) error {
	copied := *e
	r.events[e.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(id uint) error {
	delete(r.events, id)
	delete(r.attendees, id)
	return nil
}

func (r *fakeRepo) FindByID(id uint) (*event.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeRepo) ListApproved(f event.ListFilters) ([]event.Event, error) {
	var out []event.Event
	for _, e := range r.events {
		if !e.IsApproved {
			continue
		}
		if f.CityID != nil && e.CityID != *f.CityID {
			continue
		}
		if f.CategoryID != nil && e.CategoryID != *f.CategoryID {
			continue
		}
		out = append(out, *e)
	}
	// date ascending, the same ordering the SQL layer applies
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Date.Before(out[i].Date) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByCreator(creatorID uint) ([]event.Event, error) {
	var out []event.Event
	for _, e := range r.events {
		if e.CreatorID == creatorID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeRepo) ToggleAttendance(eventID, userID uint) (bool, error) {
	if r.attendees[eventID] == nil {
		r.attendees[eventID] = map[uint]bool{}
	}
	if r.attendees[eventID][userID] {
		delete(r.attendees[eventID], userID)
		return false, nil
	}
	r.attendees[eventID][userID] = true
	return true, nil
}

func (r *fakeRepo) CountAttendees(eventID uint) (int, error) {
	return len(r.attendees[eventID]), nil
}

func (r *fakeRepo) ListAttendees(eventID uint) ([]auth.User, error) {
	var users []auth.User
	for id := range r.attendees[eventID] {
		users = append(users, auth.User{ID: id})
	}
	return users, nil
}

// fakeRefdata accepts every reference unless told otherwise
type fakeRefdata struct {
	invalid bool
}

func (f *fakeRefdata) GetCities() ([]refdata.City, error)        { return nil, nil }
func (f *fakeRefdata) GetCategories() ([]refdata.Category, error) { return nil, nil }
func (f *fakeRefdata) ValidateEventRefs(_, _ uint) (bool, error) {
	return !f.invalid, nil
}

func verifiedHost(id uint) *auth.User {
	return &auth.User{
		ID:                 id,
		Name:               "Host",
		Role:               auth.UserRole{RoleName: auth.RoleHost},
		VerificationStatus: auth.VerificationApproved,
	}
}

func pendingHost(id uint) *auth.User {
	return &auth.User{
		ID:                 id,
		Name:               "Pending",
		Role:               auth.UserRole{RoleName: auth.RoleHost},
		VerificationStatus: auth.VerificationPending,
	}
}

func attendee(id uint) *auth.User {
	return &auth.User{ID: id, Name: "Visitor", Role: auth.UserRole{RoleName: auth.RoleAttendee}}
}

func admin(id uint) *auth.User {
	return &auth.User{ID: id, Name: "Admin", Role: auth.UserRole{RoleName: auth.RoleAdmin}}
}

func seedEvent(repo *fakeRepo, date time.Time, promoted, approved bool, cityID uint) uint {
	e := &event.Event{
		TitleEn:       "t",
		DescriptionEn: "d",
		Date:          date,
		CreatorID:     1,
		CategoryID:    1,
		CityID:        cityID,
		IsPromoted:    promoted,
		IsApproved:    approved,
	}
	_ = repo.Create(e)
	return e.ID
}

func TestCreateRejectsUnverifiedHost(t *testing.T) {
	repo := newFakeRepo()
	svc := event.NewService(repo, &fakeRefdata{}, nil)

	req := &event.CreateEventRequest{
		Title:           event.LocalizedText{En: "Bazaar"},
		Description:     event.LocalizedText{En: "Local bazaar"},
		Date:            time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		LocationAddress: "Erbil",
		CategoryID:      1,
		CityID:          1,
	}

	_, err := svc.Create(req, pendingHost(5), "127.0.0.1")
	require.ErrorIs(t, err, event.ErrHostNotVerified)
	require.Empty(t, repo.events)
}

func TestCreateFallsBackToEnglish(t *testing.T) {
	repo := newFakeRepo()
	svc := event.NewService(repo, &fakeRefdata{}, nil)

	req := &event.CreateEventRequest{
		Title:           event.LocalizedText{En: "Bazaar", Ar: "بازار"},
		Description:     event.LocalizedText{En: "Local bazaar"},
		Date:            time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		LocationAddress: "Erbil",
		CategoryID:      1,
		CityID:          1,
	}

	resp, err := svc.Create(req, verifiedHost(5), "127.0.0.1")
	require.NoError(t, err)
	require.Equal(t, "بازار", resp.Title.Ar)
	require.Equal(t, "Bazaar", resp.Title.Ku, "missing Kurdish falls back to English")
	require.Equal(t, "Local bazaar", resp.Description.Ar)
	require.False(t, resp.IsApproved, "new events wait for approval")
}

func TestCreateValidation(t *testing.T) {
	repo := newFakeRepo()

	base := event.CreateEventRequest{
		Title:           event.LocalizedText{En: "Bazaar"},
		Description:     event.LocalizedText{En: "Local bazaar"},
		Date:            time.Now().Format(time.RFC3339),
		LocationAddress: "Erbil",
		CategoryID:      1,
		CityID:          1,
	}

	svc := event.NewService(repo, &fakeRefdata{}, nil)

	noEnglish := base
	noEnglish.Title = event.LocalizedText{Ar: "بازار"}
	_, err := svc.Create(&noEnglish, verifiedHost(5), "")
	require.ErrorIs(t, err, event.ErrMissingEnglish)

	badDate := base
	badDate.Date = "31-12-2026"
	_, err = svc.Create(&badDate, verifiedHost(5), "")
	require.ErrorIs(t, err, event.ErrInvalidDate)

	badRefSvc := event.NewService(repo, &fakeRefdata{invalid: true}, nil)
	_, err = badRefSvc.Create(&base, verifiedHost(5), "")
	require.ErrorIs(t, err, event.ErrInvalidReference)
}

func TestListBoostsAtMostTwoPromoted(t *testing.T) {
	repo := newFakeRepo()
	svc := event.NewService(repo, &fakeRefdata{}, nil)

	day := func(n int) time.Time { return time.Date(2026, 10, n, 18, 0, 0, 0, time.UTC) }

	seedEvent(repo, day(1), false, true, 1)
	p1 := seedEvent(repo, day(5), true, true, 1)
	p2 := seedEvent(repo, day(3), true, true, 1)
	p3 := seedEvent(repo, day(2), true, true, 1)
	seedEvent(repo, day(4), false, true, 1)

	result, err := svc.List(event.ListFilters{})
	require.NoError(t, err)
	require.Len(t, result.Events, 5)

	// first two slots are promoted, date ascending
	require.Equal(t, p3, result.Events[0].ID)
	require.Equal(t, p2, result.Events[1].ID)
	require.True(t, result.Events[0].IsPromoted)
	require.True(t, result.Events[1].IsPromoted)

	// the third promoted event competes with the organic rows by date
	require.Equal(t, p1, result.Events[4].ID)
}

func TestListFiltersByCityAndExcludesUnapproved(t *testing.T) {
	repo := newFakeRepo()
	svc := event.NewService(repo, &fakeRefdata{}, nil)

	now := time.Now()
	erbil := seedEvent(repo, now, false, true, 1)
	seedEvent(repo, now, false, true, 2)
	seedEvent(repo, now, false, false, 1) // pending approval

	cityID := uint(1)
	result, err := svc.List(event.ListFilters{CityID: &cityID})
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	require.Equal(t, erbil, result.Events[0].ID)
}

func TestListPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := event.NewService(repo, &fakeRefdata{}, nil)

	for i := 1; i <= 5; i++ {
		seedEvent(repo, time.Date(2026, 10, i, 0, 0, 0, 0, time.UTC), false, true, 1)
	}

	result, err := svc.List(event.ListFilters{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, result.Events, 2)
	require.Equal(t, 5, result.Total)
	require.Equal(t, 3, result.TotalPages)

	// past the end yields an empty page, not an error
	result, err = svc.List(event.ListFilters{Page: 9, Limit: 2})
	require.NoError(t, err)
	require.Empty(t, result.Events)
}

func TestGetHidesUnapprovedFromOthers(t *testing.T) {
	repo := newFakeRepo()
	svc := event.NewService(repo, &fakeRefdata{}, nil)

	id := seedEvent(repo, time.Now(), false, false, 1)

	_, err := svc.Get(id, nil)
	require.ErrorIs(t, err, event.ErrNotFound)

	_, err = svc.Get(id, attendee(42))
	require.ErrorIs(t, err, event.ErrNotFound)

	creator := verifiedHost(1)
	resp, err := svc.Get(id, creator)
	require.NoError(t, err)
	require.Equal(t, id, resp.ID)

	resp, err = svc.Get(id, admin(99))
	require.NoError(t, err)
	require.Equal(t, id, resp.ID)
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := event.NewService(repo, &fakeRefdata{}, nil)

	id := seedEvent(repo, time.Now(), false, true, 1)

	req := &event.UpdateEventRequest{
		Title:           event.LocalizedText{En: "Updated"},
		Description:     event.LocalizedText{En: "Updated"},
		Date:            time.Now().Format(time.RFC3339),
		LocationAddress: "Erbil",
		CategoryID:      1,
		CityID:          1,
	}

	_, err := svc.Update(id, req, verifiedHost(77), "")
	require.ErrorIs(t, err, event.ErrForbidden)

	err = svc.Delete(id, verifiedHost(77), "")
	require.ErrorIs(t, err, event.ErrForbidden)

	// admins can moderate anyone's event
	resp, err := svc.Update(id, req, admin(99), "")
	require.NoError(t, err)
	require.Equal(t, "Updated", resp.Title.En)

	require.NoError(t, svc.Delete(id, admin(99), ""))
	_, err = svc.Get(id, admin(99))
	require.ErrorIs(t, err, event.ErrNotFound)
}

func TestToggleAttendanceRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := event.NewService(repo, &fakeRefdata{}, nil)

	id := seedEvent(repo, time.Now(), false, true, 1)
	user := attendee(42)

	attending, resp, err := svc.ToggleAttendance(id, user)
	require.NoError(t, err)
	require.True(t, attending)
	require.Equal(t, 1, resp.AttendeeCount)

	attending, resp, err = svc.ToggleAttendance(id, user)
	require.NoError(t, err)
	require.False(t, attending)
	require.Equal(t, 0, resp.AttendeeCount)
}

func TestToggleAttendanceRejectsUnapproved(t *testing.T) {
	repo := newFakeRepo()
	svc := event.NewService(repo, &fakeRefdata{}, nil)

	id := seedEvent(repo, time.Now(), false, false, 1)

	_, _, err := svc.ToggleAttendance(id, attendee(42))
	require.ErrorIs(t, err, event.ErrNotFound)
}

// recordingAudit captures the action names passed to the audit trail
type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) LogAction(_ context.Context, _ *uint, action string, _ map[string]interface{}, _ string, _ string) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *recordingAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}

func (a *recordingAudit) GetAuditLogByID(context.Context, uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

func TestLifecycleAuditActions(t *testing.T) {
	repo := newFakeRepo()
	audit := &recordingAudit{}
	svc := event.NewService(repo, &fakeRefdata{}, audit)

	req := &event.CreateEventRequest{
		Title:           event.LocalizedText{En: "Bazaar"},
		Description:     event.LocalizedText{En: "Local bazaar"},
		Date:            time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		LocationAddress: "Erbil",
		CategoryID:      1,
		CityID:          1,
	}

	host := verifiedHost(5)
	created, err := svc.Create(req, host, "127.0.0.1")
	require.NoError(t, err)

	update := &event.UpdateEventRequest{
		Title:           event.LocalizedText{En: "Spring Bazaar"},
		Description:     event.LocalizedText{En: "Local bazaar"},
		Date:            req.Date,
		LocationAddress: "Erbil",
		CategoryID:      1,
		CityID:          1,
	}
	_, err = svc.Update(created.ID, update, host, "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID, host, "127.0.0.1"))

	require.Equal(t, []string{
		auditlog.ActionEventCreated,
		auditlog.ActionEventUpdated,
		auditlog.ActionEventDeleted,
	}, audit.actions)
}
