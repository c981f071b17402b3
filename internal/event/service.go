package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hawrami/events-iraq-backend/internal/auditlog"
	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/internal/refdata"
	"github.com/hawrami/events-iraq-backend/utils"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("event not found")
	ErrHostNotVerified  = errors.New("host account is not verified")
	ErrForbidden        = errors.New("not allowed to modify this event")
	ErrInvalidReference = errors.New("unknown category or city")
	ErrInvalidDate      = errors.New("invalid date format, use RFC 3339")
	ErrMissingEnglish   = errors.New("english title and description are required")
)

// promotedSlotCount caps how many promoted events are boosted to the
// front of a listing page
const promotedSlotCount = 2

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type Service struct {
	repo     Repository
	refSvc   refdata.Service
	auditSvc auditlog.Service
}

func NewService(repo Repository, refSvc refdata.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		repo:     repo,
		refSvc:   refSvc,
		auditSvc: auditSvc,
	}
}

// ===========================
// Listing

// List applies the conjunctive filters, boosts up to promotedSlotCount
// promoted events to the front (date ascending), sorts the rest by date
// ascending and pages the merged result.
func (s *Service) List(f ListFilters) (*ListResult, error) {
	events, err := s.repo.ListApproved(f)
	if err != nil {
		return nil, err
	}

	var promoted, organic []Event
	for _, e := range events {
		if e.IsPromoted && len(promoted) < promotedSlotCount {
			promoted = append(promoted, e)
		} else {
			organic = append(organic, e)
		}
	}
	merged := append(promoted, organic...)

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	total := len(merged)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageEvents := merged[start:end]
	responses := make([]EventResponse, 0, len(pageEvents))
	for i := range pageEvents {
		resp := pageEvents[i].toResponse()
		count, _ := s.repo.CountAttendees(pageEvents[i].ID)
		resp.AttendeeCount = count
		responses = append(responses, resp)
	}

	return &ListResult{
		Events:     responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// ===========================
// Detail

// Get joins creator, category, city and the attendee list. Unapproved
// events are only visible to their creator and admins.
func (s *Service) Get(id uint, viewer *auth.User) (*EventResponse, error) {
	e, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !e.IsApproved {
		if viewer == nil || (viewer.ID != e.CreatorID && viewer.Role.RoleName != auth.RoleAdmin) {
			return nil, ErrNotFound
		}
	}

	resp := e.toResponse()

	attendees, err := s.repo.ListAttendees(e.ID)
	if err != nil {
		return nil, err
	}
	resp.Attendees = make([]UserSummary, 0, len(attendees))
	for i := range attendees {
		resp.Attendees = append(resp.Attendees, newUserSummary(&attendees[i]))
	}
	resp.AttendeeCount = len(attendees)

	return &resp, nil
}

// ===========================
// Create

// Create validates the language tiers (English mandatory, Arabic and
// Kurdish fall back to English), checks the reference rows and rejects
// unverified hosts. New events await admin approval.
func (s *Service) Create(req *CreateEventRequest, actingUser *auth.User, ip string) (*EventResponse, error) {
	if actingUser.Role.RoleName == auth.RoleHost && !actingUser.IsVerifiedHost() {
		s.audit(actingUser.ID, auditlog.ActionEventCreated, map[string]interface{}{
			"title": req.Title.En,
			"error": "host not verified",
		}, ip, "failure")
		return nil, ErrHostNotVerified
	}

	if req.Title.En == "" || req.Description.En == "" {
		return nil, ErrMissingEnglish
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	ok, err := s.refSvc.ValidateEventRefs(req.CategoryID, req.CityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidReference
	}

	e := &Event{
		TitleEn:         req.Title.En,
		TitleAr:         fallback(req.Title.Ar, req.Title.En),
		TitleKu:         fallback(req.Title.Ku, req.Title.En),
		DescriptionEn:   req.Description.En,
		DescriptionAr:   fallback(req.Description.Ar, req.Description.En),
		DescriptionKu:   fallback(req.Description.Ku, req.Description.En),
		Date:            date,
		LocationAddress: req.LocationAddress,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		ImageURL:        req.ImageURL,
		CreatorID:       actingUser.ID,
		CategoryID:      req.CategoryID,
		CityID:          req.CityID,
		IsPromoted:      false,
		IsApproved:      false,
	}

	if err := s.repo.Create(e); err != nil {
		s.audit(actingUser.ID, auditlog.ActionEventCreated, map[string]interface{}{
			"title": req.Title.En,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(actingUser.ID, auditlog.ActionEventCreated, map[string]interface{}{
		"event_id": e.ID,
		"title":    e.TitleEn,
		"city_id":  e.CityID,
	}, ip, "success")

	created, err := s.repo.FindByID(e.ID)
	if err != nil {
		return nil, err
	}
	resp := created.toResponse()
	return &resp, nil
}

// ===========================
// Update / Delete

func (s *Service) Update(id uint, req *UpdateEventRequest, actingUser *auth.User, ip string) (*EventResponse, error) {
	e, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if e.CreatorID != actingUser.ID && actingUser.Role.RoleName != auth.RoleAdmin {
		return nil, ErrForbidden
	}

	if req.Title.En == "" || req.Description.En == "" {
		return nil, ErrMissingEnglish
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	ok, err := s.refSvc.ValidateEventRefs(req.CategoryID, req.CityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidReference
	}

	e.TitleEn = req.Title.En
	e.TitleAr = fallback(req.Title.Ar, req.Title.En)
	e.TitleKu = fallback(req.Title.Ku, req.Title.En)
	e.DescriptionEn = req.Description.En
	e.DescriptionAr = fallback(req.Description.Ar, req.Description.En)
	e.DescriptionKu = fallback(req.Description.Ku, req.Description.En)
	e.Date = date
	e.LocationAddress = req.LocationAddress
	e.LocationLat = req.LocationLat
	e.LocationLng = req.LocationLng
	e.ImageURL = req.ImageURL
	e.CategoryID = req.CategoryID
	e.CityID = req.CityID

	if err := s.repo.Update(e); err != nil {
		return nil, err
	}

	s.audit(actingUser.ID, auditlog.ActionEventUpdated, map[string]interface{}{
		"event_id": e.ID,
		"title":    e.TitleEn,
	}, ip, "success")

	updated, err := s.repo.FindByID(e.ID)
	if err != nil {
		return nil, err
	}
	resp := updated.toResponse()
	return &resp, nil
}

func (s *Service) Delete(id uint, actingUser *auth.User, ip string) error {
	e, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if e.CreatorID != actingUser.ID && actingUser.Role.RoleName != auth.RoleAdmin {
		return ErrForbidden
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.audit(actingUser.ID, auditlog.ActionEventDeleted, map[string]interface{}{
		"event_id": id,
		"title":    e.TitleEn,
	}, ip, "success")

	return nil
}

// ===========================
// Attendance

// ToggleAttendance joins or leaves in one transaction. The creator gets
// a notification over the bus when someone joins.
func (s *Service) ToggleAttendance(eventID uint, actingUser *auth.User) (bool, *EventResponse, error) {
	e, err := s.repo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, ErrNotFound
		}
		return false, nil, err
	}
	if !e.IsApproved {
		return false, nil, ErrNotFound
	}

	attending, err := s.repo.ToggleAttendance(eventID, actingUser.ID)
	if err != nil {
		return false, nil, err
	}

	if attending && e.CreatorID != actingUser.ID {
		utils.PublishNotification(utils.NotificationEvent{
			UserID:   e.CreatorID,
			Title:    "New attendee",
			Message:  fmt.Sprintf("%s is attending %q", actingUser.Name, e.TitleEn),
			Category: "event",
		})
	}

	resp := e.toResponse()
	count, _ := s.repo.CountAttendees(eventID)
	resp.AttendeeCount = count

	return attending, &resp, nil
}

// ===========================
// Creator dashboard

func (s *Service) ListByCreator(creatorID uint) ([]EventResponse, error) {
	events, err := s.repo.ListByCreator(creatorID)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		resp := events[i].toResponse()
		count, _ := s.repo.CountAttendees(events[i].ID)
		resp.AttendeeCount = count
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *Service) audit(userID uint, action string, details map[string]interface{}, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.LogAction(context.Background(), &userID, action, details, ip, status)
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
