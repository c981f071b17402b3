package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/hawrami/events-iraq-backend/internal/auditlog"
	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/internal/event"
	"github.com/hawrami/events-iraq-backend/utils"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrNotAHost         = errors.New("user is not a host")
	ErrNotPendingReview = errors.New("host profile is not pending review")
	ErrAlreadyApproved  = errors.New("event already approved")
)

type Service struct {
	repo         *Repository
	auditService auditlog.Service
}

func NewService(repo *Repository, auditService auditlog.Service) *Service {
	return &Service{repo: repo, auditService: auditService}
}

// ===========================
// Host verification

// ApproveHost moves a pending host to approved, emails them and pushes
// a notification over the bus
func (s *Service) ApproveHost(ctx context.Context, userID uint, adminID uint, ip string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		s.auditService.LogAction(ctx, &adminID, auditlog.ActionHostApproved, map[string]interface{}{
			"target_user_id": userID,
			"reason":         "user not found",
		}, ip, "failure")
		return ErrUserNotFound
	}

	if user.Role.RoleName != auth.RoleHost {
		return ErrNotAHost
	}
	if user.VerificationStatus != auth.VerificationPending {
		s.auditService.LogAction(ctx, &adminID, auditlog.ActionHostApproved, map[string]interface{}{
			"target_user_id":    userID,
			"target_user_email": user.Email,
			"reason":            fmt.Sprintf("status is %s", user.VerificationStatus),
		}, ip, "failure")
		return ErrNotPendingReview
	}

	if err := s.repo.SetVerificationStatus(ctx, userID, auth.VerificationApproved); err != nil {
		return err
	}

	businessName := ""
	if user.HostProfile != nil {
		businessName = user.HostProfile.BusinessName
	}
	if err := utils.SendHostApprovalEmail(user.Email, user.Name, businessName); err != nil {
		log.Printf("⚠️ host approval email failed for %s: %v", user.Email, err)
	}

	utils.PublishNotification(utils.NotificationEvent{
		UserID:   userID,
		Title:    "Host account approved",
		Message:  "Your host profile has been approved. You can now create events.",
		Category: "verification",
	})

	s.auditService.LogAction(ctx, &adminID, auditlog.ActionHostApproved, map[string]interface{}{
		"target_user_id":    userID,
		"target_user_email": user.Email,
		"target_user_name":  user.Name,
	}, ip, "success")

	return nil
}

// RejectHost moves a pending host to rejected with a mandatory reason
func (s *Service) RejectHost(ctx context.Context, userID uint, adminID uint, reason string, ip string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		s.auditService.LogAction(ctx, &adminID, auditlog.ActionHostRejected, map[string]interface{}{
			"target_user_id": userID,
			"reason":         "user not found",
		}, ip, "failure")
		return ErrUserNotFound
	}

	if user.Role.RoleName != auth.RoleHost {
		return ErrNotAHost
	}
	if user.VerificationStatus != auth.VerificationPending {
		return ErrNotPendingReview
	}

	if err := s.repo.SetVerificationStatus(ctx, userID, auth.VerificationRejected); err != nil {
		return err
	}

	if err := utils.SendHostRejectionEmail(user.Email, user.Name, reason); err != nil {
		log.Printf("⚠️ host rejection email failed for %s: %v", user.Email, err)
	}

	utils.PublishNotification(utils.NotificationEvent{
		UserID:   userID,
		Title:    "Host application rejected",
		Message:  fmt.Sprintf("Your host application was not approved: %s", reason),
		Category: "verification",
	})

	s.auditService.LogAction(ctx, &adminID, auditlog.ActionHostRejected, map[string]interface{}{
		"target_user_id":    userID,
		"target_user_email": user.Email,
		"target_user_name":  user.Name,
		"rejection_reason":  reason,
	}, ip, "success")

	return nil
}

func (s *Service) ListHostsByStatus(ctx context.Context, status string) ([]HostReviewItem, error) {
	if status == "" {
		status = auth.VerificationPending
	}
	return s.repo.ListHostsByStatus(ctx, status)
}

// ===========================
// Event approval

// ApproveEvent publishes a submitted event to the public listing
func (s *Service) ApproveEvent(ctx context.Context, eventID uint, adminID uint, ip string) (*event.Event, error) {
	e, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if e.IsApproved {
		return nil, ErrAlreadyApproved
	}

	if err := s.repo.SetEventApproval(ctx, eventID, true); err != nil {
		return nil, err
	}

	utils.PublishNotification(utils.NotificationEvent{
		UserID:   e.CreatorID,
		Title:    "Event approved",
		Message:  fmt.Sprintf("%q is now live.", e.TitleEn),
		Category: "event",
	})

	s.auditService.LogAction(ctx, &adminID, auditlog.ActionEventApproved, map[string]interface{}{
		"event_id": eventID,
		"title":    e.TitleEn,
	}, ip, "success")

	e.IsApproved = true
	return e, nil
}

// RejectEvent removes a submitted event and tells the creator why
func (s *Service) RejectEvent(ctx context.Context, eventID uint, adminID uint, reason string, ip string) error {
	e, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return err
	}

	utils.PublishNotification(utils.NotificationEvent{
		UserID:   e.CreatorID,
		Title:    "Event rejected",
		Message:  fmt.Sprintf("%q was not approved: %s", e.TitleEn, reason),
		Category: "event",
	})

	s.auditService.LogAction(ctx, &adminID, auditlog.ActionEventDeleted, map[string]interface{}{
		"event_id":         eventID,
		"title":            e.TitleEn,
		"rejection_reason": reason,
	}, ip, "success")

	return nil
}

func (s *Service) ListPendingEvents(ctx context.Context) ([]event.Event, error) {
	return s.repo.ListPendingEvents(ctx)
}

// ===========================
// User listing and stats

func (s *Service) GetUsers(ctx context.Context, roleFilter, search string, page, limit int) (*UserListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.repo.ListUsers(ctx, roleFilter, search, page, limit)
	if err != nil {
		return nil, err
	}

	return &UserListResult{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *Service) GetStats(ctx context.Context) (*PlatformStats, error) {
	return s.repo.GetPlatformStats(ctx)
}
