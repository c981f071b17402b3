package notification_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hawrami/events-iraq-backend/internal/notification"
)

type fakeNotifRepo struct {
	inApp  []*notification.InAppNotification
	tokens map[string]*notification.FCMDeviceToken
	nextID uint
}

func newFakeNotifRepo() *fakeNotifRepo {
	return &fakeNotifRepo{tokens: map[string]*notification.FCMDeviceToken{}, nextID: 1}
}

func (r *fakeNotifRepo) CreateInApp(_ context.Context, n *notification.InAppNotification) error {
	n.ID = r.nextID
	r.nextID++
	copied := *n
	r.inApp = append(r.inApp, &copied)
	return nil
}

func (r *fakeNotifRepo) ListInAppByUser(_ context.Context, userID uint, limit int) ([]notification.InAppNotification, error) {
	var out []notification.InAppNotification
	for _, n := range r.inApp {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotifRepo) MarkInAppAsRead(_ context.Context, id uint, userID uint) error {
	for _, n := range r.inApp {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotifRepo) MarkAllRead(_ context.Context, userID uint) error {
	for _, n := range r.inApp {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotifRepo) CountUnread(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range r.inApp {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotifRepo) SaveDeviceToken(_ context.Context, token *notification.FCMDeviceToken) error {
	copied := *token
	r.tokens[token.DeviceToken] = &copied
	return nil
}

func (r *fakeNotifRepo) RemoveDeviceToken(_ context.Context, userID uint, deviceToken string) error {
	if t, ok := r.tokens[deviceToken]; ok && t.UserID == userID {
		t.IsActive = false
	}
	return nil
}

func (r *fakeNotifRepo) GetUserDeviceTokens(_ context.Context, userID uint) ([]string, error) {
	var out []string
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsActive {
			out = append(out, t.DeviceToken)
		}
	}
	return out, nil
}

func TestNotifyStoresDurableCopyEvenWithoutPush(t *testing.T) {
	repo := newFakeNotifRepo()
	// FCM is not configured in tests; push failures must stay silent
	svc := notification.NewService(repo, notification.NewFCMChannel())
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, 1, "New attendee", "Dana is attending your event", "event"))

	mine, err := svc.ListMine(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "New attendee", mine[0].Title)
	require.Equal(t, "event", mine[0].Category)
	require.False(t, mine[0].IsRead)
}

func TestNotifyDefaultsCategory(t *testing.T) {
	repo := newFakeNotifRepo()
	svc := notification.NewService(repo, notification.NewFCMChannel())

	require.NoError(t, svc.Notify(context.Background(), 1, "Hello", "body", ""))
	require.Equal(t, notification.CategorySystem, repo.inApp[0].Category)
}

func TestReadStateTransitions(t *testing.T) {
	repo := newFakeNotifRepo()
	svc := notification.NewService(repo, notification.NewFCMChannel())
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, 1, "a", "b", "event"))
	require.NoError(t, svc.Notify(ctx, 1, "c", "d", "message"))
	require.NoError(t, svc.Notify(ctx, 2, "e", "f", "event"))

	unread, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, unread)

	require.NoError(t, svc.MarkRead(ctx, repo.inApp[0].ID, 1))
	unread, _ = svc.UnreadCount(ctx, 1)
	require.EqualValues(t, 1, unread)

	// marking someone else's notification is a not-found, not a silent success
	err = svc.MarkRead(ctx, repo.inApp[2].ID, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, svc.MarkAllRead(ctx, 1))
	unread, _ = svc.UnreadCount(ctx, 1)
	require.EqualValues(t, 0, unread)
}

func TestDeviceTokenLifecycle(t *testing.T) {
	repo := newFakeNotifRepo()
	svc := notification.NewService(repo, notification.NewFCMChannel())
	ctx := context.Background()

	require.NoError(t, svc.RegisterDevice(ctx, 1, &notification.RegisterTokenRequest{
		DeviceToken: "tok-1",
		Platform:    "android",
	}))

	tokens, err := repo.GetUserDeviceTokens(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"tok-1"}, tokens)

	require.NoError(t, svc.UnregisterDevice(ctx, 1, "tok-1"))
	tokens, err = repo.GetUserDeviceTokens(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, tokens)
}

func TestBroadcastWithoutFCMFails(t *testing.T) {
	svc := notification.NewService(newFakeNotifRepo(), notification.NewFCMChannel())

	err := svc.Broadcast("Eid schedule", "City events move to the evening")
	require.Error(t, err, "no FCM client configured")
}
