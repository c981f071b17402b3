package message_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/internal/message"
)

type fakeMessageRepo struct {
	messages []*message.Message
	users    map[uint]auth.User
	nextID   uint
}

func newFakeMessageRepo(users map[uint]auth.User) *fakeMessageRepo {
	return &fakeMessageRepo{users: users, nextID: 1}
}

func (r *fakeMessageRepo) Create(msg *message.Message) error {
	msg.ID = r.nextID
	r.nextID++
	msg.CreatedAt = time.Now()
	copied := *msg
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) FindConversation(userID, partnerID uint) ([]message.Message, error) {
	var out []message.Message
	for _, m := range r.messages {
		if (m.SenderID == userID && m.RecipientID == partnerID) ||
			(m.SenderID == partnerID && m.RecipientID == userID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkConversationRead(userID, partnerID uint) error {
	for _, m := range r.messages {
		if m.SenderID == partnerID && m.RecipientID == userID {
			m.IsRead = true
		}
	}
	return nil
}

func (r *fakeMessageRepo) ListConversationPartners(userID uint) ([]message.Message, error) {
	latest := map[uint]*message.Message{}
	for _, m := range r.messages {
		var partnerID uint
		switch userID {
		case m.SenderID:
			partnerID = m.RecipientID
		case m.RecipientID:
			partnerID = m.SenderID
		default:
			continue
		}
		if prev, ok := latest[partnerID]; !ok || m.ID > prev.ID {
			latest[partnerID] = m
		}
	}

	var out []message.Message
	for _, m := range latest {
		copied := *m
		copied.Sender = r.users[copied.SenderID]
		copied.Recipient = r.users[copied.RecipientID]
		out = append(out, copied)
	}
	return out, nil
}

func (r *fakeMessageRepo) CountUnreadFrom(userID, partnerID uint) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.SenderID == partnerID && m.RecipientID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) CountUnread(userID uint) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.RecipientID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

// fakeAuthRepo only backs FindByID, the one method the message service uses
type fakeAuthRepo struct {
	users map[uint]auth.User
}

func (r *fakeAuthRepo) Create(*auth.User) error                { return nil }
func (r *fakeAuthRepo) Update(*auth.User) error                { return nil }
func (r *fakeAuthRepo) FindByEmail(string) (*auth.User, error) { return nil, gorm.ErrRecordNotFound }
func (r *fakeAuthRepo) FindByID(userID uint) (auth.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return auth.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}
func (r *fakeAuthRepo) EmailExists(string) (bool, error)                  { return false, nil }
func (r *fakeAuthRepo) FindRoleByName(string) (*auth.UserRole, error)     { return nil, gorm.ErrRecordNotFound }
func (r *fakeAuthRepo) UpsertHostProfile(*auth.HostProfile) error         { return nil }
func (r *fakeAuthRepo) GetUserIDsByRole(string) ([]uint, error)           { return nil, nil }

func setupMessageService() (*message.Service, *fakeMessageRepo, *auth.User, *auth.User) {
	users := map[uint]auth.User{
		1: {ID: 1, Name: "Dana"},
		2: {ID: 2, Name: "Rawa"},
	}
	repo := newFakeMessageRepo(users)
	svc := message.NewService(repo, &fakeAuthRepo{users: users})
	dana := users[1]
	rawa := users[2]
	return svc, repo, &dana, &rawa
}

func TestSendMessage(t *testing.T) {
	svc, repo, dana, _ := setupMessageService()

	resp, err := svc.Send(dana, &message.SendMessageRequest{RecipientID: 2, Body: "hey"})
	require.NoError(t, err)
	require.Equal(t, uint(1), resp.SenderID)
	require.Equal(t, uint(2), resp.RecipientID)
	require.False(t, resp.IsRead)
	require.Len(t, repo.messages, 1)
}

func TestSendMessageValidation(t *testing.T) {
	svc, _, dana, _ := setupMessageService()

	_, err := svc.Send(dana, &message.SendMessageRequest{RecipientID: 2, Body: ""})
	require.ErrorIs(t, err, message.ErrEmptyBody)

	_, err = svc.Send(dana, &message.SendMessageRequest{RecipientID: 1, Body: "hi me"})
	require.ErrorIs(t, err, message.ErrSelfMessage)

	_, err = svc.Send(dana, &message.SendMessageRequest{RecipientID: 99, Body: "anyone there"})
	require.ErrorIs(t, err, message.ErrRecipientNotFound)
}

func TestGetConversationMarksRead(t *testing.T) {
	svc, _, dana, rawa := setupMessageService()

	_, err := svc.Send(dana, &message.SendMessageRequest{RecipientID: 2, Body: "hey"})
	require.NoError(t, err)
	_, err = svc.Send(rawa, &message.SendMessageRequest{RecipientID: 1, Body: "hello"})
	require.NoError(t, err)

	unread, err := svc.UnreadCount(1)
	require.NoError(t, err)
	require.EqualValues(t, 1, unread)

	thread, err := svc.GetConversation(1, 2)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	require.Equal(t, "hey", thread[0].Body, "oldest first")
	require.True(t, thread[1].IsRead, "payload reflects the messages just marked read")

	// reading the thread clears the badge
	unread, err = svc.UnreadCount(1)
	require.NoError(t, err)
	require.EqualValues(t, 0, unread)
}

func TestListConversations(t *testing.T) {
	svc, _, dana, rawa := setupMessageService()

	_, err := svc.Send(dana, &message.SendMessageRequest{RecipientID: 2, Body: "first"})
	require.NoError(t, err)
	_, err = svc.Send(rawa, &message.SendMessageRequest{RecipientID: 1, Body: "second"})
	require.NoError(t, err)

	conversations, err := svc.ListConversations(1)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	require.Equal(t, uint(2), conversations[0].Partner.ID)
	require.Equal(t, "Rawa", conversations[0].Partner.Name)
	require.Equal(t, "second", conversations[0].LastMessage.Body)
	require.Equal(t, 1, conversations[0].UnreadCount)
}
