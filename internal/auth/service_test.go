package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hawrami/events-iraq-backend/config"
	"github.com/hawrami/events-iraq-backend/internal/auth"
)

type fakeUserRepo struct {
	users    map[uint]*auth.User
	profiles map[uint]*auth.HostProfile
	nextID   uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[uint]*auth.User{},
		profiles: map[uint]*auth.HostProfile{},
		nextID:   1,
	}
}

func (r *fakeUserRepo) Create(user *auth.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *auth.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(userID uint) (auth.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return auth.User{}, gorm.ErrRecordNotFound
	}
	return *u, nil
}

func (r *fakeUserRepo) EmailExists(email string) (bool, error) {
	_, err := r.FindByEmail(email)
	return err == nil, nil
}

func (r *fakeUserRepo) FindRoleByName(name string) (*auth.UserRole, error) {
	roles := map[string]uint{auth.RoleAttendee: 1, auth.RoleHost: 2, auth.RoleAdmin: 3}
	id, ok := roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &auth.UserRole{ID: id, RoleName: name}, nil
}

func (r *fakeUserRepo) UpsertHostProfile(profile *auth.HostProfile) error {
	copied := *profile
	r.profiles[profile.UserID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserIDsByRole(roleName string) ([]uint, error) {
	var ids []uint
	for _, u := range r.users {
		if u.Role.RoleName == roleName {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
}

func TestRegisterAttendee(t *testing.T) {
	repo := newFakeUserRepo()
	svc := auth.NewService(repo, testConfig())

	tokens, user, err := svc.Register(auth.RegisterInput{
		Name:     "Dana",
		Email:    "Dana@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Equal(t, "dana@example.com", user.Email)
	require.Equal(t, auth.RoleAttendee, user.Role.RoleName)
	require.Equal(t, auth.VerificationApproved, user.VerificationStatus)
	require.Equal(t, "en", user.Language)
}

func TestRegisterHostStartsUnsubmitted(t *testing.T) {
	repo := newFakeUserRepo()
	svc := auth.NewService(repo, testConfig())

	_, user, err := svc.Register(auth.RegisterInput{
		Name:     "Venue Co",
		Email:    "venue@example.com",
		Password: "secret123",
		Role:     auth.RoleHost,
		Language: "ku",
	})
	require.NoError(t, err)
	require.Equal(t, auth.VerificationUnsubmitted, user.VerificationStatus)
	require.Equal(t, "ku", user.Language)
}

func TestRegisterRejectsDuplicateEmailAndAdminRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := auth.NewService(repo, testConfig())

	_, _, err := svc.Register(auth.RegisterInput{Name: "A", Email: "a@b.com", Password: "pw123456"})
	require.NoError(t, err)

	_, _, err = svc.Register(auth.RegisterInput{Name: "B", Email: "a@b.com", Password: "pw123456"})
	require.ErrorIs(t, err, auth.ErrEmailTaken)

	// rows are stored lowercased, so a mixed-case retry is still a duplicate
	_, _, err = svc.Register(auth.RegisterInput{Name: "B", Email: "A@B.com", Password: "pw123456"})
	require.ErrorIs(t, err, auth.ErrEmailTaken)

	_, _, err = svc.Register(auth.RegisterInput{Name: "C", Email: "c@b.com", Password: "pw123456", Role: auth.RoleAdmin})
	require.ErrorIs(t, err, auth.ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := auth.NewService(repo, testConfig())

	_, _, err := svc.Register(auth.RegisterInput{Name: "Dana", Email: "dana@example.com", Password: "secret123"})
	require.NoError(t, err)

	tokens, user, err := svc.Login(auth.LoginInput{Email: "DANA@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.Equal(t, "dana@example.com", user.Email)

	_, _, err = svc.Login(auth.LoginInput{Email: "dana@example.com", Password: "wrong"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// unknown email yields the same error as a bad password
	_, _, err = svc.Login(auth.LoginInput{Email: "ghost@example.com", Password: "secret123"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := auth.NewService(repo, testConfig())

	tokens, _, err := svc.Register(auth.RegisterInput{Name: "Dana", Email: "dana@example.com", Password: "secret123"})
	require.NoError(t, err)

	access, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, access)

	// an access token is signed with a different secret and must be rejected
	_, err = svc.Refresh(tokens.AccessToken)
	require.Error(t, err)

	_, err = svc.Refresh("not-a-token")
	require.Error(t, err)
}

func TestUpdateLanguage(t *testing.T) {
	repo := newFakeUserRepo()
	svc := auth.NewService(repo, testConfig())

	_, user, err := svc.Register(auth.RegisterInput{Name: "Dana", Email: "dana@example.com", Password: "secret123"})
	require.NoError(t, err)

	updated, err := svc.UpdateLanguage(user.ID, "ar")
	require.NoError(t, err)
	require.Equal(t, "ar", updated.Language)

	_, err = svc.UpdateLanguage(user.ID, "fr")
	require.Error(t, err)
}

func TestSubmitHostProfileMovesToPending(t *testing.T) {
	repo := newFakeUserRepo()
	svc := auth.NewService(repo, testConfig())

	_, host, err := svc.Register(auth.RegisterInput{
		Name: "Venue Co", Email: "venue@example.com", Password: "secret123", Role: auth.RoleHost,
	})
	require.NoError(t, err)

	updated, err := svc.SubmitHostProfile(host.ID, auth.HostProfileInput{
		BusinessName:    "Erbil Halls",
		Phone:           "+9647500000000",
		BusinessAddress: "Erbil, 60m road",
		OrganizerType:   "Venue",
	})
	require.NoError(t, err)
	require.Equal(t, auth.VerificationPending, updated.VerificationStatus)
	require.NotNil(t, updated.HostProfile)
	require.Equal(t, "Erbil Halls", updated.HostProfile.BusinessName)
	require.False(t, updated.IsVerifiedHost(), "pending hosts may not publish yet")
}

func TestSubmitHostProfileRejectsAttendees(t *testing.T) {
	repo := newFakeUserRepo()
	svc := auth.NewService(repo, testConfig())

	_, user, err := svc.Register(auth.RegisterInput{Name: "Dana", Email: "dana@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.SubmitHostProfile(user.ID, auth.HostProfileInput{BusinessName: "x"})
	require.ErrorIs(t, err, auth.ErrNotHost)
}

func TestPasswordHashNeverStoredPlain(t *testing.T) {
	repo := newFakeUserRepo()
	svc := auth.NewService(repo, testConfig())

	_, user, err := svc.Register(auth.RegisterInput{Name: "Dana", Email: "dana@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEqual(t, "secret123", user.PasswordHash)
	require.True(t, strings.HasPrefix(user.PasswordHash, "$2"), "bcrypt hash expected")
}
