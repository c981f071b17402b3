package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hawrami/events-iraq-backend/config"
	"github.com/hawrami/events-iraq-backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNotHost            = errors.New("only hosts can submit a host profile")
	ErrUserNotFound       = errors.New("user not found")
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Register(input RegisterInput) (*TokenPair, *User, error)
	Login(input LoginInput) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	Logout() error
	GetUserByID(userID uint) (User, error)

	UpdateLanguage(userID uint, language string) (*User, error)
	SubmitHostProfile(userID uint, input HostProfileInput) (*User, error)

	RequestPasswordReset(email string) error
	ResetPassword(token string, newPassword string) error

	AccessTTL() time.Duration
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// AccessTTL is exposed so the handler can align the cookie lifetime
func (s *service) AccessTTL() time.Duration {
	return s.accessTTL
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Language string
}

func (s *service) Register(in RegisterInput) (*TokenPair, *User, error) {
	roleName := strings.ToLower(in.Role)
	if roleName == "" {
		roleName = RoleAttendee
	}
	if roleName == RoleAdmin {
		return nil, nil, ErrInvalidRole
	}

	role, err := s.repo.FindRoleByName(roleName)
	if err != nil {
		return nil, nil, ErrInvalidRole
	}

	email := strings.ToLower(in.Email)
	taken, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	// Attendees are usable immediately, hosts must go through verification
	verification := VerificationApproved
	if roleName == RoleHost {
		verification = VerificationUnsubmitted
	}

	language := in.Language
	if language == "" {
		language = "en"
	}

	user := &User{
		Name:               in.Name,
		Email:              email,
		PasswordHash:       string(hash),
		RoleID:             role.ID,
		Role:               *role,
		Language:           language,
		VerificationStatus: verification,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(in.Email))
	if err != nil {
		// Same error for unknown email and bad password, no user enumeration
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

func (s *service) issueTokens(user *User) (*TokenPair, error) {
	accessToken, err := s.generateToken(user, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) generateToken(user *User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role.RoleName,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", errors.New("invalid token claims")
	}

	userID := uint(claims["user_id"].(float64))
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	return s.generateToken(&user, s.accessSecret, s.accessTTL)
}

// =============================
// Profile
// =============================

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

func (s *service) UpdateLanguage(userID uint, language string) (*User, error) {
	switch language {
	case "en", "ar", "ku":
	default:
		return nil, errors.New("unsupported language")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.Language = language
	if err := s.repo.Update(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// =============================
// Host Profile Submission
// =============================

type HostProfileInput struct {
	BusinessName    string
	Phone           string
	Website         string
	BusinessAddress string
	OrganizerType   string
}

// SubmitHostProfile stores the business details and moves the host into
// the pending verification queue. Admins are notified over the bus.
func (s *service) SubmitHostProfile(userID uint, in HostProfileInput) (*User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.Role.RoleName != RoleHost {
		return nil, ErrNotHost
	}

	profile := &HostProfile{
		UserID:          user.ID,
		BusinessName:    in.BusinessName,
		Phone:           in.Phone,
		Website:         in.Website,
		BusinessAddress: in.BusinessAddress,
		OrganizerType:   in.OrganizerType,
	}
	if err := s.repo.UpsertHostProfile(profile); err != nil {
		return nil, err
	}

	user.VerificationStatus = VerificationPending
	if err := s.repo.Update(&user); err != nil {
		return nil, err
	}
	user.HostProfile = profile

	if adminIDs, err := s.repo.GetUserIDsByRole(RoleAdmin); err == nil {
		for _, adminID := range adminIDs {
			utils.PublishNotification(utils.NotificationEvent{
				UserID:   adminID,
				Title:    "Host verification requested",
				Message:  fmt.Sprintf("%s submitted %q for review", user.Name, in.BusinessName),
				Category: "verification",
			})
		}
	}

	return &user, nil
}

// =============================
// Forgot Password
// =============================

func (s *service) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(strings.ToLower(email))
	if err != nil {
		return ErrUserNotFound
	}

	resetToken := generateSecureToken()
	key := fmt.Sprintf("reset_token:%s", resetToken)

	if err := utils.SetToken(key, fmt.Sprint(user.ID), 15*time.Minute); err != nil {
		return errors.New("could not save reset token")
	}

	if err := utils.SendResetLink(user.Email, resetToken); err != nil {
		return errors.New("failed to send email")
	}

	return nil
}

func (s *service) ResetPassword(token string, newPassword string) error {
	key := fmt.Sprintf("reset_token:%s", token)
	val, err := utils.GetToken(key)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	var userID uint
	if _, err := fmt.Sscan(val, &userID); err != nil {
		return errors.New("invalid token data")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.Update(&user); err != nil {
		return errors.New("failed to update password")
	}

	_ = utils.DeleteToken(key)
	return nil
}

// =============================
// Logout
// =============================

func (s *service) Logout() error {
	// JWT is stateless, the handler clears the cookie
	return nil
}

func generateSecureToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
