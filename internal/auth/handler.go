package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie is the HTTP-only session cookie name
const AccessTokenCookie = "access_token"

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.service.AccessTTL().Seconds())
	c.SetCookie(AccessTokenCookie, token, maxAge, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, true)
}

// sanitize shapes the user payload returned to the UI
func sanitize(u *User) gin.H {
	payload := gin.H{
		"id":                  u.ID,
		"name":                u.Name,
		"email":               u.Email,
		"profile_picture_url": u.ProfilePictureURL,
		"language":            u.Language,
		"role":                u.Role.RoleName,
		"verification_status": u.VerificationStatus,
	}
	if u.HostProfile != nil {
		payload["host_profile"] = u.HostProfile
	}
	return payload
}

// ===============================
// Registration
// ===============================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Bawan Ahmed"`
	Email    string `json:"email" binding:"required,email" example:"bawan@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Role     string `json:"role" binding:"required,oneof=attendee host" example:"attendee"`
	Language string `json:"language" binding:"omitempty,oneof=en ar ku" example:"ku"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	tokens, user, err := h.service.Register(RegisterInput(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "email_taken", "message": "A user with this email already exists"})
		case errors.Is(err, ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role", "message": "Role must be attendee or host"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Registration failed"})
		}
		return
	}

	h.setSessionCookie(c, tokens.AccessToken)
	c.JSON(http.StatusCreated, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user":         sanitize(user),
	})
}

// ===============================
// Login
// ===============================

type loginReq struct {
	Email    string `json:"email" binding:"required,email" example:"bawan@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	tokens, user, err := h.service.Login(LoginInput(req))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Login failed"})
		return
	}

	h.setSessionCookie(c, tokens.AccessToken)
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user":         sanitize(user),
	})
}

// ===============================
// Refresh Token
// ===============================

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	token, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token", "message": err.Error()})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// ===============================
// Current User
// ===============================

func (h *Handler) Me(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	user := userVal.(User)
	c.JSON(http.StatusOK, gin.H{"user": sanitize(&user)})
}

// ===============================
// Language Preference
// ===============================

type languageReq struct {
	Language string `json:"language" binding:"required,oneof=en ar ku"`
}

func (h *Handler) UpdateLanguage(c *gin.Context) {
	var req languageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	user, err := h.service.UpdateLanguage(userID, req.Language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to update language"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": sanitize(user)})
}

// ===============================
// Host Profile Submission
// ===============================

type hostProfileReq struct {
	BusinessName    string `json:"business_name" binding:"required" example:"Erbil Events Co."`
	Phone           string `json:"phone" binding:"required" example:"+9647501234567"`
	Website         string `json:"website" example:"https://erbilevents.com"`
	BusinessAddress string `json:"business_address" binding:"required" example:"123 Citadel Road, Erbil"`
	OrganizerType   string `json:"organizer_type" binding:"required" example:"Venue"`
}

func (h *Handler) SubmitHostProfile(c *gin.Context) {
	var req hostProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	user, err := h.service.SubmitHostProfile(userID, HostProfileInput(req))
	if err != nil {
		if errors.Is(err, ErrNotHost) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not_a_host", "message": "Only hosts can submit a host profile"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to submit host profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Host profile submitted. Awaiting review.",
		"user":    sanitize(user),
	})
}

// ===============================
// Forgot / Reset Password
// ===============================

type forgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Please provide a valid email address"})
		return
	}

	err := h.service.RequestPasswordReset(req.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "email_failed", "message": "Unable to send password reset email"})
		return
	}

	// Same response whether or not the account exists
	c.JSON(http.StatusOK, gin.H{"message": "If an account exists with this email, a password reset link has been sent"})
}

type resetPasswordReq struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Please provide both token and new password"})
		return
	}

	if err := h.service.ResetPassword(req.Token, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_token", "message": "This password reset link is invalid or has expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}

// ===============================
// Logout
// ===============================

func (h *Handler) Logout(c *gin.Context) {
	_ = h.service.Logout()
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
