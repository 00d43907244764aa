package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/handler/dto"
	"github.com/yourusername/choir-api/internal/middleware"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// AuthHandler serves registration, verification and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates an inactive account and emails a verification code.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		StudentID:       req.StudentID,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Member:               member,
		RequiresVerification: true,
		Message:              "A verification code has been sent to your university email",
	})
}

// VerifyEmail confirms the emailed code, activates the account and signs
// the member in.
// POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, member, err := h.authService.VerifyEmail(c.Request.Context(), req.StudentID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, Member: member})
}

// ResendCode issues a fresh verification code for an unverified account.
// POST /api/auth/resend-code
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req dto.ResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ResendCode(c.Request.Context(), req.StudentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "A new verification code has been sent"})
}

// Login authenticates by student ID and password.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, member, err := h.authService.Login(c.Request.Context(), req.StudentID, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, Member: member})
}

// GoogleSignIn exchanges a Google ID token for a session, provisioning the
// account on first sign-in.
// POST /api/auth/google
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, member, err := h.authService.ProvisionExternal(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, Member: member})
}

// Me returns the authenticated member's profile.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	member, err := h.authService.GetProfile(memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// ForgotPassword emails a reset code. The response never reveals whether
// the student ID exists.
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.StudentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset code has been sent"})
}

// ResetPassword sets a new password after code verification.
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.StudentID, req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset. You can now log in."})
}
