package dto

import "github.com/yourusername/choir-api/internal/domain/entity"

// RegisterRequest is the signup payload. The email must be the university
// address derived from the student ID.
type RegisterRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	StudentID       string `json:"student_id" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Phone           string `json:"phone"`
}

// RegisterResponse tells the client a verification code was emailed.
type RegisterResponse struct {
	Member               *entity.Member `json:"member"`
	RequiresVerification bool           `json:"requires_verification"`
	Message              string         `json:"message"`
}

// LoginRequest authenticates by student ID and password.
type LoginRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// AuthResponse carries the session token and the authenticated member.
type AuthResponse struct {
	Token  string         `json:"token"`
	Member *entity.Member `json:"member"`
}

// VerifyEmailRequest confirms the emailed code.
type VerifyEmailRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Code      string `json:"code" binding:"required"`
}

// ResendCodeRequest asks for a fresh verification code.
type ResendCodeRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// ForgotPasswordRequest starts password recovery.
type ForgotPasswordRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// ResetPasswordRequest completes password recovery with the emailed code.
type ResetPasswordRequest struct {
	StudentID   string `json:"student_id" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// GoogleSignInRequest carries the Google ID token from the client.
type GoogleSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// ChangePasswordRequest changes the password of the logged-in member.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}
