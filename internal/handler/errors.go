package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/internal/service"
)

// respondError maps service errors to HTTP responses. Every error body has
// the shape {"error": <message>, "error_type": <stable machine code>}.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid student ID or password", "error_type": "invalid_credentials"})
	case errors.Is(err, service.ErrEmailNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": "Email address is not verified", "error_type": "email_not_verified"})
	case errors.Is(err, service.ErrAccountSuspended):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended", "error_type": "account_suspended"})
	case errors.Is(err, service.ErrAccountNotActive):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is not active", "error_type": "account_not_active"})
	case errors.Is(err, service.ErrInvalidVerificationCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code", "error_type": "invalid_verification_code"})
	case errors.Is(err, service.ErrNoPendingVerification):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No verification is pending for this account", "error_type": "no_pending_verification"})
	case errors.Is(err, service.ErrVerificationExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code has expired", "error_type": "verification_expired"})
	case errors.Is(err, service.ErrVerificationResendCooldown):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code", "error_type": "verification_resend_cooldown"})
	case errors.Is(err, service.ErrGoogleTokenVerificationFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in failed", "error_type": "google_token_invalid"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
	case errors.Is(err, apperrors.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired", "error_type": "token_expired"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied", "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	default:
		log.Printf("[Handler] Unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal_server_error"})
	}
}

// respondBindError is the uniform reply for malformed request bodies.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "Invalid request data",
		"error_type": "invalid_request",
		"details":    err.Error(),
	})
}
