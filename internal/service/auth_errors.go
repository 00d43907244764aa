package service

import "errors"

// Auth flow specific errors used by handlers for stable error_type mapping.
var (
	ErrInvalidCredentials            = errors.New("invalid_credentials")
	ErrEmailNotVerified              = errors.New("email_not_verified")
	ErrAccountSuspended              = errors.New("account_suspended")
	ErrAccountNotActive              = errors.New("account_not_active")
	ErrInvalidVerificationCode       = errors.New("invalid_verification_code")
	ErrNoPendingVerification         = errors.New("no_pending_verification")
	ErrVerificationExpired           = errors.New("verification_expired")
	ErrVerificationResendCooldown    = errors.New("verification_resend_cooldown")
	ErrGoogleTokenVerificationFailed = errors.New("google_token_verification_failed")
)
