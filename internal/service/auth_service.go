package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/pkg/auth"
)

const minPasswordLength = 8

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	FirstName       string
	LastName        string
	StudentID       string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
}

// ExternalProfile is an identity asserted by an external provider.
type ExternalProfile struct {
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

// ExternalTokenVerifier validates a provider token and returns the profile
// it asserts.
type ExternalTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*ExternalProfile, error)
}

// AuthService implements registration, email verification, login and
// password recovery.
type AuthService struct {
	memberRepo      repository.MemberRepository
	verificationSvc *VerificationService
	jwtService      *auth.JWTService
	tokenVerifier   ExternalTokenVerifier
}

// NewAuthService creates a new auth service. tokenVerifier may be nil when
// external sign-in is disabled.
func NewAuthService(
	memberRepo repository.MemberRepository,
	verificationSvc *VerificationService,
	jwtService *auth.JWTService,
	tokenVerifier ExternalTokenVerifier,
) (*AuthService, error) {
	if memberRepo == nil {
		return nil, fmt.Errorf("member repository is required")
	}
	if verificationSvc == nil {
		return nil, fmt.Errorf("verification service is required")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service is required")
	}
	return &AuthService{
		memberRepo:      memberRepo,
		verificationSvc: verificationSvc,
		jwtService:      jwtService,
		tokenVerifier:   tokenVerifier,
	}, nil
}

// Register creates an inactive account and sends the verification code. The
// student ID is normalized before any validation, and the email must be the
// institutional address derived from it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entity.Member, error) {
	studentID := entity.NormalizeStudentID(input.StudentID)
	if !entity.IsValidStudentID(studentID) {
		return nil, fmt.Errorf("%w: student ID must be 2 letters followed by 8 digits", apperrors.ErrValidation)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != entity.DerivedEmail(studentID) {
		return nil, fmt.Errorf("%w: email must be %s", apperrors.ErrValidation, entity.DerivedEmail(studentID))
	}

	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}
	if input.Password != input.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", apperrors.ErrValidation)
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", apperrors.ErrValidation)
	}

	if _, err := s.memberRepo.GetByStudentID(studentID); err == nil {
		return nil, fmt.Errorf("%w: student ID already registered", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if _, err := s.memberRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	member := &entity.Member{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		StudentID:   studentID,
		Email:       email,
		Password:    input.Password,
		PhoneNumber: strings.TrimSpace(input.Phone),
		Role:        entity.RoleMember,
		Status:      entity.StatusInactive,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	// The account exists either way; a failed send surfaces so the client
	// knows no code is on its way.
	if err := s.verificationSvc.IssueCode(ctx, member, "email-verify"); err != nil {
		return nil, err
	}

	return member, nil
}

// VerifyEmail consumes the member's challenge, activates the account and
// opens a session.
func (s *AuthService) VerifyEmail(ctx context.Context, studentID, code string) (string, *entity.Member, error) {
	member, err := s.getByStudentID(studentID)
	if err != nil {
		return "", nil, err
	}
	if member.EmailVerified {
		return "", nil, fmt.Errorf("%w: email already verified", apperrors.ErrValidation)
	}
	if err := s.verificationSvc.ConfirmCode(ctx, member, code); err != nil {
		return "", nil, err
	}
	member.EmailVerified = true
	member.Status = entity.StatusActive

	token, err := s.jwtService.GenerateToken(member)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.memberRepo.UpdateLastLogin(member.ID); err != nil {
		log.Printf("[AuthService] failed to update last login for member=%d: %v", member.ID, err)
	}
	return token, member, nil
}

// ResendCode issues a fresh verification code for an unverified account.
func (s *AuthService) ResendCode(ctx context.Context, studentID string) error {
	member, err := s.getByStudentID(studentID)
	if err != nil {
		return err
	}
	if member.EmailVerified {
		return fmt.Errorf("%w: email already verified", apperrors.ErrConflict)
	}
	return s.verificationSvc.IssueCode(ctx, member, "email-verify")
}

// Login checks the credentials and returns a session token. Unknown student
// IDs and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, studentID, password string) (string, *entity.Member, error) {
	normalized := entity.NormalizeStudentID(studentID)
	member, err := s.memberRepo.GetByStudentID(normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !member.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}
	if !member.EmailVerified {
		return "", nil, ErrEmailNotVerified
	}
	if member.Status == entity.StatusSuspended {
		return "", nil, ErrAccountSuspended
	}
	if member.Status != entity.StatusActive {
		return "", nil, ErrAccountNotActive
	}

	token, err := s.jwtService.GenerateToken(member)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.memberRepo.UpdateLastLogin(member.ID); err != nil {
		log.Printf("[AuthService] failed to update last login for member=%d: %v", member.ID, err)
	}

	return token, member, nil
}

// GetProfile returns the member behind a session.
func (s *AuthService) GetProfile(memberID uint) (*entity.Member, error) {
	return s.memberRepo.GetByID(memberID)
}

// ForgotPassword issues a reset code. It reports success even for unknown
// student IDs so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, studentID string) error {
	member, err := s.getByStudentID(studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.verificationSvc.IssueCode(ctx, member, "password-reset")
}

// ResetPassword checks the reset code and stores the new password.
func (s *AuthService) ResetPassword(ctx context.Context, studentID, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}

	member, err := s.getByStudentID(studentID)
	if err != nil {
		return err
	}
	if err := s.verificationSvc.CheckCode(member, code); err != nil {
		return err
	}
	if err := s.memberRepo.UpdatePassword(member.ID, newPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	// Proving mailbox control also verifies the email.
	if err := s.memberRepo.ClearVerificationChallenge(member.ID); err != nil {
		return fmt.Errorf("failed to consume reset challenge: %w", err)
	}
	return nil
}

// ProvisionExternal signs a member in with a provider token. The asserted
// email must be an institutional address; the account is created on first
// sign-in and is verified by definition.
func (s *AuthService) ProvisionExternal(ctx context.Context, idToken string) (string, *entity.Member, error) {
	if s.tokenVerifier == nil {
		return "", nil, fmt.Errorf("%w: external sign-in is disabled", apperrors.ErrForbidden)
	}

	profile, err := s.tokenVerifier.Verify(ctx, idToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrGoogleTokenVerificationFailed, err)
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	localPart, domain, found := strings.Cut(email, "@")
	if !found || domain != entity.EmailDomain {
		return "", nil, fmt.Errorf("%w: only %s accounts may sign in", apperrors.ErrForbidden, entity.EmailDomain)
	}
	studentID := entity.NormalizeStudentID(localPart)
	if !entity.IsValidStudentID(studentID) {
		return "", nil, fmt.Errorf("%w: email local part is not a student ID", apperrors.ErrForbidden)
	}

	member, err := s.memberRepo.GetByStudentID(studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, err
		}
		member, err = s.createExternalMember(profile, studentID, email)
		if err != nil {
			return "", nil, err
		}
	} else if !member.EmailVerified {
		// The provider vouches for the mailbox.
		if err := s.memberRepo.ClearVerificationChallenge(member.ID); err != nil {
			return "", nil, err
		}
		member.EmailVerified = true
		member.Status = entity.StatusActive
	}

	if member.Status == entity.StatusSuspended {
		return "", nil, ErrAccountSuspended
	}
	if member.Status != entity.StatusActive {
		return "", nil, ErrAccountNotActive
	}

	token, err := s.jwtService.GenerateToken(member)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.memberRepo.UpdateLastLogin(member.ID); err != nil {
		log.Printf("[AuthService] failed to update last login for member=%d: %v", member.ID, err)
	}
	return token, member, nil
}

func (s *AuthService) createExternalMember(profile *ExternalProfile, studentID, email string) (*entity.Member, error) {
	// Password login stays possible via the reset flow; the placeholder is
	// random and never disclosed.
	randomPassword, err := generateRandomPassword()
	if err != nil {
		return nil, err
	}

	firstName := strings.TrimSpace(profile.FirstName)
	if firstName == "" {
		firstName = studentID
	}
	member := &entity.Member{
		FirstName:     firstName,
		LastName:      strings.TrimSpace(profile.LastName),
		StudentID:     studentID,
		Email:         email,
		Password:      randomPassword,
		Avatar:        profile.Picture,
		Role:          entity.RoleMember,
		Status:        entity.StatusActive,
		EmailVerified: true,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

func (s *AuthService) getByStudentID(studentID string) (*entity.Member, error) {
	normalized := entity.NormalizeStudentID(studentID)
	if !entity.IsValidStudentID(normalized) {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidation)
	}
	return s.memberRepo.GetByStudentID(normalized)
}

func generateRandomPassword() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
