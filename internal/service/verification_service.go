package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// VerificationService issues and checks one-time email codes. The active
// challenge lives on the member row itself, so there is at most one per
// member and confirming it is a single update.
type VerificationService struct {
	memberRepo     repository.MemberRepository
	emailService   EmailService
	cacheRepo      repository.CacheRepository
	codeTTL        time.Duration
	resendCooldown time.Duration
	codePepper     string
}

// NewVerificationService creates a new verification service.
func NewVerificationService(
	memberRepo repository.MemberRepository,
	emailService EmailService,
	cacheRepo repository.CacheRepository,
	codeTTL time.Duration,
	resendCooldown time.Duration,
	codePepper string,
) (*VerificationService, error) {
	if memberRepo == nil {
		return nil, fmt.Errorf("member repository is required")
	}
	if emailService == nil {
		return nil, fmt.Errorf("email service is required")
	}
	if codeTTL <= 0 {
		codeTTL = 15 * time.Minute
	}
	if resendCooldown <= 0 {
		resendCooldown = 60 * time.Second
	}

	return &VerificationService{
		memberRepo:     memberRepo,
		emailService:   emailService,
		cacheRepo:      cacheRepo,
		codeTTL:        codeTTL,
		resendCooldown: resendCooldown,
		codePepper:     codePepper,
	}, nil
}

// IssueCode generates a fresh challenge for the member, stores its hash and
// emails the plaintext code. A new code replaces any previous one.
func (s *VerificationService) IssueCode(ctx context.Context, member *entity.Member, purpose string) error {
	if err := s.checkResendCooldown(member.ID); err != nil {
		return err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}
	salt, err := generateVerificationSalt()
	if err != nil {
		return fmt.Errorf("failed to generate verification salt: %w", err)
	}

	expiresAt := time.Now().Add(s.codeTTL)
	codeHash := hashVerificationCode(code, salt, s.codePepper)
	if err := s.memberRepo.SetVerificationChallenge(member.ID, codeHash, salt, expiresAt); err != nil {
		return fmt.Errorf("failed to store verification challenge: %w", err)
	}

	idempotencyKey := fmt.Sprintf("%s:%d:%d", purpose, member.ID, expiresAt.Unix())
	if purpose == "password-reset" {
		err = s.emailService.SendPasswordReset(ctx, member.Email, code, idempotencyKey)
	} else {
		err = s.emailService.SendVerificationCode(ctx, member.Email, code, idempotencyKey)
	}
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	s.markSent(member.ID)
	return nil
}

// ConfirmCode checks the submitted code against the member's stored
// challenge. On success the challenge is consumed, the email marked verified
// and the account activated.
func (s *VerificationService) ConfirmCode(ctx context.Context, member *entity.Member, code string) error {
	if err := s.checkCode(member, code); err != nil {
		return err
	}

	if err := s.memberRepo.ClearVerificationChallenge(member.ID); err != nil {
		return fmt.Errorf("failed to consume verification challenge: %w", err)
	}
	return nil
}

// CheckCode validates the code without consuming the challenge. Used by the
// password reset flow, which consumes the challenge together with the
// password update.
func (s *VerificationService) CheckCode(member *entity.Member, code string) error {
	return s.checkCode(member, code)
}

func (s *VerificationService) checkCode(member *entity.Member, code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: empty verification code", apperrors.ErrValidation)
	}
	if !member.HasPendingVerification() {
		return ErrNoPendingVerification
	}
	if time.Now().After(*member.VerificationExpiresAt) {
		// A dead challenge is dropped right away; the member has to request
		// a fresh code.
		if err := s.memberRepo.DiscardVerificationChallenge(member.ID); err != nil {
			log.Printf("[VerificationService] failed to discard expired challenge for member=%d: %v", member.ID, err)
		}
		return ErrVerificationExpired
	}

	expectedHash := hashVerificationCode(code, *member.VerificationCodeSalt, s.codePepper)
	if subtle.ConstantTimeCompare([]byte(expectedHash), []byte(*member.VerificationCodeHash)) != 1 {
		return ErrInvalidVerificationCode
	}
	return nil
}

func (s *VerificationService) checkResendCooldown(memberID uint) error {
	if s.cacheRepo == nil {
		return nil
	}
	exists, err := s.cacheRepo.Exists(cooldownKey(memberID))
	if err != nil {
		// Cooldown is best effort; a cache outage must not block signups.
		log.Printf("[VerificationService] cooldown check failed for member=%d: %v", memberID, err)
		return nil
	}
	if exists {
		return fmt.Errorf("%w: please wait before requesting a new code", ErrVerificationResendCooldown)
	}
	return nil
}

func (s *VerificationService) markSent(memberID uint) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Set(cooldownKey(memberID), 1, s.resendCooldown); err != nil {
		log.Printf("[VerificationService] failed to set cooldown for member=%d: %v", memberID, err)
	}
}

func cooldownKey(memberID uint) string {
	return fmt.Sprintf("verification:cooldown:%d", memberID)
}

// generateVerificationCode returns a 6-digit code in [100000, 999999].
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func generateVerificationSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashVerificationCode(code, salt, pepper string) string {
	sum := sha256.Sum256([]byte(pepper + ":" + salt + ":" + code))
	return hex.EncodeToString(sum[:])
}
