package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// ProfileUpdateInput carries the self-service profile fields.
type ProfileUpdateInput struct {
	FirstName string
	LastName  string
	Phone     string
	Bio       string
}

// MemberService manages member profiles and the admin roster.
type MemberService struct {
	memberRepo  repository.MemberRepository
	blobStorage BlobStorage
}

// NewMemberService creates a new member service.
func NewMemberService(memberRepo repository.MemberRepository, blobStorage BlobStorage) (*MemberService, error) {
	if memberRepo == nil {
		return nil, fmt.Errorf("member repository is required")
	}
	if blobStorage == nil {
		return nil, fmt.Errorf("blob storage is required")
	}
	return &MemberService{memberRepo: memberRepo, blobStorage: blobStorage}, nil
}

// Get returns a member by ID.
func (s *MemberService) Get(id uint) (*entity.Member, error) {
	return s.memberRepo.GetByID(id)
}

// List returns the roster for staff.
func (s *MemberService) List(filter repository.MemberFilter, limit, offset int) ([]entity.Member, int64, error) {
	return s.memberRepo.List(filter, limit, offset)
}

// UpdateProfile updates the member's own editable fields.
func (s *MemberService) UpdateProfile(memberID uint, input ProfileUpdateInput) (*entity.Member, error) {
	updates := map[string]interface{}{}
	if strings.TrimSpace(input.FirstName) != "" {
		updates["first_name"] = strings.TrimSpace(input.FirstName)
	}
	if strings.TrimSpace(input.LastName) != "" {
		updates["last_name"] = strings.TrimSpace(input.LastName)
	}
	if input.Phone != "" {
		updates["phone_number"] = strings.TrimSpace(input.Phone)
	}
	if input.Bio != "" {
		if len(input.Bio) > 500 {
			return nil, fmt.Errorf("%w: bio must be at most 500 characters", apperrors.ErrValidation)
		}
		updates["bio"] = input.Bio
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidation)
	}

	if err := s.memberRepo.UpdateProfile(memberID, updates); err != nil {
		return nil, err
	}
	return s.memberRepo.GetByID(memberID)
}

// UpdateAvatar stores a new profile picture.
func (s *MemberService) UpdateAvatar(ctx context.Context, memberID uint,
	image multipart.File, imageHeader *multipart.FileHeader) (*entity.Member, error) {

	if image == nil || imageHeader == nil {
		return nil, fmt.Errorf("%w: an image file is required", apperrors.ErrValidation)
	}

	upload, err := s.blobStorage.Upload(ctx, image, imageHeader, "avatars")
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	if err := s.memberRepo.UpdateProfile(memberID, map[string]interface{}{
		"avatar": upload.URL,
	}); err != nil {
		return nil, err
	}
	return s.memberRepo.GetByID(memberID)
}

// ChangePassword verifies the current password before storing a new one.
func (s *MemberService) ChangePassword(memberID uint, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}

	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return err
	}
	if !member.CheckPassword(currentPassword) {
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrUnauthorized)
	}
	return s.memberRepo.UpdatePassword(memberID, newPassword)
}

// SetRole promotes or demotes a member. Admins cannot demote themselves so
// the system always keeps at least one admin.
func (s *MemberService) SetRole(actorID, memberID uint, role string) (*entity.Member, error) {
	switch role {
	case entity.RoleMember, entity.RoleModerator, entity.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	if actorID == memberID {
		return nil, fmt.Errorf("%w: cannot change your own role", apperrors.ErrForbidden)
	}

	if err := s.memberRepo.UpdateProfile(memberID, map[string]interface{}{"role": role}); err != nil {
		return nil, err
	}
	log.Printf("[MemberService] member=%d role changed to %s by admin=%d", memberID, role, actorID)
	return s.memberRepo.GetByID(memberID)
}

// SetStatus activates, deactivates or suspends an account.
func (s *MemberService) SetStatus(actorID, memberID uint, status string) (*entity.Member, error) {
	switch status {
	case entity.StatusActive, entity.StatusInactive, entity.StatusSuspended:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	if actorID == memberID {
		return nil, fmt.Errorf("%w: cannot change your own status", apperrors.ErrForbidden)
	}

	if err := s.memberRepo.UpdateProfile(memberID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	log.Printf("[MemberService] member=%d status changed to %s by admin=%d", memberID, status, actorID)
	return s.memberRepo.GetByID(memberID)
}

// Delete removes a member account.
func (s *MemberService) Delete(actorID, memberID uint) error {
	if actorID == memberID {
		return fmt.Errorf("%w: cannot delete your own account", apperrors.ErrForbidden)
	}
	return s.memberRepo.Delete(memberID)
}
