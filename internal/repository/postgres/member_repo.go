package postgres

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yourusername/choir-api/internal/domain/entity"
	"github.com/yourusername/choir-api/internal/domain/repository"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// MemberRepo implements repository.MemberRepository on top of gorm.
type MemberRepo struct {
	db *gorm.DB
}

// NewMemberRepo creates a new member repository.
func NewMemberRepo(db *gorm.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

// Create inserts a new member.
func (r *MemberRepo) Create(member *entity.Member) error {
	return r.db.Create(member).Error
}

// GetByID returns a member by ID.
func (r *MemberRepo) GetByID(id uint) (*entity.Member, error) {
	var member entity.Member
	err := r.db.First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetByStudentID returns a member by normalized student ID.
func (r *MemberRepo) GetByStudentID(studentID string) (*entity.Member, error) {
	var member entity.Member
	err := r.db.Where("student_id = ?", studentID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetByEmail returns a member by email.
func (r *MemberRepo) GetByEmail(email string) (*entity.Member, error) {
	var member entity.Member
	err := r.db.Where("email = ?", email).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// Update saves the whole member row.
func (r *MemberRepo) Update(member *entity.Member) error {
	return r.db.Save(member).Error
}

// UpdateProfile updates the given fields without touching the password.
func (r *MemberRepo) UpdateProfile(memberID uint, updates map[string]interface{}) error {
	// Never let a password slip through this path.
	delete(updates, "password")

	updates["updated_at"] = time.Now()

	result := r.db.Model(&entity.Member{}).Where("id = ?", memberID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePassword hashes and stores a new password for the member.
func (r *MemberRepo) UpdatePassword(memberID uint, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[MemberRepo.UpdatePassword] failed to hash password: %v", err)
		return err
	}

	// Raw update bypasses the BeforeSave hook so the hash is not hashed twice.
	result := r.db.Exec(
		"UPDATE members SET password = ?, updated_at = ? WHERE id = ?",
		string(hashedPassword),
		time.Now(),
		memberID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateLastLogin stamps the member's last successful login.
func (r *MemberRepo) UpdateLastLogin(memberID uint) error {
	now := time.Now()
	return r.db.Model(&entity.Member{}).
		Where("id = ?", memberID).
		UpdateColumn("last_login_at", now).
		Error
}

// SetVerificationChallenge replaces the member's OTP challenge.
func (r *MemberRepo) SetVerificationChallenge(memberID uint, codeHash, salt string, expiresAt time.Time) error {
	result := r.db.Model(&entity.Member{}).Where("id = ?", memberID).Updates(map[string]interface{}{
		"verification_code_hash":  codeHash,
		"verification_code_salt":  salt,
		"verification_expires_at": expiresAt,
		"updated_at":              time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearVerificationChallenge marks the member verified and wipes the
// challenge columns in one update.
func (r *MemberRepo) ClearVerificationChallenge(memberID uint) error {
	result := r.db.Model(&entity.Member{}).Where("id = ?", memberID).Updates(map[string]interface{}{
		"email_verified":          true,
		"status":                  entity.StatusActive,
		"verification_code_hash":  nil,
		"verification_code_salt":  nil,
		"verification_expires_at": nil,
		"updated_at":              time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DiscardVerificationChallenge wipes the challenge columns only. The
// verified flag and status are left as they are.
func (r *MemberRepo) DiscardVerificationChallenge(memberID uint) error {
	result := r.db.Model(&entity.Member{}).Where("id = ?", memberID).Updates(map[string]interface{}{
		"verification_code_hash":  nil,
		"verification_code_salt":  nil,
		"verification_expires_at": nil,
		"updated_at":              time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns members matching the filter with pagination and total count.
func (r *MemberRepo) List(filter repository.MemberFilter, limit, offset int) ([]entity.Member, int64, error) {
	var members []entity.Member
	var total int64

	query := r.db.Model(&entity.Member{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR student_id ILIKE ? OR email ILIKE ?",
			like, like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Limit(limit).Offset(offset).Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// Delete removes a member row.
func (r *MemberRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Member{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count returns the total number of members.
func (r *MemberRepo) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Member{}).Count(&total).Error
	return total, err
}
