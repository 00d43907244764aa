package repository

import (
	"time"

	"github.com/yourusername/choir-api/internal/domain/entity"
)

// MemberFilter narrows member listings.
type MemberFilter struct {
	Status string
	Role   string
	Search string
}

// MemberRepository defines persistence operations for choir members.
type MemberRepository interface {
	Create(member *entity.Member) error
	GetByID(id uint) (*entity.Member, error)
	GetByStudentID(studentID string) (*entity.Member, error)
	GetByEmail(email string) (*entity.Member, error)
	Update(member *entity.Member) error
	UpdateProfile(memberID uint, updates map[string]interface{}) error
	UpdatePassword(memberID uint, newPassword string) error
	UpdateLastLogin(memberID uint) error
	// SetVerificationChallenge stores the hashed OTP challenge on the member
	// row, replacing any previous one.
	SetVerificationChallenge(memberID uint, codeHash, salt string, expiresAt time.Time) error
	// ClearVerificationChallenge marks the member verified and wipes the
	// challenge columns in a single update.
	ClearVerificationChallenge(memberID uint) error
	// DiscardVerificationChallenge wipes the challenge columns without
	// touching the verified flag or status. Used when a challenge expires.
	DiscardVerificationChallenge(memberID uint) error
	List(filter MemberFilter, limit, offset int) ([]entity.Member, int64, error)
	Delete(id uint) error
	Count() (int64, error)
}
