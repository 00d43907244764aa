package entity

import (
	"log"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Member roles.
const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Member account statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// EmailDomain is the only domain choir accounts may register with. The local
// part must equal the lowercased student ID.
const EmailDomain = "my.sliit.lk"

var studentIDPattern = regexp.MustCompile(`^[A-Z]{2}\d{8}$`)

// Member represents a choir member account.
type Member struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	FirstName          string    `gorm:"size:100;not null" json:"first_name"`
	LastName           string    `gorm:"size:100;not null" json:"last_name"`
	StudentID          string    `gorm:"size:10;not null;uniqueIndex" json:"student_id"`
	Email              string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password           string    `gorm:"size:100;not null" json:"-"`
	PhoneNumber        string    `gorm:"size:20;not null;default:''" json:"phone_number"`
	Avatar             string    `gorm:"size:255;not null;default:''" json:"avatar"`
	Bio                string    `gorm:"size:500;not null;default:''" json:"bio"`
	Role               string    `gorm:"size:20;not null;default:'member'" json:"role"`     // member, moderator, admin
	Status             string    `gorm:"size:20;not null;default:'inactive'" json:"status"` // active, inactive, suspended
	PracticeAttendance int64     `gorm:"not null;default:0" json:"practice_attendance"`
	MemberSince        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"member_since"`

	EmailVerified         bool       `gorm:"not null;default:false" json:"email_verified"`
	VerificationCodeHash  *string    `gorm:"size:64" json:"-"`
	VerificationCodeSalt  *string    `gorm:"size:64" json:"-"`
	VerificationExpiresAt *time.Time `gorm:"type:timestamp" json:"-"`
	LastLoginAt           *time.Time `gorm:"type:timestamp" json:"last_login_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName defines the table name for GORM.
func (Member) TableName() string {
	return "members"
}

// NormalizeStudentID trims and uppercases a raw student ID.
func NormalizeStudentID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsValidStudentID reports whether a normalized student ID matches the
// required format: exactly 2 letters followed by 8 digits, e.g. CS12345678.
func IsValidStudentID(id string) bool {
	return studentIDPattern.MatchString(id)
}

// DerivedEmail returns the institutional email address for a normalized
// student ID, e.g. cs12345678@my.sliit.lk.
func DerivedEmail(studentID string) string {
	return strings.ToLower(studentID) + "@" + EmailDomain
}

// HasPendingVerification reports whether an unconsumed verification
// challenge is stored on the member.
func (m *Member) HasPendingVerification() bool {
	return m.VerificationCodeHash != nil && m.VerificationExpiresAt != nil
}

// BeforeSave hashes the password before persisting, but only if it is not
// already a bcrypt hash ("$2a$", "$2b$" or "$2y$" prefix).
func (m *Member) BeforeSave(tx *gorm.DB) error {
	if len(m.Password) > 0 && !strings.HasPrefix(m.Password, "$2a$") &&
		!strings.HasPrefix(m.Password, "$2b$") && !strings.HasPrefix(m.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(m.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[Member.BeforeSave] Failed to hash password for studentID=%s: %v", m.StudentID, err)
			return err
		}
		m.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword reports whether the given plaintext matches the stored hash.
func (m *Member) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password))
	return err == nil
}
