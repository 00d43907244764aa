package entity

import "time"

// Donation tiers.
const (
	TierSupporter  = "supporter"
	TierPatron     = "patron"
	TierBenefactor = "benefactor"
)

// Donation statuses.
const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
	DonationRefunded  = "refunded"
)

// Donation is a contribution recorded for the choir. Donors do not need a
// member account; MemberID links one when the donor was logged in.
type Donation struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	DonorName     string `gorm:"size:100;not null" json:"donor_name"`
	DonorEmail    string `gorm:"size:100;not null" json:"donor_email"`
	Amount        int64  `gorm:"not null" json:"amount"` // cents
	Currency      string `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Tier          string `gorm:"size:20;not null;default:'supporter'" json:"tier"`
	PaymentMethod string `gorm:"size:20;not null;default:'credit_card'" json:"payment_method"`
	// TransactionID is a generated unique reference, e.g. for reconciliation.
	TransactionID string  `gorm:"size:64;not null;uniqueIndex" json:"transaction_id"`
	Status        string  `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Message       string  `gorm:"size:1000;not null;default:''" json:"message"`
	IsAnonymous   bool    `gorm:"not null;default:false" json:"is_anonymous"`
	MemberID      *uint   `gorm:"index" json:"member_id,omitempty"`
	Member        *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Donation) TableName() string {
	return "donations"
}

// TierForAmount derives the donation tier from the amount in cents.
func TierForAmount(amount int64) string {
	switch {
	case amount >= 50000:
		return TierBenefactor
	case amount >= 10000:
		return TierPatron
	default:
		return TierSupporter
	}
}
