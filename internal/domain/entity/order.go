package entity

import "time"

// Order statuses. An order starts pending and takes exactly one transition
// to a terminal state.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDeclined  = "declined"
)

// Order is a merchandise order submitted by a member with a payment receipt.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	MemberID    uint        `gorm:"not null;index" json:"member_id"`
	Member      *Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"` // cents
	ReceiptURL  string      `gorm:"size:512;not null" json:"receipt_url"`
	ReceiptBlobID string    `gorm:"size:255;not null;default:''" json:"-"`

	Status        string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DeclineReason *string    `gorm:"size:500" json:"decline_reason,omitempty"`
	VerifiedByID  *uint      `gorm:"index" json:"verified_by_id,omitempty"`
	VerifiedBy    *Member    `gorm:"foreignKey:VerifiedByID" json:"verified_by,omitempty"`
	VerifiedAt    *time.Time `gorm:"type:timestamp" json:"verified_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// IsPending reports whether the order can still be reviewed or deleted by
// its owner.
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// OrderItem is a line item snapshot. Name and unit price are copied from the
// merchandise at order time so later catalog edits do not rewrite history.
type OrderItem struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	OrderID       uint   `gorm:"not null;index" json:"-"`
	MerchandiseID uint   `gorm:"not null" json:"merchandise_id"`
	Name          string `gorm:"size:100;not null" json:"name"`
	Size          string `gorm:"size:10;not null" json:"size"`
	Quantity      int    `gorm:"not null" json:"quantity"`
	UnitPrice     int64  `gorm:"not null" json:"unit_price"` // cents
}

func (OrderItem) TableName() string {
	return "order_items"
}
