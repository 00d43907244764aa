package dto

// DonationRequest records a contribution. member_id is attached server-side
// for authenticated donors.
type DonationRequest struct {
	DonorName     string `json:"donor_name" binding:"required"`
	DonorEmail    string `json:"donor_email" binding:"required"`
	Amount        int64  `json:"amount" binding:"required"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Message       string `json:"message"`
	IsAnonymous   bool   `json:"is_anonymous"`
}

// SettleDonationRequest moves a donation to its final payment status.
type SettleDonationRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
}
