package dto

// UpdateProfileRequest edits the editable profile fields. Omitted fields
// keep their current values.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

// SetRoleRequest changes a member's role (admin only).
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetStatusRequest changes a member's account status (admin only).
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
