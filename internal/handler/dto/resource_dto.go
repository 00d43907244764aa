package dto

// ResourceRequestSubmission is a member's proposal for a new resource.
// File-backed types carry the file as a multipart part next to these fields,
// link types carry the URL in link_url.
type ResourceRequestSubmission struct {
	SongTitle    string `form:"song_title" binding:"required"`
	Description  string `form:"description"`
	ResourceType string `form:"resource_type" binding:"required"`
	Visibility   string `form:"visibility"`
	LinkURL      string `form:"link_url"`
}

// RejectRequestBody rejects a pending resource request with a reason.
type RejectRequestBody struct {
	Reason string `json:"reason" binding:"required"`
}

// UpdateVisibilityRequest changes who can see a published resource.
type UpdateVisibilityRequest struct {
	Visibility string `json:"visibility" binding:"required"`
}
