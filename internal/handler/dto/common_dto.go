package dto

// PaginatedResponse wraps list endpoints with the total row count so the
// frontend can render pagination.
type PaginatedResponse struct {
	Items  interface{} `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// NewPaginatedResponse builds a paginated list response.
func NewPaginatedResponse(items interface{}, total int64, limit, offset int) PaginatedResponse {
	return PaginatedResponse{Items: items, Total: total, Limit: limit, Offset: offset}
}
