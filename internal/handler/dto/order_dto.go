package dto

// OrderItemRequest is one requested line item.
type OrderItemRequest struct {
	MerchandiseID uint   `json:"merchandise_id" binding:"required"`
	Size          string `json:"size"`
	Quantity      int    `json:"quantity" binding:"required"`
}

// DeclineOrderRequest rejects a pending order with a reason shown to the
// member.
type DeclineOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// MerchandiseRequest creates or updates a catalog item. Sent as multipart
// form fields so an image can ride along.
type MerchandiseRequest struct {
	Name        string   `form:"name" binding:"required"`
	Description string   `form:"description"`
	Price       int64    `form:"price" binding:"required"`
	Sizes       []string `form:"sizes"`
	Stock       int      `form:"stock"`
	Category    string   `form:"category" binding:"required"`
	Status      string   `form:"status"`
}
