package request

// BillItemRequest represents one line of a bill-creation request
type BillItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"omitempty,min=1"`
}

// CreateBillRequest represents a bill creation request. Total is optional:
// when present the server stores the client-computed value, when absent the
// total is the sum of price times quantity over the items.
type CreateBillRequest struct {
	CustomerMobile string            `json:"customer_mobile" binding:"required"`
	Items          []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	Total          *float64          `json:"total" binding:"omitempty,min=0"`
}

// BillFilterRequest represents bill listing parameters
type BillFilterRequest struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}
