package request

// CreateMenuItemRequest represents a menu item creation request
type CreateMenuItemRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=255"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

// UpdateMenuItemRequest represents a menu item update request
type UpdateMenuItemRequest struct {
	Name  *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Price *float64 `json:"price" binding:"omitempty,gt=0"`
}
