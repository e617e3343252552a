package domain

// CartItem is one checkout line. Lines are keyed by the
// (product, color, size) combination, each with its own quantity.
type CartItem struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Price     int64  `json:"price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// Key returns the composite line identity of the item.
func (c CartItem) Key() string {
	return c.ProductID + "|" + c.Color + "|" + c.Size
}

// CheckoutRequest is the order form posted before the WhatsApp handoff.
type CheckoutRequest struct {
	Name    string     `json:"name" validate:"required,min=2"`
	Email   string     `json:"email" validate:"omitempty,email"`
	Phone   string     `json:"phone" validate:"omitempty,phoneloose"`
	Article string     `json:"article"`
	Message string     `json:"message" validate:"required,min=8"`
	Items   []CartItem `json:"items" validate:"dive"`
}
