package transport

import "time"

// Quantity binds as float64 so that non-integer values can be rejected
// with a quantity error instead of a bind failure.
type CreateOrderRequest struct {
	UserID    *uint    `json:"user_id"`
	ProductID *uint    `json:"product_id"`
	Quantity  *float64 `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type StatusUpdateResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// OrderDetail is the read-time joined view: the order snapshot plus the
// referenced user's and product's current display name.
type OrderDetail struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	ProductID   uint      `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
	UserName    string    `json:"user_name"`
	ProductName string    `json:"product_name"`
}

// UserOrder is the per-user listing row: the order snapshot plus the
// product's current name and price.
type UserOrder struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	ProductID    uint      `json:"product_id"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status"`
	TotalPrice   float64   `json:"total_price"`
	CreatedAt    time.Time `json:"created_at"`
	ProductName  string    `json:"product_name"`
	ProductPrice float64   `json:"product_price"`
}

// ErrorResponse is the wire shape of every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
