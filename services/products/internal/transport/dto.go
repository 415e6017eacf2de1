package transport

type CreateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

// ErrorResponse is the wire shape of every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
