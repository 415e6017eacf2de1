package transport

type CreateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// ErrorResponse is the wire shape of every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
