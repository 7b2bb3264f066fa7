package dto

// ErrorResponse represents a common API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AccessErrorResponse is returned by access checks that failed. Access is
// always denied in that case.
type AccessErrorResponse struct {
	Allowed bool   `json:"allowed"`
	Error   string `json:"error"`
}
