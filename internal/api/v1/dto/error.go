package dto

// ErrorResponseDTO is the uniform JSON error body. It never carries stack
// traces or internal identifiers.
type ErrorResponseDTO struct {
	Error string `json:"error"`
}
