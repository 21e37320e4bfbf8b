package handlers

// Error codes carried in ErrorResponse.Code. Clients branch on these rather
// than on the message text.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeInvalidID = "invalid_id"
)
