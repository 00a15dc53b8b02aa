// Package i18n provides internationalization support for the catalog service.
package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInvalidQuery indicates a filter parameter that is not a number.
	ErrKeyInvalidQuery  = "error.invalid_query"
	ErrKeyInvalidID     = "error.invalid_id"
	ErrKeyInternalError = "error.internal_error"
	ErrKeyNotFound      = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a name or email already in use.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidReference indicates a product pointing at a missing category or brand.
	ErrKeyInvalidReference = "error.invalid_reference"
	// ErrKeyUnavailable indicates an open circuit breaker or unreachable backend.
	ErrKeyUnavailable = "error.service_unavailable"
	ErrKeyTimeout     = "error.timeout"
)

// Success message translation keys.
const (
	SuccessKeyCreated = "success.created"
	SuccessKeyUpdated = "success.updated"
	SuccessKeyDeleted = "success.deleted"
)
