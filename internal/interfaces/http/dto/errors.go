package dto

import "net/http"

// Transport-level error codes. Domain codes pass through unchanged; these
// cover failures raised by the HTTP layer itself.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_FAILED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes.
// Unknown codes fall back to 400: the bulk of unmapped domain codes are
// input-validation failures (INVALID_QUANTITY, INVALID_PRICE, ...).
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Resource errors
	"NOT_FOUND":          http.StatusNotFound,
	"ARTICLE_NOT_FOUND":  http.StatusNotFound,
	"ITEM_NOT_FOUND":     http.StatusNotFound,
	"USER_NOT_FOUND":     http.StatusNotFound,
	"ALREADY_EXISTS":     http.StatusConflict,
	"REFERENCE_CONFLICT": http.StatusConflict,

	// Concurrency
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Authentication and authorization
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,
	"FORBIDDEN":           http.StatusForbidden,

	// Business rules -> 422 Unprocessable Entity
	"INVALID_STATE_TRANSITION": http.StatusUnprocessableEntity,
	"SALE_NOT_EDITABLE":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":       http.StatusUnprocessableEntity,
	"CLIENT_REFERENCED":        http.StatusUnprocessableEntity,
	"NO_ITEMS":                 http.StatusUnprocessableEntity,
	"PAYMENT_EXCEEDS_AMOUNT":   http.StatusUnprocessableEntity,

	// A stored total disagreeing with its recomputed sum is a data fault
	"INVARIANT_VIOLATION": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
