package dto

import "net/http"

// Transport-level error codes. Domain error codes pass through unchanged and
// get their status from domainErrorStatus below.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// domainErrorStatus maps domain error codes to HTTP status codes. Codes not
// listed here fall back to 500 so a new domain error surfaces loudly instead
// of masquerading as a client mistake.
var domainErrorStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	"NOT_FOUND": http.StatusNotFound,

	"DUPLICATE_RUBRIC":     http.StatusConflict,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	// Malformed input
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_DESCRIPTION":  http.StatusBadRequest,
	"INVALID_AMOUNT":       http.StatusBadRequest,
	"INVALID_TYPE":         http.StatusBadRequest,
	"INVALID_STATUS":       http.StatusBadRequest,
	"INVALID_DUE_DATE":     http.StatusBadRequest,
	"INVALID_PAYMENT_DATE": http.StatusBadRequest,
	"INVALID_COUNT":        http.StatusBadRequest,
	"INVALID_DISTRIBUTION": http.StatusBadRequest,
	"INVALID_COMPETENCE":   http.StatusBadRequest,
	"INVALID_RUBRIC":       http.StatusBadRequest,
	"INVALID_REVENUE_TYPE": http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_CODE":         http.StatusBadRequest,
	"INVALID_PERIOD":       http.StatusBadRequest,
	"INVALID_MODE":         http.StatusBadRequest,
	"INVALID_QUERY":        http.StatusBadRequest,
	"INVALID_STATEMENT":    http.StatusBadRequest,

	// Well-formed input rejected by a business rule
	"INVALID_SPLIT":    http.StatusUnprocessableEntity,
	"INVALID_STATE":    http.StatusUnprocessableEntity,
	"RUBRIC_NOT_FOUND": http.StatusUnprocessableEntity,
	"RUBRIC_IN_USE":    http.StatusUnprocessableEntity,

	"INSIGHT_DISABLED": http.StatusServiceUnavailable,
	"INSIGHT_FAILED":   http.StatusBadGateway,
}

// HTTPStatus returns the HTTP status for a domain error code
func HTTPStatus(code string) int {
	if status, ok := domainErrorStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
