package dto

import "net/http"

// API error codes. Every code the storefront emits is listed in apiErrors.
const (
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeNotImplemented     = "ERR_NOT_IMPLEMENTED"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeSelectionRequired  = "ERR_SELECTION_REQUIRED"
	ErrCodeOutOfStock         = "ERR_OUT_OF_STOCK"
	ErrCodeQuantityLimit      = "ERR_QUANTITY_LIMIT"
	ErrCodeBadRequest         = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput       = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON        = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge    = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited        = "ERR_RATE_LIMITED"
)

// apiError ties an API code to its status and, when a domain error maps
// onto it, the domain code.
type apiError struct {
	status int
	domain string
}

var apiErrors = map[string]apiError{
	ErrCodeInternal:        {status: http.StatusInternalServerError},
	ErrCodeNotImplemented:  {status: http.StatusNotImplemented},
	ErrCodeValidation:      {status: http.StatusBadRequest},
	ErrCodeBadRequest:      {status: http.StatusBadRequest},
	ErrCodeInvalidJSON:     {status: http.StatusBadRequest},
	ErrCodeRequestTooLarge: {status: http.StatusRequestEntityTooLarge},
	ErrCodeRateLimited:     {status: http.StatusTooManyRequests},

	ErrCodeServiceUnavailable: {status: http.StatusServiceUnavailable, domain: "UNAVAILABLE"},
	ErrCodeNotFound:           {status: http.StatusNotFound, domain: "NOT_FOUND"},
	ErrCodeInvalidInput:       {status: http.StatusBadRequest, domain: "INVALID_INPUT"},
	ErrCodeSelectionRequired:  {status: http.StatusUnprocessableEntity, domain: "SELECTION_REQUIRED"},
	ErrCodeOutOfStock:         {status: http.StatusUnprocessableEntity, domain: "OUT_OF_STOCK"},
	ErrCodeQuantityLimit:      {status: http.StatusUnprocessableEntity, domain: "QUANTITY_LIMIT"},
}

var fromDomain = func() map[string]string {
	m := make(map[string]string)
	for code, e := range apiErrors {
		if e.domain != "" {
			m[e.domain] = code
		}
	}
	return m
}()

// GetHTTPStatus returns the status for an API or domain code; unknown
// codes are 500.
func GetHTTPStatus(code string) int {
	if e, ok := apiErrors[NormalizeErrorCode(code)]; ok {
		return e.status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode maps a domain code such as "OUT_OF_STOCK" to its API
// code. Anything else is returned as is.
func NormalizeErrorCode(code string) string {
	if api, ok := fromDomain[code]; ok {
		return api
	}
	return code
}
