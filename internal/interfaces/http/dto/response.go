package dto

import "time"

// Response is the envelope of every API reply.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail names one rejected field.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta is only set on listings, which are never paginated.
type Meta struct {
	Total int `json:"total"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func List(data any, total int) Response {
	return Response{Success: true, Data: data, Meta: &Meta{Total: total}}
}

type ErrorOption func(*ErrorInfo)

func RequestID(id string) ErrorOption {
	return func(e *ErrorInfo) { e.RequestID = id }
}

func Details(details []ValidationDetail) ErrorOption {
	return func(e *ErrorInfo) { e.Details = details }
}

// Failure builds an error envelope. Domain codes are translated to API codes.
func Failure(code, message string, opts ...ErrorOption) Response {
	info := &ErrorInfo{
		Code:      NormalizeErrorCode(code),
		Message:   message,
		Timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(info)
	}
	return Response{Error: info}
}
