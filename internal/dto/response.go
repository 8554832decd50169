package dto

import "time"

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// FormErrorResponse re-renders a submitted form: ok=false plus
// field-level messages, delivered with a success HTTP status.
type FormErrorResponse struct {
	Ok        bool              `json:"ok"`
	Errors    map[string]string `json:"errors"`
	Timestamp time.Time         `json:"timestamp"`
}

func NewFormErrorResponse(errors map[string]string) FormErrorResponse {
	return FormErrorResponse{
		Ok:        false,
		Errors:    errors,
		Timestamp: time.Now(),
	}
}
