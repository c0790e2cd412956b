package dto

// ErrorResponse is the body of every non-2xx answer of the dashboard API.
type ErrorResponse struct {
	Error string `json:"error"`
	// Fields maps json field names to violation messages on validation failures.
	Fields map[string]string `json:"fields,omitempty"`
	// Recovery is a path the client can navigate to when the resource is gone.
	Recovery string `json:"recovery,omitempty"`
}
