// Package types holds the JSON envelopes every POS endpoint answers with.
package types

// RequestIDHeader carries the request id between terminals and the API.
const RequestIDHeader = "X-Request-Id"

// SuccessEnvelope wraps a successful payload as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the body of a failed request. RequestID echoes the
// X-Request-Id header so a cashier can quote it when a sale fails.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	Retryable bool   `json:"retryable"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
