package fitbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// ErrorKind is the category of a failed provider call
type ErrorKind string

const (
	KindExpiredToken      ErrorKind = "expired_token"
	KindInvalidToken      ErrorKind = "invalid_token"
	KindReconnectRequired ErrorKind = "reconnect_required"
	KindInvalidRequest    ErrorKind = "invalid_request"
	KindRateLimit         ErrorKind = "rate_limit"
	KindNetworkError      ErrorKind = "network_error"
	KindTimeout           ErrorKind = "timeout"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindForbidden         ErrorKind = "forbidden"
	KindNotFound          ErrorKind = "not_found"
	KindServerError       ErrorKind = "server_error"
	KindUnknownError      ErrorKind = "unknown_error"
)

var ErrMalformedResponse = errors.New("malformed Fitbit response")

// APIError describes a failed provider call. Status is 0 when no HTTP response was received.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("fitbit %s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("fitbit %s: %s", e.Kind, e.Message)
}

// ClassifyStatus maps the status of a completed but unsuccessful response to an error
func ClassifyStatus(status int) *APIError {
	switch status {
	case http.StatusBadRequest:
		return &APIError{Kind: KindInvalidRequest, Status: status, Message: "Invalid request"}
	case http.StatusUnauthorized:
		return &APIError{Kind: KindUnauthorized, Status: status, Message: "Unauthorized"}
	case http.StatusForbidden:
		return &APIError{Kind: KindForbidden, Status: status, Message: "Forbidden"}
	case http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Status: status, Message: "Resource not found"}
	case http.StatusTooManyRequests:
		return &APIError{Kind: KindRateLimit, Status: status, Message: "Rate limit exceeded"}
	case http.StatusInternalServerError:
		return &APIError{Kind: KindServerError, Status: status, Message: "Internal server error"}
	default:
		return &APIError{Kind: KindUnknownError, Status: status, Message: "Unknown error"}
	}
}

// errorBody is the provider's error envelope
type errorBody struct {
	Errors []struct {
		ErrorType string `json:"errorType"`
		Message   string `json:"message"`
	} `json:"errors"`
}

// ClassifyResponse classifies like ClassifyStatus but lets a 401 body name the token problem
func ClassifyResponse(status int, body []byte) *APIError {
	apiErr := ClassifyStatus(status)
	if status != http.StatusUnauthorized || len(body) == 0 {
		return apiErr
	}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Errors) == 0 {
		return apiErr
	}

	first := envelope.Errors[0]
	switch ErrorKind(first.ErrorType) {
	case KindExpiredToken:
		return &APIError{Kind: KindExpiredToken, Status: status, Message: nonEmpty(first.Message, "Access token expired")}
	case KindInvalidToken:
		return &APIError{Kind: KindInvalidToken, Status: status, Message: nonEmpty(first.Message, "Access token invalid")}
	}
	return apiErr
}

// ClassifyTransport maps a failure that happened before a response was received
func ClassifyTransport(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: "Request timed out"}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Message: "Request timed out"}
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) {
		return &APIError{Kind: KindNetworkError, Message: "No internet connection"}
	}

	return &APIError{Kind: KindUnknownError, Message: "An unexpected error occurred"}
}

// KindOf returns the kind carried by err, or empty when err is not a provider error
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
