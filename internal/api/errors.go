package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags where an Error came from, so callers can branch without string
// matching.
type Kind int

const (
	// KindValidation means a required parameter failed a local check and no
	// request was sent.
	KindValidation Kind = iota + 1
	// KindNetwork means no response was received.
	KindNetwork
	// KindServer means the server answered with a non-2xx status.
	KindServer
)

// Error is the single error shape every client operation returns.
type Error struct {
	Kind    Kind
	Status  int // HTTP status for KindServer, zero otherwise
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func IsValidation(err error) bool { return hasKind(err, KindValidation) }
func IsNetwork(err error) bool    { return hasKind(err, KindNetwork) }
func IsServer(err error) bool     { return hasKind(err, KindServer) }

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func validationErr(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// required rejects empty parameters before any network call.
func required(value, name string) error {
	if value == "" {
		return validationErr("%s is required", name)
	}
	return nil
}

func networkErr(op string, err error) *Error {
	msg := "Network error. Please check your connection and try again."
	var wrapped error
	if err != nil {
		if err.Error() != "" {
			msg = err.Error()
		}
		wrapped = fmt.Errorf("%s: %w", op, err)
	}
	return &Error{Kind: KindNetwork, Message: msg, Err: wrapped}
}

// serverErr maps an HTTP status to the fixed user-facing message table.
// serverMsg is whatever message/error field the response body carried.
func serverErr(op string, status int, serverMsg string) *Error {
	var msg string
	switch status {
	case http.StatusBadRequest:
		msg = orDefault(serverMsg, "Invalid request. Please check your input.")
	case http.StatusUnauthorized:
		msg = "Unauthorized. Please login again."
	case http.StatusForbidden:
		msg = "Access denied. You do not have permission to perform this action."
	case http.StatusNotFound:
		msg = "Resource not found."
	case http.StatusUnprocessableEntity:
		msg = orDefault(serverMsg, "Invalid data provided.")
	case http.StatusInternalServerError:
		msg = orDefault(serverMsg, "Server error. Please try again later.")
	default:
		msg = orDefault(serverMsg, fmt.Sprintf("An error occurred during %s.", op))
	}
	return &Error{Kind: KindServer, Status: status, Message: msg}
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
