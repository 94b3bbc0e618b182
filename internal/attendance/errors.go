package attendance

import (
	"errors"
	"fmt"
	"net/http"
)

// ===== Error model (platform/auth, 他featureと同型) =====

type Code string

const (
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeNotFound          Code = "NOT_FOUND"
	CodeAlreadyCheckedIn  Code = "ALREADY_CHECKED_IN"
	CodeNoCheckInFound    Code = "NO_CHECK_IN_FOUND"
	CodeAlreadyCheckedOut Code = "ALREADY_CHECKED_OUT"
	CodeStoreUnavailable  Code = "STORE_UNAVAILABLE"
	CodeInternal          Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrInvalid(msg string) *APIError { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError {
	return &APIError{Code: CodeNotFound, Message: msg}
}
func ErrAlreadyCheckedIn() *APIError {
	return &APIError{Code: CodeAlreadyCheckedIn, Message: "already checked in today"}
}
func ErrNoCheckIn() *APIError {
	return &APIError{Code: CodeNoCheckInFound, Message: "no check-in found for today"}
}
func ErrAlreadyCheckedOut() *APIError {
	return &APIError{Code: CodeAlreadyCheckedOut, Message: "already checked out today"}
}

// ErrStore hides the persistence fault behind a stable code; the cause
// stays server-side only.
func ErrStore() *APIError {
	return &APIError{Code: CodeStoreUnavailable, Message: "attendance store unavailable"}
}

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument, CodeNoCheckInFound:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeAlreadyCheckedIn, CodeAlreadyCheckedOut:
			return http.StatusConflict
		case CodeStoreUnavailable:
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

type errDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func apiErr(code Code, msg string) errDTO {
	var e errDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func APIErrFrom(err error) errDTO {
	var api *APIError
	if errors.As(err, &api) {
		return apiErr(api.Code, api.Message)
	}
	return apiErr(CodeInternal, "internal error")
}
