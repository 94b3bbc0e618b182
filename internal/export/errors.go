package export

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidArgument     Code = "INVALID_ARGUMENT"
	CodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"
	CodeStoreUnavailable    Code = "STORE_UNAVAILABLE"
	CodeInternal            Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrInvalid(msg string) *APIError { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrUnresolved(msg string) *APIError {
	return &APIError{Code: CodeUnresolvedReference, Message: msg}
}
func ErrStore() *APIError {
	return &APIError{Code: CodeStoreUnavailable, Message: "attendance store unavailable"}
}

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeUnresolvedReference:
			return http.StatusUnprocessableEntity
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

func apiErrFrom(err error) errDTO {
	var e errDTO
	var api *APIError
	if errors.As(err, &api) {
		e.Error.Code = api.Code
		e.Error.Message = api.Message
		return e
	}
	e.Error.Code = CodeInternal
	e.Error.Message = "internal error"
	return e
}
