package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable classification of a failure, independent of
// the HTTP status it maps to. Services return kinds; handlers map codes.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindDuplicate        Kind = "duplicate"
	KindDuplicateBill    Kind = "duplicate_bill"
	KindRoomUnavailable  Kind = "room_unavailable"
	KindInvalidDateRange Kind = "invalid_date_range"
	KindUnauthorized     Kind = "unauthorized"
	KindForbidden        Kind = "forbidden"
	KindStorage          Kind = "storage"
	KindInternal         Kind = "internal"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	cause   error
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have permission to access this resource"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindValidation,
			Message: err.Error(),
			cause:   err,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Kind:    KindInternal,
			Message: err.Error(),
			cause:   err,
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName + " not found",
	}
}

// Duplicate returns a new Failure for a uniqueness violation.
func Duplicate(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDuplicate,
		Message: msg,
	}
}

// DuplicateBill returns a new Failure for a second bill on the same booking.
func DuplicateBill(bookingID string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDuplicateBill,
		Message: fmt.Sprintf("a bill already exists for booking %s", bookingID),
	}
}

// RoomUnavailable returns a new Failure for booking a room that is occupied.
func RoomUnavailable(roomNumber string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindRoomUnavailable,
		Message: fmt.Sprintf("room %s is not available", roomNumber),
	}
}

// InvalidDateRange returns a new Failure for a check-in/check-out pair that
// violates the booking date rules.
func InvalidDateRange(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidDateRange,
		Message: msg,
	}
}

// Storage wraps a collaborator I/O error. The cause stays reachable via
// errors.Unwrap for callers that need the driver error.
func Storage(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusInternalServerError,
		Kind:    KindStorage,
		Message: err.Error(),
		cause:   err,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDuplicate,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind, or KindInternal for foreign errors.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindInternal
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}
