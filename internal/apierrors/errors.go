package apierrors

import (
	"errors"
	"net/http"
)

// APIStatus is implemented by errors that know which http status they map to.
type APIStatus interface {
	Status() Status
}

type Status struct {
	Code    int
	Message string
	Details string
}

type StatusError struct {
	ErrStatus Status
}

var _ APIStatus = (*StatusError)(nil)

func (e *StatusError) Error() string {
	if e.ErrStatus.Details != "" {
		return e.ErrStatus.Message + ": " + e.ErrStatus.Details
	}
	return e.ErrStatus.Message
}

func (e *StatusError) Status() Status {
	return e.ErrStatus
}

func newStatusError(code int, details string) *StatusError {
	return &StatusError{
		ErrStatus: Status{
			Code:    code,
			Message: http.StatusText(code),
			Details: details,
		},
	}
}

func NewBadRequest(details string) error {
	return newStatusError(http.StatusBadRequest, details)
}

func NewUnauthorized(details string) error {
	return newStatusError(http.StatusUnauthorized, details)
}

func NewForbidden(details string) error {
	return newStatusError(http.StatusForbidden, details)
}

func NewNotFound(details string) error {
	return newStatusError(http.StatusNotFound, details)
}

func NewConflict(details string) error {
	return newStatusError(http.StatusConflict, details)
}

func NewUnprocessableEntity(details string) error {
	return newStatusError(http.StatusUnprocessableEntity, details)
}

func NewBadGateway(details string) error {
	return newStatusError(http.StatusBadGateway, details)
}

func NewInternalServerError(details string) error {
	return newStatusError(http.StatusInternalServerError, details)
}

// AsAPIStatus returns the status carried by err, or nil.
func AsAPIStatus(err error) APIStatus {
	var status APIStatus
	if errors.As(err, &status) {
		return status
	}
	return nil
}

func hasCode(err error, code int) bool {
	if status := AsAPIStatus(err); status != nil {
		return status.Status().Code == code
	}
	return false
}

func IsBadRequestError(err error) bool {
	return hasCode(err, http.StatusBadRequest)
}

func IsUnauthorizedError(err error) bool {
	return hasCode(err, http.StatusUnauthorized)
}

func IsForbiddenError(err error) bool {
	return hasCode(err, http.StatusForbidden)
}

func IsNotFoundError(err error) bool {
	return hasCode(err, http.StatusNotFound)
}

func IsConflictError(err error) bool {
	return hasCode(err, http.StatusConflict)
}

func IsUnprocessableEntityError(err error) bool {
	return hasCode(err, http.StatusUnprocessableEntity)
}

func IsBadGatewayError(err error) bool {
	return hasCode(err, http.StatusBadGateway)
}

func IsInternalServerError(err error) bool {
	return hasCode(err, http.StatusInternalServerError)
}
