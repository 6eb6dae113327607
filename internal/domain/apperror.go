package domain

import "net/http"

// AppError is an anticipated, user-safe failure carrying a fixed HTTP status.
// Operational errors have their message echoed to the caller verbatim;
// anything else is reported to the caller as a generic internal error.
type AppError struct {
	Status      int
	Message     string
	Operational bool
}

func (e *AppError) Error() string { return e.Message }

// NewAppError returns an operational AppError with the given message and status.
func NewAppError(message string, status int) *AppError {
	return &AppError{Status: status, Message: message, Operational: true}
}

// NotFoundError returns an operational 404 AppError.
func NotFoundError(message string) *AppError {
	return NewAppError(message, http.StatusNotFound)
}

// ConflictError returns an operational 409 AppError.
func ConflictError(message string) *AppError {
	return NewAppError(message, http.StatusConflict)
}

// UnauthorizedError returns an operational 401 AppError.
func UnauthorizedError(message string) *AppError {
	return NewAppError(message, http.StatusUnauthorized)
}

// BadRequestError returns an operational 400 AppError.
func BadRequestError(message string) *AppError {
	return NewAppError(message, http.StatusBadRequest)
}
