package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"newsletterplatform/internal/domain"
)

// RespondError is the single exit point for handler errors. Every error is
// logged with the request method and path. Operational errors keep their
// status and message; anything else becomes a generic 500.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Operational {
		logger.Warn("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", appErr.Status,
			"error", appErr.Message,
		)
		WriteJSONError(w, appErr.Status, codeForStatus(appErr.Status), appErr.Message)
		return
	}
	logger.Error("unhandled error",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeBadRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	default:
		return ErrCodeInternalError
	}
}
