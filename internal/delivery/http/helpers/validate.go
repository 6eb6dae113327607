package helpers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Validator is implemented by request DTOs that support validation.
// Validate collects every failed rule; nil or empty means valid.
type Validator interface {
	Validate() []FieldError
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and, if dest implements Validator, runs Validate(). On decode failure it writes
// a 400 bad_request error with a fixed message, keeping the json error out of the
// response; on validation failure it writes a 400 validation_error with the field
// details. Both failures are logged with the request method and path.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		logger.Warn("request body rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body")
		return false
	}
	if v, ok := dest.(Validator); ok {
		if fields := v.Validate(); len(fields) > 0 {
			logger.Warn("validation failed",
				"method", r.Method,
				"path", r.URL.Path,
				"fields", len(fields),
			)
			WriteValidationError(w, fields)
			return false
		}
	}
	return true
}
