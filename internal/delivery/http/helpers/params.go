package helpers

import (
	"net/http"
	"strconv"

	"newsletterplatform/internal/domain"
)

// ParseID reads the named path value and parses it as a positive integer ID.
// A non-numeric or non-positive value yields an operational 400 error.
func ParseID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.BadRequestError("Invalid id. ID must be a number.")
	}
	return id, nil
}
