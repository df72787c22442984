package identity

import (
	"errors"
	"net/http"
	"strconv"
)

// UserIDHeader carries the verified user id. Authentication happens upstream;
// by the time a request reaches this service the header is trusted.
const UserIDHeader = "X-User-Id"

var ErrMissingUserID = errors.New("missing or invalid " + UserIDHeader + " header")

// UserID extracts the authenticated user id from the request.
func UserID(r *http.Request) (int64, error) {
	raw := r.Header.Get(UserIDHeader)
	if raw == "" {
		return 0, ErrMissingUserID
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrMissingUserID
	}

	return id, nil
}
