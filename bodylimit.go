package endpoint

import (
	"errors"
	"fmt"
	"net/http"
)

// BodyLimit returns middleware that caps the request body at maxBytes. A
// JSON body that exceeds it is rejected with 413.
func BodyLimit(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bodyError classifies a body decoding failure.
func bodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return Errorf(http.StatusRequestEntityTooLarge, "request body exceeds %d bytes", mbe.Limit)
	}
	return fmt.Errorf("%w: %w", ErrBindBody, err)
}
