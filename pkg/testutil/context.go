package testutil

import (
	"net/http"

	id "altscore/pkg/domain"
	"altscore/pkg/requestcontext"
)

// WithUserID adds a user ID to the request context, simulating what the auth
// middleware does for authenticated requests. Invalid UUIDs are ignored.
func WithUserID(req *http.Request, userID string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithUserID(req.Context(), parsed))
}

// WithRequestID adds a request ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
