package middleware

import (
	"net/http"

	"github.com/mssola/useragent"

	"altscore/pkg/requestcontext"
)

// ClientInfo condenses the caller's User-Agent header into a short client
// descriptor and injects it into the request context for the audit trail.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := requestcontext.WithClientInfo(r.Context(), describeClient(raw))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// describeClient renders "browser version (os)" for recognized agents and
// falls back to the raw header for API clients the parser cannot classify.
func describeClient(raw string) string {
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	desc := name
	if version != "" {
		desc += " " + version
	}
	if os := ua.OS(); os != "" {
		desc += " (" + os + ")"
	}
	if ua.Bot() {
		desc += " [bot]"
	}
	return desc
}
