package middleware

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// allowedOriginsEnv lists extra origins, comma separated, that may call the API from a browser
const allowedOriginsEnv = "WEB_ALLOWED_ORIGINS"

func parseAllowedOrigins() mapset.Set[string] {
	origins := mapset.NewSet[string]()
	for o := range strings.SplitSeq(os.Getenv(allowedOriginsEnv), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins.Add(o)
		}
	}
	return origins
}

// isOriginAllowed reports whether the origin gets CORS headers.
// Any localhost origin is allowed so a local UI can talk to the API.
func isOriginAllowed(origin string, allowed mapset.Set[string]) bool {
	if origin == "" {
		return false
	}
	if u, err := url.Parse(origin); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() == "localhost" {
		return true
	}
	return allowed.Contains(origin)
}

// CORS answers preflight requests and echoes allowed origins.
// The API is read mostly, only GET and POST are offered.
func CORS() func(http.Handler) http.Handler {
	allowed := parseAllowedOrigins()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if origin := r.Header.Get("Origin"); isOriginAllowed(origin, allowed) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-Id")
			h.Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders forbids framing and content sniffing of API responses.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}
}
