package middleware

import (
	"net/http"
	"strings"

	"github.com/SuperFitApp/SF-Backend/internal/token"
	"github.com/SuperFitApp/SF-Backend/internal/utils"
)

const bearerPrefix = "bearer "

// PublicPaths are route prefixes that skip token handling entirely: no
// identity is established and the request proceeds as anonymous. "/" matches
// only the landing page itself.
var PublicPaths = []string{
	"/",
	"/auth/login",
	"/auth/logout",
	"/static",
}

func isPublic(path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
		if p != "/" && strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// bearerToken returns the token from the Authorization header, or "" when the
// header is missing or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) || !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}

// IdentityMiddleware locates a candidate token (Authorization header first,
// then the session cookie), validates it, and attaches the resulting identity
// to the request context. It never rejects a request itself: a missing or
// invalid token just leaves the request anonymous, and the access rules
// further down decide whether anonymous is acceptable. That keeps public
// routes reachable even with a garbage token attached.
func IdentityMiddleware(codec *token.Codec, publicPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path, publicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			raw := bearerToken(r)
			if raw == "" {
				if cookie, err := r.Cookie("jwt_token"); err == nil {
					raw = cookie.Value
				}
			}
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := codec.Validate(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.WithIdentity(r.Context(), claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var allowed = map[string]struct{}{
	"http://localhost:5173":           {},
	"http://localhost:5174":           {},
	"https://app.superfit.app":        {},
	"https://staging.superfit.app":    {},
	"https://sf-backend.onrender.com": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it’s on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
