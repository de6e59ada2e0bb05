package access

import (
	"log"
	"net/http"

	"github.com/SuperFitApp/SF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// Require adapts a Rule into route middleware. The identity (if any) was
// attached by the identity middleware earlier in the chain; this is where an
// anonymous request on a protected route is finally rejected.
func Require(rule Rule, res Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identPtr *utils.Identity
			if ident, ok := utils.GetIdentityFromContext(r.Context()); ok {
				identPtr = &ident
			}

			resourceID := ""
			if rule.Ownership != nil {
				resourceID = chi.URLParam(r, rule.Ownership.Param)
			}

			outcome, err := Decide(identPtr, rule, resourceID, res)
			if err != nil {
				log.Printf("[access] resolver error path=%s: %v", r.URL.Path, err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			switch outcome {
			case OutcomeAllow:
				next.ServeHTTP(w, r)
			case OutcomeUnauthenticated:
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
			default:
				// Not-found and not-owned are deliberately the same answer.
				http.Error(w, "Forbidden", http.StatusForbidden)
			}
		})
	}
}
