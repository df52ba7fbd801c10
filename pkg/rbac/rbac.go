// Package rbac provides user-type based access control middleware.
package rbac

import (
	"net/http"

	"github.com/agrisetu/agrisetu/pkg/middleware"
	"github.com/agrisetu/agrisetu/pkg/response"
)

// HasUserType returns middleware that allows access only to users whose
// account type is one of the given types. Requires middleware.Auth to have
// already run so the claims are in the context.
func HasUserType(types ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userType := middleware.UserTypeFromCtx(r.Context())
			if userType == "" || !allowed[userType] {
				response.Forbidden(w, "Your account type cannot perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
