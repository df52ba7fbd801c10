package middleware

import (
	"context"
	"net/http"

	"github.com/agrisetu/agrisetu/pkg/auth"
	"github.com/agrisetu/agrisetu/pkg/response"
)

type claimsKey struct{}

// Auth validates the request's JWT and stores the claims in the context.
// The token is read from the Authorization header or the auth cookie.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromRequest(r)
		if token == "" {
			response.Unauthorized(w, "Authentication required")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the authenticated claims, if any.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// UserIDFromCtx returns the authenticated user's ID, or "".
func UserIDFromCtx(ctx context.Context) string {
	if claims, ok := ClaimsFromCtx(ctx); ok {
		return claims.UserID
	}
	return ""
}

// UserTypeFromCtx returns the authenticated user's type, or "".
func UserTypeFromCtx(ctx context.Context) string {
	if claims, ok := ClaimsFromCtx(ctx); ok {
		return claims.UserType
	}
	return ""
}
