package middleware

import (
	"net/http"
	"strings"

	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

type tokenValidator interface {
	Validate(token string) (ctxutil.Identity, error)
}

// Auth extracts and validates the bearer token, storing the caller identity
// in the request context. Requests without a token pass through anonymously;
// handlers decide whether an identity is required.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			identity, err := validator.Validate(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "Bearer ") {
		return ""
	}
	return auth[7:]
}
