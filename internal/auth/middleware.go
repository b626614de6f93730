package auth

import (
	"context"
	"currencyconverter/internal/domain"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	MessageUnauthorized = "Authentication is required to access this resource."
	MessageForbidden    = "You do not have permission to access this resource."
)

type ctxKey struct{}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok
}

// Authenticate rejects requests without a valid bearer token with 401.
func Authenticate(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.FromRequest(r)
			if err != nil {
				logrus.WithError(err).WithField("path", r.URL.Path).Debug("request rejected: unauthenticated")
				writeEnvelope(w, http.StatusUnauthorized, domain.Fail[string](MessageUnauthorized))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole must run after Authenticate. Callers with another role get 403.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeEnvelope(w, http.StatusUnauthorized, domain.Fail[string](MessageUnauthorized))
				return
			}
			if claims.Role != role {
				writeEnvelope(w, http.StatusForbidden, domain.Fail[string](MessageForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeEnvelope(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
