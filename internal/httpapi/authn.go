package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"layanan.org/internal/audit"
	"layanan.org/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// requireAuth gates a handler behind a bearer token. A missing token is a
// 403, a present but invalid one a 401.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(authHeader)
		if strings.TrimSpace(header) == "" {
			writeError(w, http.StatusForbidden, "a token is required for authentication")
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			audit.LogEvent(r.Context(), "token_rejected", map[string]any{"path": r.URL.Path})
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		claims, err := a.tokens.Verify(token)
		if err != nil {
			audit.LogEvent(r.Context(), "token_rejected", map[string]any{"path": r.URL.Path})
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := auth.ContextWithIdentity(r.Context(), auth.Identity{Username: claims.Username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, bearer) {
		return "", errors.New("authorization header must use the Bearer scheme")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearer))
	if token == "" {
		return "", errors.New("bearer token is empty")
	}
	return token, nil
}
