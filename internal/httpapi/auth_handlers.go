package httpapi

import (
	"errors"
	"net/http"
	"time"

	"layanan.org/internal/audit"
	"layanan.org/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginAdmin checks the administrator credential pair and issues a bearer
// token. Failures are reported with a single generic message.
func (a *API) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.verifier.Verify(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			audit.LogEvent(r.Context(), "login_failed", map[string]any{"username": req.Username})
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	issued, err := a.tokens.Issue(req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	audit.LogEvent(r.Context(), "login_success", map[string]any{"username": req.Username})
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "login successful",
		"token":     issued.Token,
		"issuedAt":  issued.IssuedAt.Format(time.RFC3339),
		"expiresAt": issued.ExpiresAt.Format(time.RFC3339),
	})
}

// Profile returns the identity carried by the verified token.
func (a *API) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username": identity.Username,
	})
}

// ProtectedRoute is a token smoke check for API consumers.
func (a *API) ProtectedRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "welcome to the protected route",
		"user": map[string]any{
			"username": identity.Username,
		},
	})
}
