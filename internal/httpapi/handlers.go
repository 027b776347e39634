// Package httpapi is the HTTP layer of the submission portal.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"layanan.org/api/spec"
	"layanan.org/internal/auth"
	"layanan.org/internal/obs"
	"layanan.org/internal/submission"
)

const defaultMaxBodyBytes = 1 << 20 // 1 MiB

// Pinger reports backing-store health for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyProbe checks store connectivity.
type ReadyProbe struct {
	Store Pinger
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.Store == nil {
		return nil
	}
	return rp.Store.Ping(ctx)
}

// API wires handlers, middleware, and dependencies into one HTTP surface.
type API struct {
	mux         *http.ServeMux
	readyProbe  ReadyProbe
	version     string
	verifier    *auth.Verifier
	tokens      *auth.TokenService
	submissions *submission.Service
	maxBody     int64
}

// New builds the route table.
func New(rp ReadyProbe, version string, verifier *auth.Verifier, tokens *auth.TokenService, submissions *submission.Service) *API {
	a := &API{
		mux:         http.NewServeMux(),
		readyProbe:  rp,
		version:     version,
		verifier:    verifier,
		tokens:      tokens,
		submissions: submissions,
		maxBody:     defaultMaxBodyBytes,
	}

	// health/ready/docs
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/openapi.yaml", a.OpenAPISpec)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// auth
	a.mux.HandleFunc("/login-admin", a.LoginAdmin)
	a.mux.Handle("/profile", a.requireAuth(http.HandlerFunc(a.Profile)))
	a.mux.Handle("/api/protected-route", a.requireAuth(http.HandlerFunc(a.ProtectedRoute)))

	// submissions, one listing and one update route per category. These
	// stay open: intake frontends read and update records before staff
	// authentication was introduced, and existing clients depend on it.
	for _, cat := range submission.Categories() {
		cat := cat
		a.mux.HandleFunc("/api/"+cat.Name, func(w http.ResponseWriter, r *http.Request) {
			a.ListSubmissions(w, r, cat)
		})
		a.mux.HandleFunc("/api/"+cat.Name+"/update", func(w http.ResponseWriter, r *http.Request) {
			a.UpdateSubmission(w, r, cat)
		})
	}

	a.mux.HandleFunc("/", a.Root)

	return a
}

// Handler returns the fully wrapped handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = MaxBodyBytes(h, a.maxBody)
	h = SecurityHeaders(h)
	h = CORS(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "layanan-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(spec.OpenAPI)
}

// Root serves the service banner; anything else under "/" is a 404.
func (a *API) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "layanan-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// decodeJSON reads the body strictly: unknown fields and trailing data
// are rejected.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return nil
}
