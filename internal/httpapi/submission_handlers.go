package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"layanan.org/internal/audit"
	"layanan.org/internal/submission"
)

type updateRequest struct {
	ID              string `json:"id"`
	ReferenceNumber string `json:"referenceNumber"`
	Status          string `json:"status"`
}

// patch treats empty strings as absent, mirroring how intake clients send
// partial updates.
func (req updateRequest) patch() submission.Patch {
	var p submission.Patch
	if ref := strings.TrimSpace(req.ReferenceNumber); ref != "" {
		p.ReferenceNumber = &ref
	}
	if s := strings.TrimSpace(req.Status); s != "" {
		status := submission.Status(s)
		p.Status = &status
	}
	return p
}

// ListSubmissions returns every record of the category.
func (a *API) ListSubmissions(w http.ResponseWriter, r *http.Request, cat submission.Category) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	recs, err := a.submissions.List(r.Context(), cat)
	if err != nil {
		handleSubmissionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// UpdateSubmission applies a partial update and returns the stored record.
func (a *API) UpdateSubmission(w http.ResponseWriter, r *http.Request, cat submission.Category) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req updateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := a.submissions.Update(r.Context(), cat, strings.TrimSpace(req.ID), req.patch())
	if err != nil {
		handleSubmissionError(w, err)
		return
	}

	audit.LogEvent(r.Context(), "submission_updated", map[string]any{
		"category": cat.Name,
		"id":       rec.ID,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "submission updated",
		"data":    rec,
	})
}

func handleSubmissionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submission.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, submission.ErrNotFound):
		writeError(w, http.StatusNotFound, "submission not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
