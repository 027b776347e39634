// Package submission holds the domain model for citizen service
// submissions: research permit requests and internship applications.
package submission

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates no submission exists with the given id.
	ErrNotFound = errors.New("submission: not found")

	// ErrInvalidInput indicates the request failed validation.
	ErrInvalidInput = errors.New("submission: invalid input")

	// ErrUnknownCategory indicates the category name is not served.
	ErrUnknownCategory = errors.New("submission: unknown category")
)

// Status is the processing state of a submission.
type Status string

const (
	StatusNotProcessed Status = "Belum Diproses"
	StatusInProcessing Status = "Sedang Diproses"
	StatusCompleted    Status = "Selesai"
)

// Known reports whether s is one of the recognized statuses. Updates do not
// enforce this; it exists for callers that want to warn on free-form values.
func (s Status) Known() bool {
	switch s {
	case StatusNotProcessed, StatusInProcessing, StatusCompleted:
		return true
	}
	return false
}

// Category identifies one submission collection. Name is the URL segment,
// Path the storage collection key.
type Category struct {
	Name string
	Path string
}

var (
	Research   = Category{Name: "penelitian", Path: "pelayanan/penelitian/data"}
	Internship = Category{Name: "magang", Path: "pelayanan/magang/magang"}
)

// Categories lists the served submission categories.
func Categories() []Category {
	return []Category{Research, Internship}
}

// CategoryByName resolves a URL segment to its category.
func CategoryByName(name string) (Category, error) {
	for _, c := range Categories() {
		if c.Name == name {
			return c, nil
		}
	}
	return Category{}, ErrUnknownCategory
}

// Record is one stored submission document. Fields carries the free-form
// attributes captured at intake (applicant name, institution, and so on);
// the named fields are the ones the portal manages.
type Record struct {
	ID              string
	ReferenceNumber string
	Status          Status
	SubmittedAt     time.Time
	Fields          map[string]any
}

// MarshalJSON flattens Fields alongside the managed attributes so clients
// see one flat document per submission.
func (r Record) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(r.Fields)+4)
	for k, v := range r.Fields {
		doc[k] = v
	}
	doc["id"] = r.ID
	doc["status"] = string(r.Status)
	doc["timestamp"] = r.SubmittedAt.UTC().Format(time.RFC3339)
	if r.ReferenceNumber != "" {
		doc["referenceNumber"] = r.ReferenceNumber
	}
	return json.Marshal(doc)
}

// Clone returns a deep-enough copy for handing records across goroutines.
func (r Record) Clone() Record {
	out := r
	if r.Fields != nil {
		out.Fields = make(map[string]any, len(r.Fields))
		for k, v := range r.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

// Patch describes a partial update. Nil pointers mean "leave unchanged".
type Patch struct {
	ReferenceNumber *string
	Status          *Status
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.ReferenceNumber == nil && p.Status == nil
}
