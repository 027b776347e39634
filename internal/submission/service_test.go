package submission

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

func seed(t *testing.T, store *Memory, cat Category, rec Record) string {
	t.Helper()
	id, err := store.Create(context.Background(), cat, rec)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return id
}

func strPtr(s string) *string    { return &s }
func statusPtr(s Status) *Status { return &s }

func TestUpdateBothFields(t *testing.T) {
	store := NewMemory()
	svc := NewService(store)
	id := seed(t, store, Research, Record{
		Fields: map[string]any{"nama": "Budi"},
	})

	rec, err := svc.Update(context.Background(), Research, id, Patch{
		ReferenceNumber: strPtr("REF-2025-001"),
		Status:          statusPtr(StatusCompleted),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.ReferenceNumber != "REF-2025-001" {
		t.Fatalf("referenceNumber = %q", rec.ReferenceNumber)
	}
	if rec.Status != StatusCompleted {
		t.Fatalf("status = %q", rec.Status)
	}

	stored, err := store.Get(context.Background(), Research, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.ReferenceNumber != "REF-2025-001" || stored.Status != StatusCompleted {
		t.Fatalf("stored record not updated: %+v", stored)
	}
}

func TestUpdateStatusPreservesReference(t *testing.T) {
	store := NewMemory()
	svc := NewService(store)
	id := seed(t, store, Internship, Record{ReferenceNumber: "REF-7"})

	rec, err := svc.Update(context.Background(), Internship, id, Patch{
		Status: statusPtr(StatusInProcessing),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.ReferenceNumber != "REF-7" {
		t.Fatalf("referenceNumber changed: %q", rec.ReferenceNumber)
	}
	if rec.Status != StatusInProcessing {
		t.Fatalf("status = %q", rec.Status)
	}
}

func TestUpdateReferencePreservesStatus(t *testing.T) {
	store := NewMemory()
	svc := NewService(store)
	id := seed(t, store, Research, Record{Status: StatusInProcessing})

	rec, err := svc.Update(context.Background(), Research, id, Patch{
		ReferenceNumber: strPtr("REF-42"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Status != StatusInProcessing {
		t.Fatalf("status changed: %q", rec.Status)
	}
	if rec.ReferenceNumber != "REF-42" {
		t.Fatalf("referenceNumber = %q", rec.ReferenceNumber)
	}
}

func TestUpdateValidation(t *testing.T) {
	store := NewMemory()
	svc := NewService(store)
	id := seed(t, store, Research, Record{})

	cases := []struct {
		name  string
		id    string
		patch Patch
	}{
		{"missing id", "", Patch{Status: statusPtr(StatusCompleted)}},
		{"blank id", "   ", Patch{Status: statusPtr(StatusCompleted)}},
		{"empty patch", id, Patch{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), Research, tc.id, tc.patch)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Update = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc := NewService(NewMemory())
	_, err := svc.Update(context.Background(), Research, "missing", Patch{
		Status: statusPtr(StatusCompleted),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update = %v, want ErrNotFound", err)
	}
}

func TestUpdateAcceptsUnknownStatusValue(t *testing.T) {
	store := NewMemory()
	svc := NewService(store)
	id := seed(t, store, Research, Record{})

	rec, err := svc.Update(context.Background(), Research, id, Patch{
		Status: statusPtr(Status("Dalam Tinjauan")),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Status != "Dalam Tinjauan" {
		t.Fatalf("status = %q", rec.Status)
	}
}

func TestListOrderingAndIsolation(t *testing.T) {
	store := NewMemory()
	svc := NewService(store)

	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	seed(t, store, Research, Record{ID: "b", SubmittedAt: base.Add(time.Hour)})
	seed(t, store, Research, Record{ID: "a", SubmittedAt: base})
	seed(t, store, Internship, Record{ID: "c", SubmittedAt: base})

	recs, err := svc.List(context.Background(), Research)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].ID != "a" || recs[1].ID != "b" {
		t.Fatalf("order = %s, %s", recs[0].ID, recs[1].ID)
	}

	other, err := svc.List(context.Background(), Internship)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(other) != 1 || other[0].ID != "c" {
		t.Fatalf("internship listing = %+v", other)
	}
}

func TestListEmptyCategory(t *testing.T) {
	svc := NewService(NewMemory())
	recs, err := svc.List(context.Background(), Internship)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if recs == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(recs) != 0 {
		t.Fatalf("len = %d", len(recs))
	}
}

func TestRecordJSONShape(t *testing.T) {
	rec := Record{
		ID:          "abc",
		Status:      StatusNotProcessed,
		SubmittedAt: time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC),
		Fields:      map[string]any{"nama": "Siti", "instansi": "UI"},
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc["id"] != "abc" {
		t.Fatalf("id = %v", doc["id"])
	}
	if doc["status"] != string(StatusNotProcessed) {
		t.Fatalf("status = %v", doc["status"])
	}
	if doc["timestamp"] != "2025-02-01T08:30:00Z" {
		t.Fatalf("timestamp = %v", doc["timestamp"])
	}
	if doc["nama"] != "Siti" {
		t.Fatalf("nama = %v", doc["nama"])
	}
	if _, ok := doc["referenceNumber"]; ok {
		t.Fatal("referenceNumber should be omitted when empty")
	}

	rec.ReferenceNumber = "REF-1"
	raw, err = json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc["referenceNumber"] != "REF-1" {
		t.Fatalf("referenceNumber = %v", doc["referenceNumber"])
	}
}

func TestCategoryByName(t *testing.T) {
	cat, err := CategoryByName("penelitian")
	if err != nil {
		t.Fatalf("CategoryByName: %v", err)
	}
	if cat.Path != "pelayanan/penelitian/data" {
		t.Fatalf("path = %q", cat.Path)
	}

	cat, err = CategoryByName("magang")
	if err != nil {
		t.Fatalf("CategoryByName: %v", err)
	}
	if cat.Path != "pelayanan/magang/magang" {
		t.Fatalf("path = %q", cat.Path)
	}

	if _, err := CategoryByName("perizinan"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}

func TestMemoryConcurrentUpdates(t *testing.T) {
	store := NewMemory()
	svc := NewService(store)
	id := seed(t, store, Research, Record{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Update(context.Background(), Research, id, Patch{
				Status: statusPtr(StatusInProcessing),
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.List(context.Background(), Research); err != nil {
				t.Errorf("List: %v", err)
			}
		}()
	}
	wg.Wait()

	rec, err := store.Get(context.Background(), Research, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != StatusInProcessing {
		t.Fatalf("status = %q", rec.Status)
	}
}
