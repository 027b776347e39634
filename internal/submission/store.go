package submission

import "context"

// Store abstracts submission persistence. Implementations return
// ErrNotFound when the (category, id) pair does not exist.
type Store interface {
	// Get loads a single submission by id.
	Get(ctx context.Context, cat Category, id string) (Record, error)

	// List returns every submission in the category, ordered by submission
	// time then id.
	List(ctx context.Context, cat Category) ([]Record, error)

	// Update applies the patch to an existing submission.
	Update(ctx context.Context, cat Category, id string, patch Patch) error

	// Create stores a new submission and returns its assigned id.
	Create(ctx context.Context, cat Category, rec Record) (string, error)
}
