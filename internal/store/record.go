package store

import (
	"context"
	"fmt"
	"strings"
)

// RecordStore defines the contract for a collection of validated records
// keyed by an integer ID.
//
// Implementations must validate records on Create and after merging a patch
// on Update, and must never leave a record partially written when an
// operation fails.
type RecordStore[R any] interface {
	// Create validates and stores a new record and returns it as stored.
	// Under IDPolicySequential a zero ID is replaced by max(ID)+1.
	// Returns a *domain.ValidationError if the record is invalid and an error
	// wrapping ErrDuplicate if the ID is already taken.
	Create(ctx context.Context, record R) (R, error)

	// List returns a snapshot of all records in insertion order.
	List(ctx context.Context) ([]R, error)

	// Get retrieves a record by ID.
	// Returns an error wrapping ErrNotFound if it does not exist.
	Get(ctx context.Context, id int) (R, error)

	// Update merges the set fields of patch into the record, re-validates the
	// result and stores it. The ID never changes.
	// Returns an error wrapping ErrNotFound if the record does not exist and
	// a *domain.ValidationError if the merged record is invalid.
	Update(ctx context.Context, id int, patch Patch[R]) (R, error)

	// Delete removes a record by ID.
	// Returns an error wrapping ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int) error

	// Len returns the number of stored records.
	Len(ctx context.Context) int
}

// Patch is a partial update for a record of type R.
type Patch[R any] interface {
	// Apply returns a copy of current with the patch's set fields merged in.
	Apply(current R) R
}

// Schema binds a record type to a store: how to read and assign its ID, how
// to validate it, and how to copy it so the store never shares memory with
// callers.
type Schema[R any] struct {
	// Entity is the lower-case entity name used in errors and logs.
	Entity string

	ID       func(R) int
	WithID   func(R, int) R
	Validate func(R) error
	Clone    func(R) R

	// NotFound and Duplicate are the entity-specific sentinel errors.
	NotFound  error
	Duplicate error
}

// IDPolicy controls how a store obtains record IDs on create.
type IDPolicy string

const (
	// IDPolicyClient requires callers to supply a positive, unused ID.
	IDPolicyClient IDPolicy = "client"

	// IDPolicySequential assigns max(ID)+1 when the caller omits the ID and
	// still accepts an unused ID supplied by the caller.
	IDPolicySequential IDPolicy = "sequential"
)

// ParseIDPolicy converts a configuration value into an IDPolicy.
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch p := IDPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case IDPolicyClient, IDPolicySequential:
		return p, nil
	default:
		return "", fmt.Errorf("unknown id policy %q: must be %q or %q", s, IDPolicyClient, IDPolicySequential)
	}
}
