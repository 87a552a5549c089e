package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "wrapped ErrNotFound", err: fmt.Errorf("lookup: %w", ErrNotFound), expected: true},
		{name: "ErrPatientNotFound", err: ErrPatientNotFound, expected: true},
		{name: "ErrBookNotFound", err: ErrBookNotFound, expected: true},
		{name: "ErrItemNotFound", err: ErrItemNotFound, expected: true},
		{
			name:     "StoreError wrapping ErrPatientNotFound",
			err:      NewStoreError("patient", "get", "id 7", ErrPatientNotFound),
			expected: true,
		},
		{name: "duplicate is not not-found", err: ErrPatientExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrPatientExists", err: ErrPatientExists, expected: true},
		{name: "ErrBookExists", err: ErrBookExists, expected: true},
		{name: "ErrItemExists", err: ErrItemExists, expected: true},
		{name: "not found is not duplicate", err: ErrItemNotFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	withErr := NewStoreError("patient", "create", "id 1 already exists", ErrPatientExists)
	assert.Equal(t,
		"create operation on patient failed: id 1 already exists: record already exists: patient",
		withErr.Error())
	assert.ErrorIs(t, withErr, ErrPatientExists)
	assert.ErrorIs(t, withErr, ErrDuplicate)

	var storeErr *StoreError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", withErr), &storeErr))
	assert.Equal(t, "create", storeErr.Operation)

	bare := NewStoreError("book", "delete", "no such id", nil)
	assert.Equal(t, "delete operation on book failed: no such id", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
