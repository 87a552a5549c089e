package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalTracksPresence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantNull  bool
		wantValue int
	}{
		{"absent", `{}`, false, false, 0},
		{"null", `{"age": null}`, true, true, 0},
		{"zero", `{"age": 0}`, true, false, 0},
		{"value", `{"age": 46}`, true, false, 46},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var patch PatientPatch
			require.NoError(t, json.Unmarshal([]byte(tc.body), &patch))
			assert.Equal(t, tc.wantSet, patch.Age.Set)
			assert.Equal(t, tc.wantNull, patch.Age.Null)
			assert.Equal(t, tc.wantValue, patch.Age.Value)
			assert.False(t, patch.Name.Set, "other fields stay unset")
		})
	}
}

func TestOptionalPtr(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Null[string]().Ptr())
	p := Some("x").Ptr()
	require.NotNil(t, p)
	assert.Equal(t, "x", *p)
}

func TestOptionalMarshal(t *testing.T) {
	t.Parallel()
	out, err := json.Marshal(BookPatch{Title: Some("Dune"), Genre: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Dune","author":null,"pages":null,"genre":null}`, string(out))
}

func TestFromDecodeError(t *testing.T) {
	t.Parallel()

	t.Run("type mismatch on record field", func(t *testing.T) {
		t.Parallel()
		var p Patient
		err := json.Unmarshal([]byte(`{"name":"John","age":"old"}`), &p)
		require.Error(t, err)

		verr, ok := FromDecodeError(err)
		require.True(t, ok)
		require.Len(t, verr.Errors, 1)
		assert.Equal(t, "age", verr.Errors[0].Field)
		assert.Equal(t, "must be an integer", verr.Errors[0].Message)
		assert.True(t, errors.Is(verr, ErrValidation))
		assert.True(t, errors.Is(verr, ErrInvalidFormat))
	})

	t.Run("type mismatch inside optional", func(t *testing.T) {
		t.Parallel()
		var patch PatientPatch
		err := json.Unmarshal([]byte(`{"married":"yes"}`), &patch)
		require.Error(t, err)

		verr, ok := FromDecodeError(err)
		require.True(t, ok)
		assert.Equal(t, "must be a boolean", verr.Errors[0].Message)
	})

	t.Run("syntax errors are not validation errors", func(t *testing.T) {
		t.Parallel()
		var p Patient
		err := json.Unmarshal([]byte(`{"name":`), &p)
		require.Error(t, err)
		_, ok := FromDecodeError(err)
		assert.False(t, ok)
	})
}

func TestNewValidationErrorUnwrap(t *testing.T) {
	t.Parallel()
	err := NewValidationError("id", "is required", ErrInvalidID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Equal(t, "validation failed: id is required", err.Error())

	plain := NewValidationError("name", "is required", nil)
	assert.ErrorIs(t, plain, ErrValidation)
	assert.NotErrorIs(t, plain, ErrInvalidID)
}
