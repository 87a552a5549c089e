package store_test

import (
	"testing"

	"github.com/phrazzld/patient-api/internal/domain"
	"github.com/phrazzld/patient-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    store.IDPolicy
		wantErr bool
	}{
		{in: "client", want: store.IDPolicyClient},
		{in: "sequential", want: store.IDPolicySequential},
		{in: " Sequential ", want: store.IDPolicySequential},
		{in: "", wantErr: true},
		{in: "uuid", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := store.ParseIDPolicy(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSchemas(t *testing.T) {
	t.Parallel()

	t.Run("patient", func(t *testing.T) {
		p := domain.Patient{Name: "John", Age: 45}
		withID := store.PatientSchema.WithID(p, 9)
		assert.Equal(t, 9, store.PatientSchema.ID(withID))
		assert.Equal(t, 0, p.ID, "WithID must not mutate its argument")
		assert.NoError(t, store.PatientSchema.Validate(withID))
		assert.Equal(t, "patient", store.PatientSchema.Entity)
		assert.ErrorIs(t, store.PatientSchema.NotFound, store.ErrNotFound)
		assert.ErrorIs(t, store.PatientSchema.Duplicate, store.ErrDuplicate)
	})

	t.Run("book", func(t *testing.T) {
		b := store.BookSchema.WithID(domain.Book{Title: "Dune", Author: "Frank Herbert", Pages: 412}, 2)
		assert.Equal(t, 2, store.BookSchema.ID(b))
		assert.NoError(t, store.BookSchema.Validate(b))
	})

	t.Run("item", func(t *testing.T) {
		i := store.ItemSchema.WithID(domain.Item{Name: "Desk Chair", Category: "Furniture"}, 2)
		assert.Equal(t, 2, store.ItemSchema.ID(i))
		assert.Equal(t, i, store.ItemSchema.Clone(i))
		assert.ErrorIs(t, store.ItemSchema.Validate(domain.Item{}), domain.ErrValidation)
	})
}
