package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookValidate(t *testing.T) {
	t.Parallel()

	genre := "Sci-Fi"
	valid := Book{Title: "Dune", Author: "Frank Herbert", Pages: 412, Genre: &genre}
	assert.NoError(t, valid.Validate())

	err := Book{Title: "Dune", Pages: -1}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{
		{Field: "author", Message: "is required"},
		{Field: "pages", Message: "must be greater than 0"},
	}, verr.Errors)
}

func TestBookPatchApply(t *testing.T) {
	t.Parallel()

	genre := "Sci-Fi"
	orig := Book{ID: 3, Title: "Dune", Author: "Frank Herbert", Pages: 412, Genre: &genre}
	next := BookPatch{Pages: Some(500), Genre: Null[string]()}.Apply(orig)

	assert.Equal(t, Book{ID: 3, Title: "Dune", Author: "Frank Herbert", Pages: 500}, next)
	require.NotNil(t, orig.Genre)
	assert.Equal(t, "Sci-Fi", *orig.Genre)
}

func TestItemValidateAndPatch(t *testing.T) {
	t.Parallel()

	item := Item{ID: 1, Name: "Laptop", Category: "Electronics"}
	assert.NoError(t, item.Validate())
	assert.ErrorIs(t, Item{Name: "Laptop"}.Validate(), ErrValidation)

	next := ItemPatch{Category: Some("Computers")}.Apply(item)
	assert.Equal(t, Item{ID: 1, Name: "Laptop", Category: "Computers"}, next)
	assert.Equal(t, "Electronics", item.Category)
}
