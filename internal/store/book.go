package store

import "github.com/phrazzld/patient-api/internal/domain"

// BookStore defines the interface for book record storage.
type BookStore = RecordStore[domain.Book]

// BookSchema binds domain.Book to a RecordStore.
var BookSchema = Schema[domain.Book]{
	Entity: "book",
	ID:     func(b domain.Book) int { return b.ID },
	WithID: func(b domain.Book, id int) domain.Book {
		b.ID = id
		return b
	},
	Validate:  domain.Book.Validate,
	Clone:     domain.Book.Clone,
	NotFound:  ErrBookNotFound,
	Duplicate: ErrBookExists,
}
