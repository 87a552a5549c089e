package store

import "github.com/phrazzld/patient-api/internal/domain"

// ItemStore defines the interface for inventory item storage.
type ItemStore = RecordStore[domain.Item]

// ItemSchema binds domain.Item to a RecordStore.
var ItemSchema = Schema[domain.Item]{
	Entity: "item",
	ID:     func(i domain.Item) int { return i.ID },
	WithID: func(i domain.Item, id int) domain.Item {
		i.ID = id
		return i
	},
	Validate:  domain.Item.Validate,
	Clone:     domain.Item.Clone,
	NotFound:  ErrItemNotFound,
	Duplicate: ErrItemExists,
}
