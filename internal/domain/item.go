package domain

// Item is an inventory item.
type Item struct {
	ID       int    `json:"id"       yaml:"id"       validate:"gte=0"`
	Name     string `json:"name"     yaml:"name"     validate:"required,max=100"`
	Category string `json:"category" yaml:"category" validate:"required,max=50"`
}

// Validate checks every declared constraint and reports all failing fields.
func (i Item) Validate() error {
	return validateRecord(i)
}

// Clone returns a copy of i. Items hold no reference types.
func (i Item) Clone() Item {
	return i
}

// ItemPatch is a partial update for an Item.
type ItemPatch struct {
	Name     Optional[string] `json:"name"`
	Category Optional[string] `json:"category"`
}

// Apply returns a copy of current with the set fields merged in.
func (ip ItemPatch) Apply(current Item) Item {
	next := current
	if ip.Name.Set {
		next.Name = ip.Name.Value
	}
	if ip.Category.Set {
		next.Category = ip.Category.Value
	}
	return next
}
