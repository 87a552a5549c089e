package domain

// Book is a book record.
type Book struct {
	ID     int     `json:"id"              yaml:"id"              validate:"gte=0"`
	Title  string  `json:"title"           yaml:"title"           validate:"required,max=200"`
	Author string  `json:"author"          yaml:"author"          validate:"required,max=100"`
	Pages  int     `json:"pages"           yaml:"pages"           validate:"required,gt=0"`
	Genre  *string `json:"genre,omitempty" yaml:"genre,omitempty" validate:"omitempty,max=50"`
}

// Validate checks every declared constraint and reports all failing fields.
func (b Book) Validate() error {
	return validateRecord(b)
}

// Clone returns a deep copy of b.
func (b Book) Clone() Book {
	c := b
	c.Genre = clonePtr(b.Genre)
	return c
}

// BookPatch is a partial update for a Book.
type BookPatch struct {
	Title  Optional[string] `json:"title"`
	Author Optional[string] `json:"author"`
	Pages  Optional[int]    `json:"pages"`
	Genre  Optional[string] `json:"genre"`
}

// Apply returns a copy of current with the set fields merged in.
func (bp BookPatch) Apply(current Book) Book {
	next := current.Clone()
	if bp.Title.Set {
		next.Title = bp.Title.Value
	}
	if bp.Author.Set {
		next.Author = bp.Author.Value
	}
	if bp.Pages.Set {
		next.Pages = bp.Pages.Value
	}
	if bp.Genre.Set {
		next.Genre = bp.Genre.Ptr()
	}
	return next
}
