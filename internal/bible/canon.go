package bible

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/books.json
var booksJSON []byte

type booksFile struct {
	Books []Book `json:"books"`
}

// Canon is the ordered list of books. It is built once and never mutated.
type Canon struct {
	books []Book
	index map[string]int
}

func NewCanon(data []byte) (*Canon, error) {
	var f booksFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse books table: %w", err)
	}
	if len(f.Books) == 0 {
		return nil, fmt.Errorf("books table is empty")
	}

	c := &Canon{
		books: f.Books,
		index: make(map[string]int, len(f.Books)),
	}
	for i, b := range f.Books {
		if b.Chapters < 1 {
			return nil, fmt.Errorf("book %q has no chapters", b.Name)
		}
		c.index[b.Name] = i
	}
	return c, nil
}

// DefaultCanon returns the embedded 66-book table.
func DefaultCanon() *Canon {
	c, err := NewCanon(booksJSON)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Canon) Books() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

func (c *Canon) Len() int { return len(c.books) }

func (c *Canon) Book(name string) (Book, error) {
	i, ok := c.index[name]
	if !ok {
		return Book{}, fmt.Errorf("%w: %q", ErrUnknownBook, name)
	}
	return c.books[i], nil
}

// Index returns the zero-based position of the book, or -1.
func (c *Canon) Index(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

// Next returns the book after name. ok is false at the end of the canon.
func (c *Canon) Next(name string) (Book, bool) {
	i := c.Index(name)
	if i < 0 || i+1 >= len(c.books) {
		return Book{}, false
	}
	return c.books[i+1], true
}
