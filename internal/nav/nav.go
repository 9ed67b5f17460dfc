// Package nav tracks the book → chapter → verse drill-down.
package nav

import (
	"errors"
	"fmt"

	"votd-tui/internal/bible"
)

type Page int

const (
	SelectBook Page = iota
	SelectChapter
	SelectVerse
	ShowVerse
)

func (p Page) String() string {
	switch p {
	case SelectBook:
		return "Select Book"
	case SelectChapter:
		return "Select Chapter"
	case SelectVerse:
		return "Select Verse"
	case ShowVerse:
		return "Verse"
	}
	return fmt.Sprintf("Page(%d)", int(p))
}

var (
	ErrNoBook            = errors.New("no book selected")
	ErrNoChapter         = errors.New("no chapter selected")
	ErrChapterOutOfRange = errors.New("chapter out of range")
	ErrEndOfCanon        = errors.New("already at the last chapter of the last book")
)

// Request is a verse lookup stamped with the navigator generation that issued
// it. Responses for an older generation must be dropped.
type Request struct {
	Ref        bible.VerseRef
	Generation uint64
}

type Navigator struct {
	canon      *bible.Canon
	page       Page
	book       *bible.Book
	chapter    int
	verse      *bible.VerseRef
	generation uint64
}

func New(canon *bible.Canon) *Navigator {
	return &Navigator{canon: canon}
}

func (n *Navigator) Page() Page { return n.page }

func (n *Navigator) Book() (bible.Book, bool) {
	if n.book == nil {
		return bible.Book{}, false
	}
	return *n.book, true
}

// Chapter returns the selected chapter, or 0.
func (n *Navigator) Chapter() int { return n.chapter }

func (n *Navigator) Verse() (bible.VerseRef, bool) {
	if n.verse == nil {
		return bible.VerseRef{}, false
	}
	return *n.verse, true
}

func (n *Navigator) Generation() uint64 { return n.generation }

// Current reports whether gen is the latest issued generation.
func (n *Navigator) Current(gen uint64) bool { return gen == n.generation }

func (n *Navigator) SelectBook(name string) error {
	b, err := n.canon.Book(name)
	if err != nil {
		return err
	}
	n.book = &b
	n.chapter = 0
	n.verse = nil
	n.generation++
	n.page = SelectChapter
	return nil
}

func (n *Navigator) SelectChapter(chapter int) error {
	if n.book == nil {
		return ErrNoBook
	}
	if chapter < 1 || chapter > n.book.Chapters {
		return fmt.Errorf("%w: %s has %d chapters, got %d", ErrChapterOutOfRange, n.book.Name, n.book.Chapters, chapter)
	}
	n.chapter = chapter
	n.verse = nil
	n.generation++
	n.page = SelectVerse
	return nil
}

func (n *Navigator) SelectVerse(verse string) (Request, error) {
	if n.book == nil {
		return Request{}, ErrNoBook
	}
	if n.chapter == 0 {
		return Request{}, ErrNoChapter
	}
	ref := bible.VerseRef{Book: n.book.Name, Chapter: n.chapter, Verse: verse}
	n.verse = &ref
	n.generation++
	n.page = ShowVerse
	return Request{Ref: ref, Generation: n.generation}, nil
}

// Next moves to the following chapter, rolling into the next book after the
// last chapter. At the end of the canon the state is left untouched.
func (n *Navigator) Next() error {
	if n.book == nil {
		return ErrNoBook
	}
	if n.chapter == 0 {
		return ErrNoChapter
	}

	if n.chapter < n.book.Chapters {
		n.chapter++
	} else {
		next, ok := n.canon.Next(n.book.Name)
		if !ok {
			return ErrEndOfCanon
		}
		n.book = &next
		n.chapter = 1
	}

	n.verse = nil
	n.generation++
	n.page = SelectVerse
	return nil
}

// Previous steps back one page. Selections are kept so Advance can restore them.
func (n *Navigator) Previous() {
	if n.page > SelectBook {
		n.page--
	}
}

// Advance re-enters the next page when its selection survived a Previous.
// It returns false when there is nothing to restore.
func (n *Navigator) Advance() bool {
	switch n.page {
	case SelectBook:
		if n.book == nil {
			return false
		}
	case SelectChapter:
		if n.chapter == 0 {
			return false
		}
	case SelectVerse:
		if n.verse == nil {
			return false
		}
	default:
		return false
	}
	n.page++
	return true
}
