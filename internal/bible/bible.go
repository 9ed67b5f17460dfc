package bible

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NotFound is the passage text shown when a verse is missing from every source.
const NotFound = "Verse not found."

// UnknownVersion is used when a verse of the day arrives without a version.
const UnknownVersion = "Unknown"

var (
	ErrUnknownBook = errors.New("unknown book")
	ErrBadRef      = errors.New("invalid verse reference")
)

type Book struct {
	Name     string `json:"book"`
	Chapters int    `json:"chapters"`
}

// VerseRef points at a single verse. Verse is kept as a string because the
// static table keys verses by label, not number.
type VerseRef struct {
	Book    string
	Chapter int
	Verse   string
}

// String renders the lookup key used by the static table, e.g. "John 3:16".
func (r VerseRef) String() string {
	return fmt.Sprintf("%s %d:%s", r.Book, r.Chapter, r.Verse)
}

// ParseRef parses references like "John 3:16" or "1 John 4:8".
func ParseRef(s string) (VerseRef, error) {
	s = strings.TrimSpace(s)
	idx := strings.LastIndex(s, " ")
	if idx <= 0 {
		return VerseRef{}, fmt.Errorf("%w: %q", ErrBadRef, s)
	}

	book := strings.TrimSpace(s[:idx])
	chapterVerse := strings.Split(s[idx+1:], ":")
	if len(chapterVerse) != 2 || chapterVerse[1] == "" {
		return VerseRef{}, fmt.Errorf("%w: %q", ErrBadRef, s)
	}

	chapter, err := strconv.Atoi(chapterVerse[0])
	if err != nil || chapter < 1 {
		return VerseRef{}, fmt.Errorf("%w: bad chapter in %q", ErrBadRef, s)
	}

	return VerseRef{Book: book, Chapter: chapter, Verse: chapterVerse[1]}, nil
}

type VerseOfDay struct {
	Citation string   `json:"citation"`
	Passage  string   `json:"passage"`
	Images   []string `json:"images"`
	Version  string   `json:"version"`
}

// Normalize fills in the fields a backend is allowed to omit.
func (v *VerseOfDay) Normalize() {
	if v.Images == nil {
		v.Images = []string{}
	}
	if v.Version == "" {
		v.Version = UnknownVersion
	}
}

func (v *VerseOfDay) Validate() error {
	if v.Citation == "" || v.Passage == "" {
		return fmt.Errorf("missing fields: citation=%q passage=%q", v.Citation, v.Passage)
	}
	return nil
}

// Passage is the resolved text of a single verse.
type Passage struct {
	Ref     VerseRef
	Text    string
	Version string
}

// Found reports whether the passage carries real text rather than the
// not-found sentinel.
func (p Passage) Found() bool {
	return p.Text != "" && p.Text != NotFound
}
