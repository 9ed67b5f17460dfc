package bible

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

//go:embed data/verses.json
var versesJSON []byte

// DefaultVersion is the translation of the embedded verse table.
const DefaultVersion = "KJV"

// Table is the bundled verse lookup, keyed by "Book Chapter:Verse".
type Table struct {
	Version  string
	verses   map[string]string
	keys     []string
	chapters map[string]map[int][]string
}

func NewTable(data []byte, version string) (*Table, error) {
	var verses map[string]string
	if err := json.Unmarshal(data, &verses); err != nil {
		return nil, fmt.Errorf("failed to parse verse table: %w", err)
	}

	t := &Table{
		Version:  version,
		verses:   verses,
		keys:     make([]string, 0, len(verses)),
		chapters: make(map[string]map[int][]string),
	}

	for key := range verses {
		t.keys = append(t.keys, key)

		ref, err := ParseRef(key)
		if err != nil {
			continue
		}
		if t.chapters[ref.Book] == nil {
			t.chapters[ref.Book] = make(map[int][]string)
		}
		t.chapters[ref.Book][ref.Chapter] = append(t.chapters[ref.Book][ref.Chapter], ref.Verse)
	}
	sort.Strings(t.keys)

	for _, chapters := range t.chapters {
		for _, labels := range chapters {
			sortVerseLabels(labels)
		}
	}

	return t, nil
}

// DefaultTable returns the embedded verse table.
func DefaultTable() *Table {
	t, err := NewTable(versesJSON, DefaultVersion)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Len() int { return len(t.verses) }

// Find does an exact-match lookup.
func (t *Table) Find(ref VerseRef) (string, bool) {
	text, ok := t.verses[ref.String()]
	return text, ok
}

// Lookup returns the stored text or NotFound.
func (t *Table) Lookup(ref VerseRef) string {
	if text, ok := t.Find(ref); ok {
		return text
	}
	return NotFound
}

// Verses lists the verse labels stored for a chapter.
func (t *Table) Verses(book string, chapter int) []string {
	labels := t.chapters[book][chapter]
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Daily picks a verse for the given day. The choice is stable for a calendar
// day and rotates through the whole table.
func (t *Table) Daily(day time.Time) VerseOfDay {
	v := VerseOfDay{Images: []string{}, Version: t.Version}
	if len(t.keys) == 0 {
		return v
	}

	n := day.Year()*366 + day.YearDay()
	key := t.keys[n%len(t.keys)]
	v.Citation = key
	v.Passage = t.verses[key]
	return v
}

func sortVerseLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		a, errA := strconv.Atoi(labels[i])
		b, errB := strconv.Atoi(labels[j])
		if errA != nil || errB != nil {
			return labels[i] < labels[j]
		}
		return a < b
	})
}
