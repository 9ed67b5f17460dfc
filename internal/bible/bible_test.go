package bible

import (
	"errors"
	"testing"
	"time"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		in      string
		want    VerseRef
		wantErr bool
	}{
		{"John 3:16", VerseRef{"John", 3, "16"}, false},
		{"1 John 4:8", VerseRef{"1 John", 4, "8"}, false},
		{"Song of Solomon 2:4", VerseRef{"Song of Solomon", 2, "4"}, false},
		{"  Psalms 23:1 ", VerseRef{"Psalms", 23, "1"}, false},
		{"John", VerseRef{}, true},
		{"John 3", VerseRef{}, true},
		{"John x:1", VerseRef{}, true},
		{"John 0:1", VerseRef{}, true},
		{"John 3:", VerseRef{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRef(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadRef) {
					t.Fatalf("ParseRef(%q) error = %v, want ErrBadRef", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseRef(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.String() != trimmed(tt.in) {
				t.Errorf("String() = %q, want %q", got.String(), trimmed(tt.in))
			}
		})
	}
}

func trimmed(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

func TestNormalizeDefaults(t *testing.T) {
	v := VerseOfDay{Citation: "John 3:16", Passage: "For God so loved..."}
	v.Normalize()

	if v.Images == nil || len(v.Images) != 0 {
		t.Errorf("Images = %#v, want empty non-nil slice", v.Images)
	}
	if v.Version != "Unknown" {
		t.Errorf("Version = %q, want %q", v.Version, "Unknown")
	}
	if err := v.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateMissingFields(t *testing.T) {
	v := VerseOfDay{Citation: "John 3:16"}
	if err := v.Validate(); err == nil {
		t.Error("expected error for missing passage")
	}
}

func TestDefaultCanon(t *testing.T) {
	c := DefaultCanon()

	if c.Len() != 66 {
		t.Fatalf("Len() = %d, want 66", c.Len())
	}

	john, err := c.Book("John")
	if err != nil {
		t.Fatalf("Book(John): %v", err)
	}
	if john.Chapters != 21 {
		t.Errorf("John chapters = %d, want 21", john.Chapters)
	}

	next, ok := c.Next("Malachi")
	if !ok || next.Name != "Matthew" {
		t.Errorf("Next(Malachi) = %v, %v; want Matthew, true", next, ok)
	}

	if _, ok := c.Next("Revelation"); ok {
		t.Error("Next(Revelation) should report end of canon")
	}

	if _, err := c.Book("Hezekiah"); !errors.Is(err, ErrUnknownBook) {
		t.Errorf("Book(Hezekiah) error = %v, want ErrUnknownBook", err)
	}
}

func TestNewCanonRejectsEmpty(t *testing.T) {
	if _, err := NewCanon([]byte(`{"books":[]}`)); err == nil {
		t.Error("expected error for empty books table")
	}
	if _, err := NewCanon([]byte(`{"books":[{"book":"Jude","chapters":0}]}`)); err == nil {
		t.Error("expected error for book without chapters")
	}
}

func TestTableLookup(t *testing.T) {
	tbl := DefaultTable()

	got := tbl.Lookup(VerseRef{Book: "John", Chapter: 3, Verse: "16"})
	want := "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life."
	if got != want {
		t.Errorf("Lookup(John 3:16) = %q, want %q", got, want)
	}

	if got := tbl.Lookup(VerseRef{Book: "John", Chapter: 3, Verse: "99"}); got != "Verse not found." {
		t.Errorf("Lookup(missing) = %q, want sentinel", got)
	}
}

func TestTableVerses(t *testing.T) {
	tbl, err := NewTable([]byte(`{
		"Psalms 23:10": "x",
		"Psalms 23:2": "y",
		"Psalms 23:1": "z",
		"Psalms 24:1": "w"
	}`), "TEST")
	if err != nil {
		t.Fatal(err)
	}

	got := tbl.Verses("Psalms", 23)
	want := []string{"1", "2", "10"}
	if len(got) != len(want) {
		t.Fatalf("Verses = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Verses[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := tbl.Verses("Psalms", 99); len(got) != 0 {
		t.Errorf("Verses(missing chapter) = %v, want empty", got)
	}
}

func TestTableDailyIsStable(t *testing.T) {
	tbl := DefaultTable()
	morning := time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 19, 22, 0, 0, 0, time.UTC)

	a := tbl.Daily(morning)
	b := tbl.Daily(evening)
	if a.Citation != b.Citation {
		t.Errorf("same day gave %q and %q", a.Citation, b.Citation)
	}
	if a.Passage == "" || a.Version != DefaultVersion {
		t.Errorf("Daily() = %+v, want passage and version %q", a, DefaultVersion)
	}

	next := tbl.Daily(morning.AddDate(0, 0, 1))
	if next.Citation == a.Citation {
		t.Errorf("consecutive days returned the same verse %q", a.Citation)
	}
}
