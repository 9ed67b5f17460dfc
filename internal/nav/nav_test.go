package nav

import (
	"errors"
	"testing"

	"votd-tui/internal/bible"
)

func newNav(t *testing.T) *Navigator {
	t.Helper()
	return New(bible.DefaultCanon())
}

func TestDrillDown(t *testing.T) {
	n := newNav(t)
	table := bible.DefaultTable()

	if n.Page() != SelectBook {
		t.Fatalf("initial page = %v, want SelectBook", n.Page())
	}
	if err := n.SelectBook("John"); err != nil {
		t.Fatal(err)
	}
	if n.Page() != SelectChapter {
		t.Fatalf("page = %v, want SelectChapter", n.Page())
	}
	if err := n.SelectChapter(3); err != nil {
		t.Fatal(err)
	}
	req, err := n.SelectVerse("16")
	if err != nil {
		t.Fatal(err)
	}
	if n.Page() != ShowVerse {
		t.Fatalf("page = %v, want ShowVerse", n.Page())
	}
	if !n.Current(req.Generation) {
		t.Error("fresh request should be current")
	}

	want, ok := table.Find(bible.VerseRef{Book: "John", Chapter: 3, Verse: "16"})
	if !ok {
		t.Fatal("John 3:16 missing from table")
	}
	if got := table.Lookup(req.Ref); got != want {
		t.Errorf("Lookup(%s) = %q, want %q", req.Ref, got, want)
	}
}

func TestEveryStoredVerseIsReachable(t *testing.T) {
	table := bible.DefaultTable()
	canon := bible.DefaultCanon()

	for _, b := range canon.Books() {
		for ch := 1; ch <= b.Chapters; ch++ {
			for _, v := range table.Verses(b.Name, ch) {
				n := New(canon)
				if err := n.SelectBook(b.Name); err != nil {
					t.Fatal(err)
				}
				if err := n.SelectChapter(ch); err != nil {
					t.Fatal(err)
				}
				req, err := n.SelectVerse(v)
				if err != nil {
					t.Fatal(err)
				}
				stored, _ := table.Find(req.Ref)
				if got := table.Lookup(req.Ref); got != stored || got == bible.NotFound {
					t.Errorf("%s: got %q", req.Ref, got)
				}
			}
		}
	}
}

func TestSelectChapterBounds(t *testing.T) {
	n := newNav(t)

	if err := n.SelectChapter(1); !errors.Is(err, ErrNoBook) {
		t.Fatalf("SelectChapter without book = %v, want ErrNoBook", err)
	}

	if err := n.SelectBook("Jude"); err != nil {
		t.Fatal(err)
	}
	for _, ch := range []int{0, -1, 2} {
		if err := n.SelectChapter(ch); !errors.Is(err, ErrChapterOutOfRange) {
			t.Errorf("SelectChapter(%d) = %v, want ErrChapterOutOfRange", ch, err)
		}
	}
	if n.Chapter() != 0 || n.Page() != SelectChapter {
		t.Errorf("out of range selection changed state: chapter=%d page=%v", n.Chapter(), n.Page())
	}
}

func TestSelectBookClearsDeeperSelections(t *testing.T) {
	n := newNav(t)
	_ = n.SelectBook("John")
	_ = n.SelectChapter(3)
	_, _ = n.SelectVerse("16")

	if err := n.SelectBook("Romans"); err != nil {
		t.Fatal(err)
	}
	if n.Chapter() != 0 {
		t.Errorf("chapter = %d, want cleared", n.Chapter())
	}
	if _, ok := n.Verse(); ok {
		t.Error("verse should be cleared")
	}

	if err := n.SelectBook("Hezekiah"); !errors.Is(err, bible.ErrUnknownBook) {
		t.Errorf("SelectBook(unknown) = %v, want ErrUnknownBook", err)
	}
	if b, _ := n.Book(); b.Name != "Romans" {
		t.Errorf("unknown book changed selection to %q", b.Name)
	}
}

func TestPreviousKeepsSelections(t *testing.T) {
	n := newNav(t)
	_ = n.SelectBook("Genesis")

	n.Previous()
	if n.Page() != SelectBook {
		t.Fatalf("page = %v, want SelectBook", n.Page())
	}
	b, ok := n.Book()
	if !ok || b.Name != "Genesis" {
		t.Errorf("Previous discarded book: %v %v", b, ok)
	}

	n.Previous()
	if n.Page() != SelectBook {
		t.Errorf("Previous below SelectBook moved to %v", n.Page())
	}

	if !n.Advance() || n.Page() != SelectChapter {
		t.Errorf("Advance should restore SelectChapter, page = %v", n.Page())
	}
	if n.Advance() {
		t.Error("Advance without chapter should fail")
	}
}

func TestPreviousFromShowVerse(t *testing.T) {
	n := newNav(t)
	_ = n.SelectBook("Psalms")
	_ = n.SelectChapter(23)
	_, _ = n.SelectVerse("1")

	n.Previous()
	n.Previous()
	if n.Page() != SelectChapter {
		t.Fatalf("page = %v, want SelectChapter", n.Page())
	}
	if n.Chapter() != 23 {
		t.Errorf("chapter = %d, want 23", n.Chapter())
	}
	if !n.Advance() || !n.Advance() || n.Page() != ShowVerse {
		t.Errorf("re-advancing should reach ShowVerse, page = %v", n.Page())
	}
}

func TestNextRollsIntoNextBook(t *testing.T) {
	n := newNav(t)
	_ = n.SelectBook("Malachi")
	_ = n.SelectChapter(4)
	_, _ = n.SelectVerse("5")

	if err := n.Next(); err != nil {
		t.Fatal(err)
	}
	b, _ := n.Book()
	if b.Name != "Matthew" || n.Chapter() != 1 {
		t.Errorf("Next() = %s %d, want Matthew 1", b.Name, n.Chapter())
	}
	if n.Page() != SelectVerse {
		t.Errorf("page = %v, want SelectVerse", n.Page())
	}
	if _, ok := n.Verse(); ok {
		t.Error("verse should be cleared after Next")
	}
}

func TestNextWithinBook(t *testing.T) {
	n := newNav(t)
	_ = n.SelectBook("John")
	_ = n.SelectChapter(3)

	if err := n.Next(); err != nil {
		t.Fatal(err)
	}
	if n.Chapter() != 4 {
		t.Errorf("chapter = %d, want 4", n.Chapter())
	}
}

func TestNextAtEndOfCanon(t *testing.T) {
	n := newNav(t)
	_ = n.SelectBook("Revelation")
	_ = n.SelectChapter(22)
	_, _ = n.SelectVerse("21")
	gen := n.Generation()

	if err := n.Next(); !errors.Is(err, ErrEndOfCanon) {
		t.Fatalf("Next() = %v, want ErrEndOfCanon", err)
	}
	b, _ := n.Book()
	if b.Name != "Revelation" || n.Chapter() != 22 || n.Page() != ShowVerse {
		t.Errorf("state changed at end of canon: %s %d %v", b.Name, n.Chapter(), n.Page())
	}
	if n.Generation() != gen {
		t.Error("generation bumped on a refused Next")
	}
}

func TestNextRequiresChapter(t *testing.T) {
	n := newNav(t)
	if err := n.Next(); !errors.Is(err, ErrNoBook) {
		t.Errorf("Next() = %v, want ErrNoBook", err)
	}
	_ = n.SelectBook("John")
	if err := n.Next(); !errors.Is(err, ErrNoChapter) {
		t.Errorf("Next() = %v, want ErrNoChapter", err)
	}
}

func TestStaleRequests(t *testing.T) {
	n := newNav(t)
	_ = n.SelectBook("John")
	_ = n.SelectChapter(3)

	first, _ := n.SelectVerse("16")
	n.Previous()
	second, _ := n.SelectVerse("17")

	if n.Current(first.Generation) {
		t.Error("older request should be stale")
	}
	if !n.Current(second.Generation) {
		t.Error("latest request should be current")
	}
}
