package cache

import (
	"context"
	"testing"
	"time"

	"votd-tui/internal/bible"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetMissing(t *testing.T) {
	c := openTemp(t)

	v, ok, err := c.Get(context.Background(), "2026-10-19")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || v != nil {
		t.Errorf("expected miss, got %+v", v)
	}
}

func TestPutAndGet(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	in := &bible.VerseOfDay{
		Citation: "Isaiah 40:31",
		Passage:  "But they that wait upon the LORD shall renew their strength",
		Images:   []string{"https://www.bible.com/img/1.jpg"},
		Version:  "KJV",
	}
	if err := c.Put(ctx, "2026-10-19", in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, "2026-10-19")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Citation != in.Citation || got.Passage != in.Passage || got.Version != "KJV" {
		t.Errorf("Get = %+v", got)
	}
	if len(got.Images) != 1 || got.Images[0] != in.Images[0] {
		t.Errorf("Images = %v", got.Images)
	}
}

func TestPutReplacesAndNilImages(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	c.Put(ctx, "2026-10-19", &bible.VerseOfDay{Citation: "a", Passage: "b", Version: "X"})
	c.Put(ctx, "2026-10-19", &bible.VerseOfDay{Citation: "c", Passage: "d", Version: "Y"})

	got, _, err := c.Get(ctx, "2026-10-19")
	if err != nil {
		t.Fatal(err)
	}
	if got.Citation != "c" {
		t.Errorf("Citation = %q, want replaced entry", got.Citation)
	}
	if got.Images == nil {
		t.Error("Images should be an empty slice, not nil")
	}
}

func TestPrune(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	for _, day := range []string{"2026-10-17", "2026-10-18", "2026-10-19"} {
		if err := c.Put(ctx, day, &bible.VerseOfDay{Citation: day, Passage: "p", Version: "v"}); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Prune(ctx, "2026-10-19")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("pruned %d rows, want 2", n)
	}

	days, err := c.Days(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0] != "2026-10-19" {
		t.Errorf("Days = %v", days)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	c, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	c.Put(ctx, "2026-10-19", &bible.VerseOfDay{Citation: "John 3:16", Passage: "p", Version: "KJV"})
	c.Close()

	c, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, ok, _ := c.Get(ctx, "2026-10-19"); !ok {
		t.Error("entry lost after reopen")
	}
}

func TestDay(t *testing.T) {
	d := time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)
	if got := Day(d); got != "2026-01-05" {
		t.Errorf("Day = %q", got)
	}
}
