package api

import (
	"context"
	"time"

	"votd-tui/internal/bible"
)

// StaticSource serves verses from the bundled table. It never fails: a miss
// yields the not-found sentinel.
type StaticSource struct {
	table *bible.Table
	now   func() time.Time
}

func NewStaticSource(table *bible.Table) *StaticSource {
	return &StaticSource{table: table, now: time.Now}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) VerseOfDay(ctx context.Context) (*bible.VerseOfDay, error) {
	v := s.table.Daily(s.now())
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *StaticSource) Verse(ctx context.Context, ref bible.VerseRef) (*bible.Passage, error) {
	return &bible.Passage{
		Ref:     ref,
		Text:    s.table.Lookup(ref),
		Version: s.table.Version,
	}, nil
}

func (s *StaticSource) Verses(ctx context.Context, book string, chapter int) ([]string, error) {
	return s.table.Verses(book, chapter), nil
}
