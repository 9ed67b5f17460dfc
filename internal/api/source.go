// Package api resolves verse content from interchangeable backends.
package api

import (
	"context"
	"errors"
	"fmt"

	"votd-tui/internal/bible"
)

var (
	// ErrUnsupported is returned by sources that cannot serve an operation.
	ErrUnsupported = errors.New("operation not supported by source")
	ErrMalformed   = errors.New("malformed payload")
)

// Source is one backend the Adapter can ask for verses.
type Source interface {
	Name() string
	VerseOfDay(ctx context.Context) (*bible.VerseOfDay, error)
	Verse(ctx context.Context, ref bible.VerseRef) (*bible.Passage, error)
}

// ChapterLister is implemented by sources that know which verses a chapter has.
type ChapterLister interface {
	Verses(ctx context.Context, book string, chapter int) ([]string, error)
}

type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d", e.Code)
}

// ServerError is an {"error": ...} payload pushed by the local backend.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "server error: " + e.Message
}
