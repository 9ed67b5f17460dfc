package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"votd-tui/internal/bible"
)

// Adapter tries each source in order and returns the first answer. There are
// no retries; a source gets exactly one attempt per call.
type Adapter struct {
	sources []Source
	log     *slog.Logger
}

func NewAdapter(log *slog.Logger, sources ...Source) *Adapter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Adapter{sources: sources, log: log}
}

func (a *Adapter) Sources() []string {
	names := make([]string, len(a.sources))
	for i, s := range a.sources {
		names[i] = s.Name()
	}
	return names
}

func (a *Adapter) FetchVerseOfDay(ctx context.Context) (*bible.VerseOfDay, error) {
	var errs []error
	for _, s := range a.sources {
		v, err := s.VerseOfDay(ctx)
		if err == nil {
			v.Normalize()
			return v, nil
		}
		if !errors.Is(err, ErrUnsupported) {
			a.log.Warn("verse of the day lookup failed", "source", s.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("no source can provide the verse of the day")
	}
	return nil, errors.Join(errs...)
}

// FetchVerse always yields a passage: when no source has the verse the text is
// bible.NotFound.
func (a *Adapter) FetchVerse(ctx context.Context, ref bible.VerseRef) *bible.Passage {
	for _, s := range a.sources {
		p, err := s.Verse(ctx, ref)
		if err != nil {
			if !errors.Is(err, ErrUnsupported) {
				a.log.Warn("verse lookup failed", "source", s.Name(), "ref", ref.String(), "err", err)
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if p.Found() {
			return p
		}
	}
	return &bible.Passage{Ref: ref, Text: bible.NotFound}
}

// Verses returns the first non-empty verse list any source knows for a chapter.
func (a *Adapter) Verses(ctx context.Context, book string, chapter int) ([]string, error) {
	var errs []error
	for _, s := range a.sources {
		lister, ok := s.(ChapterLister)
		if !ok {
			continue
		}
		labels, err := lister.Verses(ctx, book, chapter)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		if len(labels) > 0 {
			return labels, nil
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, nil
}

// UpdateChecker is implemented by sources that can ask the backend about new
// releases.
type UpdateChecker interface {
	CheckUpdate(ctx context.Context) (*UpdateInfo, error)
}

// CanCheckUpdate reports whether any source can run an update check.
func (a *Adapter) CanCheckUpdate() bool {
	for _, s := range a.sources {
		if _, ok := s.(UpdateChecker); ok {
			return true
		}
	}
	return false
}

// CheckUpdate asks the first source that supports it. Without one it returns
// ErrUnsupported.
func (a *Adapter) CheckUpdate(ctx context.Context) (*UpdateInfo, error) {
	for _, s := range a.sources {
		if c, ok := s.(UpdateChecker); ok {
			return c.CheckUpdate(ctx)
		}
	}
	return nil, ErrUnsupported
}

// Options select and configure the sources of an Adapter.
type Options struct {
	Sources     []string
	Endpoint    string
	Translation string
	Timeout     time.Duration
	Table       *bible.Table
	Canon       *bible.Canon
	Log         *slog.Logger
}

// Build assembles an Adapter from source names: remote, socket, bolls, static.
func Build(opts Options) (*Adapter, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Table == nil {
		opts.Table = bible.DefaultTable()
	}
	if opts.Canon == nil {
		opts.Canon = bible.DefaultCanon()
	}
	httpClient := &http.Client{Timeout: opts.Timeout}

	var sources []Source
	for _, name := range opts.Sources {
		switch name {
		case "remote":
			sources = append(sources, NewRemoteSource(opts.Endpoint, httpClient))
		case "socket":
			sources = append(sources, NewSocketSource(opts.Endpoint))
		case "bolls":
			sources = append(sources, NewBollsSource(opts.Translation, opts.Canon, httpClient))
		case "static":
			sources = append(sources, NewStaticSource(opts.Table))
		default:
			return nil, fmt.Errorf("unknown verse source %q", name)
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no verse sources configured")
	}

	return NewAdapter(opts.Log, sources...), nil
}
