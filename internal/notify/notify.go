// Package notify posts transient toasts through whatever host is attached.
// Failures are logged and never reach the caller.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"votd-tui/internal/bible"
)

const DefaultDuration = 8 * time.Second

var ErrNoHost = errors.New("toast host not set")

type Toast struct {
	Title    string
	Body     string
	Duration time.Duration
}

// Host displays toasts.
type Host interface {
	Toast(Toast) error
}

// HostFunc adapts a function to Host.
type HostFunc func(Toast) error

func (f HostFunc) Toast(t Toast) error { return f(t) }

// VerseFetcher is the part of the verse adapter the notifier needs.
type VerseFetcher interface {
	FetchVerseOfDay(ctx context.Context) (*bible.VerseOfDay, error)
}

type Notifier struct {
	mu       sync.Mutex
	host     Host
	verses   VerseFetcher
	duration time.Duration
	log      *slog.Logger
}

type Option func(*Notifier)

func WithHost(h Host) Option {
	return func(n *Notifier) { n.host = h }
}

func WithDuration(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.duration = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) { n.log = l }
}

func New(verses VerseFetcher, opts ...Option) *Notifier {
	n := &Notifier{
		verses:   verses,
		duration: DefaultDuration,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetHost replaces the host. It is normally called once, when the UI starts.
func (n *Notifier) SetHost(h Host) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.host = h
}

func (n *Notifier) Toast(title, body string) {
	n.mu.Lock()
	host := n.host
	n.mu.Unlock()

	if host == nil {
		n.log.Error("toast failed", "title", title, "err", ErrNoHost)
		return
	}

	if err := safeToast(host, Toast{Title: title, Body: body, Duration: n.duration}); err != nil {
		n.log.Error("toast failed", "title", title, "err", err)
	}
}

func (n *Notifier) ToastVerseOfDay(ctx context.Context) {
	if n.verses == nil {
		n.log.Error("verse of the day toast skipped", "err", "no verse fetcher")
		return
	}

	v, err := n.verses.FetchVerseOfDay(ctx)
	if err != nil {
		n.log.Error("failed to fetch the verse of the day", "err", err)
		return
	}
	n.Toast(v.Citation, v.Passage)
}

func safeToast(h Host, t Toast) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("toast host panicked: %v", r)
		}
	}()
	return h.Toast(t)
}
