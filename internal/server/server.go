// Package server is the local backend the panel talks to: the verse of the
// day over HTTP and WebSocket, static verse lookups and the update check.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"votd-tui/internal/bible"
	"votd-tui/internal/cache"
	"votd-tui/internal/updater"
)

// DefaultAddr matches the address the panel dials by default.
const DefaultAddr = "localhost:8777"

// VerseFetcher produces today's verse from upstream.
type VerseFetcher interface {
	Fetch(ctx context.Context) (*bible.VerseOfDay, error)
}

type UpdateChecker interface {
	CurrentVersion() string
	Check(ctx context.Context) (*updater.Result, error)
}

type Config struct {
	Fetcher VerseFetcher
	Cache   *cache.Cache // optional
	Table   *bible.Table
	Updater UpdateChecker // optional
	// StaticFallback serves the table's daily verse when the fetcher fails.
	StaticFallback bool
	Log            *slog.Logger
}

type Server struct {
	fetcher        VerseFetcher
	cache          *cache.Cache
	table          *bible.Table
	updater        UpdateChecker
	staticFallback bool
	log            *slog.Logger
	upgrader       websocket.Upgrader
	now            func() time.Time

	// fetchMu keeps concurrent requests from scraping the same day twice.
	fetchMu sync.Mutex
}

func New(cfg Config) *Server {
	if cfg.Table == nil {
		cfg.Table = bible.DefaultTable()
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		fetcher:        cfg.Fetcher,
		cache:          cfg.Cache,
		table:          cfg.Table,
		updater:        cfg.Updater,
		staticFallback: cfg.StaticFallback,
		log:            cfg.Log,
		upgrader: websocket.Upgrader{
			// The panel runs from a different origin than the backend.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now: time.Now,
	}
}

// VerseOfDay resolves today's verse: cache, then upstream, then the static
// table when fallback is enabled.
func (s *Server) VerseOfDay(ctx context.Context) (*bible.VerseOfDay, error) {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	day := cache.Day(s.now())

	if s.cache != nil {
		v, ok, err := s.cache.Get(ctx, day)
		if err != nil {
			s.log.Warn("cache read failed", "day", day, "err", err)
		} else if ok {
			s.log.Debug("returning cached verse of the day", "day", day)
			return v, nil
		}
	}

	var fetchErr error
	if s.fetcher == nil {
		fetchErr = errors.New("no upstream configured")
	} else {
		v, err := s.fetcher.Fetch(ctx)
		if err == nil {
			err = v.Validate()
		}
		if err == nil {
			v.Normalize()
			s.store(ctx, day, v)
			s.log.Info("fetched new verse of the day", "citation", v.Citation, "version", v.Version)
			return v, nil
		}
		fetchErr = err
	}

	s.log.Error("failed to fetch the verse of the day", "err", fetchErr)
	if !s.staticFallback {
		return nil, fetchErr
	}

	v := s.table.Daily(s.now())
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%w (static fallback: %v)", fetchErr, err)
	}
	return &v, nil
}

func (s *Server) store(ctx context.Context, day string, v *bible.VerseOfDay) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, day, v); err != nil {
		s.log.Warn("cache write failed", "day", day, "err", err)
	}
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", "addr", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("server stopping")
		return srv.Shutdown(shutdownCtx)
	}
}
