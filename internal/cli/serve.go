package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"votd-tui/internal/cache"
	"votd-tui/internal/logging"
	"votd-tui/internal/server"
	"votd-tui/internal/settings"
	"votd-tui/internal/updater"
	"votd-tui/internal/youversion"
)

// Cached days older than this are dropped on start.
const cacheRetention = 30 * 24 * time.Hour

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local verse-of-the-day backend",
	Long: `Serve the verse of the day over HTTP and WebSocket.

Routes:
  GET /api/verse-of-the-day   today's verse as JSON
  GET /api/verse?ref=REF      a verse from the bundled table
  GET /votd_ws                today's verse over a WebSocket
  GET /check_update           release check over a WebSocket
  GET /health                 liveness`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "listen", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := settings.Load(configPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		s.Listen = serveAddr
	}

	log, closer, err := logging.New(logging.Options{Level: s.LogLevel, Writer: os.Stderr})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := cache.Open(s.CacheDir)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer c.Close()

	tidyCache(ctx, c, log, time.Now())

	srv := server.New(server.Config{
		Fetcher:        youversion.NewClient(&http.Client{Timeout: s.RequestTimeout}),
		Cache:          c,
		Updater:        updater.New(buildVersion, s.UpdateRepo),
		StaticFallback: s.StaticFallback,
		Log:            logging.WithComponent(log, "server"),
	})

	log.Info("starting backend", "version", buildVersion, "cache", c.Dir())
	if err := srv.ListenAndServe(ctx, s.Listen); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// tidyCache drops days past retention and reports what is left.
func tidyCache(ctx context.Context, c *cache.Cache, log *slog.Logger, now time.Time) []string {
	if n, err := c.Prune(ctx, cache.Day(now.Add(-cacheRetention))); err != nil {
		log.Warn("pruning cache failed", "err", err)
	} else if n > 0 {
		log.Info("pruned cache", "days", n)
	}

	days, err := c.Days(ctx)
	if err != nil {
		log.Warn("listing cached days failed", "err", err)
		return nil
	}
	if len(days) > 0 {
		log.Info("cache ready", "days", len(days), "newest", days[0], "oldest", days[len(days)-1])
	}
	return days
}
