package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"votd-tui/internal/api"
	"votd-tui/internal/bible"
	"votd-tui/internal/logging"
	"votd-tui/internal/notify"
	"votd-tui/internal/settings"
	"votd-tui/internal/theme"
)

var (
	todayToast bool
	todayJSON  bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print the verse of the day",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

func init() {
	todayCmd.Flags().BoolVar(&todayToast, "toast", false, "Show the verse as a toast")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	s, adapter, log, cleanup, err := setupCommand()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), s.RequestTimeout)
	defer cancel()

	out := cmd.OutOrStdout()

	v, err := adapter.FetchVerseOfDay(ctx)
	if err != nil {
		return fmt.Errorf("fetching verse of the day: %w", err)
	}

	if todayToast {
		t := theme.GetTheme(s.CurrentTheme)
		n := notify.New(adapter,
			notify.WithHost(notify.NewWriterHost(out, t.Accent, t.Border)),
			notify.WithDuration(s.ToastDuration),
			notify.WithLogger(logging.WithComponent(log, "notify")),
		)
		n.Toast(v.Citation, v.Passage)
		return nil
	}
	return printVerseOfDay(out, v, todayJSON)
}

func printVerseOfDay(w io.Writer, v *bible.VerseOfDay, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	fmt.Fprintf(w, "%s (%s)\n\n%s\n", v.Citation, v.Version, v.Passage)
	if len(v.Images) > 0 {
		fmt.Fprintf(w, "\nImages:\n  %s\n", strings.Join(v.Images, "\n  "))
	}
	return nil
}

// setupCommand loads settings and builds an adapter for the one-shot
// subcommands. Their logs go to stderr.
func setupCommand() (settings.Settings, *api.Adapter, *slog.Logger, func(), error) {
	s, err := settings.Load(configPath)
	if err != nil {
		return settings.Settings{}, nil, nil, nil, err
	}

	level := s.LogLevel
	if level == "info" {
		level = "warn"
	}
	log, closer, err := logging.New(logging.Options{Level: level, Writer: os.Stderr})
	if err != nil {
		return settings.Settings{}, nil, nil, nil, err
	}

	adapter, err := newAdapter(s, log)
	if err != nil {
		closer.Close()
		return settings.Settings{}, nil, nil, nil, err
	}
	return s, adapter, log, func() { closer.Close() }, nil
}
