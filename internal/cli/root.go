package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"votd-tui/internal/api"
	"votd-tui/internal/bible"
	"votd-tui/internal/logging"
	"votd-tui/internal/notify"
	"votd-tui/internal/settings"
	"votd-tui/internal/theme"
	"votd-tui/internal/ui"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	configPath   string
	toastOnStart bool
)

var rootCmd = &cobra.Command{
	Use:   "votd-tui",
	Short: "Verse of the day and a Bible browser for the terminal",
	Long: `votd-tui shows the verse of the day and lets you browse the Bible
book by book, chapter by chapter.

Run "votd-tui serve" to start the local backend the browser talks to.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+settings.FilePath()+")")
	rootCmd.Flags().BoolVar(&toastOnStart, "toast", true, "Toast the verse of the day on start")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := settings.Load(configPath)
	if err != nil {
		return err
	}

	// The program owns the terminal, so logs go to a file.
	log, closer, err := logging.New(logging.Options{
		Level: s.LogLevel,
		File:  filepath.Join(s.CacheDir, "votd-tui.log"),
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	adapter, err := newAdapter(s, log)
	if err != nil {
		return err
	}

	notifier := notify.New(adapter,
		notify.WithDuration(s.ToastDuration),
		notify.WithLogger(logging.WithComponent(log, "notify")),
	)

	path := configPath
	if path == "" {
		path = settings.FilePath()
	}

	m := ui.NewModel(ui.Config{
		Adapter:      adapter,
		Notifier:     notifier,
		Canon:        bible.DefaultCanon(),
		Theme:        theme.GetTheme(s.CurrentTheme),
		SettingsPath: path,
		Timeout:      s.RequestTimeout,
		ToastOnStart: toastOnStart,
		Log:          logging.WithComponent(log, "ui"),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	notifier.SetHost(ui.NewProgramHost(p))

	log.Info("starting", "version", buildVersion, "sources", adapter.Sources())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func newAdapter(s settings.Settings, log *slog.Logger) (*api.Adapter, error) {
	sources := s.Sources
	if s.StaticFallback && !contains(sources, "static") {
		sources = append(sources, "static")
	}
	return api.Build(api.Options{
		Sources:     sources,
		Endpoint:    s.Endpoint,
		Translation: s.Translation,
		Timeout:     s.RequestTimeout,
		Log:         logging.WithComponent(log, "api"),
	})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
