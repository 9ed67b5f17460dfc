package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"votd-tui/internal/bible"
)

var lookupJSON bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <reference>",
	Short: "Print a single verse",
	Long: `Look up a verse by reference, e.g.

  votd-tui lookup John 3:16
  votd-tui lookup "Song of Solomon 2:4"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	ref, err := bible.ParseRef(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if _, err := bible.DefaultCanon().Book(ref.Book); err != nil {
		return err
	}

	s, adapter, _, cleanup, err := setupCommand()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), s.RequestTimeout)
	defer cancel()

	p := adapter.FetchVerse(ctx, ref)
	if err := printPassage(cmd.OutOrStdout(), p, lookupJSON); err != nil {
		return err
	}
	if !p.Found() {
		return fmt.Errorf("%s: %s", ref, bible.NotFound)
	}
	return nil
}

type passageJSON struct {
	Citation string `json:"citation"`
	Passage  string `json:"passage"`
	Version  string `json:"version,omitempty"`
}

func printPassage(w io.Writer, p *bible.Passage, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(passageJSON{Citation: p.Ref.String(), Passage: p.Text, Version: p.Version})
	}
	if p.Version != "" {
		fmt.Fprintf(w, "%s (%s)\n%s\n", p.Ref, p.Version, p.Text)
		return nil
	}
	fmt.Fprintf(w, "%s\n%s\n", p.Ref, p.Text)
	return nil
}
