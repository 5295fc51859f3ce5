// Package corpus implements inspection commands for the persisted snapshot.
// The list command displays every stored record in a formatted table.
package corpus

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/lingcrawl/internal/config"
	"github.com/jonesrussell/lingcrawl/internal/corpus"
)

// maxTitleWidth truncates long titles in the table output.
const maxTitleWidth = 60

// Command returns the corpus command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect the persisted corpus snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(listCommand())
	return cmd
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all records in the corpus snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := corpus.Load(cfg.Corpus.Path)
			if err != nil {
				return err
			}

			if store.Len() == 0 {
				fmt.Printf("No records in %s\n", cfg.Corpus.Path)
				return nil
			}

			renderTable(store)
			fmt.Printf("%d records in %s\n", store.Len(), cfg.Corpus.Path)
			return nil
		},
	}
}

// renderTable formats the corpus as a table on stdout.
func renderTable(store *corpus.Store) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Ref", "Title", "Date", "Downloads", "Keywords"})

	for _, ref := range store.Refs() {
		rec := store.Get(ref)
		t.AppendRow(table.Row{
			rec.Ref,
			truncate(rec.Title, maxTitleWidth),
			rec.Date,
			rec.Downloads,
			strings.Join(rec.Keywords, ", "),
		})
	}

	t.Render()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
