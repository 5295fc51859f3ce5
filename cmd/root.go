// Package cmd implements the command-line interface for lingcrawl.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	corpuscmd "github.com/jonesrussell/lingcrawl/cmd/corpus"
	"github.com/jonesrussell/lingcrawl/cmd/crawl"
	"github.com/jonesrussell/lingcrawl/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "lingcrawl",
		Short: "An incremental crawler for a paginated document listing site",
		Long: `lingcrawl walks a paginated listing site, extracts document metadata
from each document page, and accumulates it in a JSON corpus snapshot.
Runs are resumable: documents already in the snapshot are never re-fetched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Parse flags early so the config file flag is known before loading.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := config.Init(cfgFile); err != nil {
		return fmt.Errorf("initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lingcrawl version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(crawl.Command(&debug))
	rootCmd.AddCommand(corpuscmd.Command())
}
