// Package cmd implements the command-line interface for goleads.
// It provides the root command and subcommands for harvesting demand
// signals and managing leads.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/goleads/cmd/analyze"
	cmdharvest "github.com/jonesrussell/goleads/cmd/harvest"
	"github.com/jonesrussell/goleads/cmd/httpd"
	"github.com/jonesrussell/goleads/cmd/importleads"
	"github.com/jonesrussell/goleads/cmd/leads"
	cmdscheduler "github.com/jonesrussell/goleads/cmd/scheduler"
	"github.com/jonesrussell/goleads/cmd/search"
	cmdsources "github.com/jonesrussell/goleads/cmd/sources"
	"github.com/jonesrussell/goleads/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "goleads",
		Short: "A lead generation pipeline for web agencies",
		Long: `Harvests demand signals from Czech business portals, classifies
them by industry and turns the promising ones into leads.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Parse flags early so --config and --debug apply before Viper reads
	_ = rootCmd.ParseFlags(os.Args[1:])

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := config.InitViper(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	if debug {
		viper.Set("app.debug", true)
		viper.Set("logger.level", "debug")
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
			fmt.Printf("goleads version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(cmdharvest.Command())
	rootCmd.AddCommand(cmdsources.Command())
	rootCmd.AddCommand(leads.Command())
	rootCmd.AddCommand(analyze.Command())
	rootCmd.AddCommand(importleads.Command())
	rootCmd.AddCommand(search.Command())
	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
}
