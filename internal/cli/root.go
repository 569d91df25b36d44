// Package cli provides the command-line interface for alumnex.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jecc/alumnex/internal/cli/commands"
	"github.com/jecc/alumnex/pkg/config"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "alumnex",
		Short: "Extract work experiences from alumni spreadsheets",
		Long: `alumnex turns the free-text experiences column of an alumni spreadsheet
into a table with one row per experience: role, company, location and
a computed duration ("2 ans 3 mois").

Column names, header row and output can be set in a YAML config file,
through ALUMNEX_* environment variables or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadDotEnv(envFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading configuration")

	// Add subcommands
	rootCmd.AddCommand(commands.NewExtractCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
