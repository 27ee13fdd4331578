package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/reoring/jsonapiv/internal/console"
)

var version = "dev"

// Global flags
var verbose bool

// errInvalid signals that at least one document failed validation. The
// details have already been printed.
var errInvalid = errors.New("invalid documents")

var rootCmd = &cobra.Command{
	Use:           "jsonapiv",
	Short:         "Validate JSON:API request documents",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logs")
	rootCmd.AddCommand(newValidateCmd())
}

func logf(format string, a ...any) {
	if verbose {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf(format, a...)))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		os.Exit(1)
	}
}
