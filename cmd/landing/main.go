package main

import (
	"fmt"
	"os"

	"github.com/osa911/landing/internal/logging"
	"github.com/osa911/landing/internal/version"

	"github.com/spf13/cobra"
)

var logger *logging.Logger

func initLogger(verbose bool) {
	level := "info"
	if verbose {
		level = "debug"
	}
	logging.SetGlobalLogger(logging.NewWriterLogger(os.Stderr, level))
	logger = logging.GetGlobalLogger()
}

var rootCmd = &cobra.Command{
	Use:   "landing",
	Short: "Landing site contact tools",
	Long: `landing talks to the landing site API: it submits contact requests the
same way the web form does and checks the server configuration.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		initLogger(verbose)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "landing %s\n", version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	initSubmitFlags()
	initConfigCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
