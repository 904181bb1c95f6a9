package main

import (
	"fmt"
	"os"

	"github.com/osa911/landing/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect server configuration",
	Long:  `Inspect the landing API configuration read from the environment and .env files.`,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report missing or incomplete settings",
	Long: `Load the configuration the same way the API server does and list every
setting that would make contact submissions fail at request time.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			logger.Error("Failed to load configuration: %v", err)
			os.Exit(1)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Environment:  %s\n", cfg.Environment)
		fmt.Fprintf(out, "API port:     %s\n", cfg.Port)
		smtpRelay := ""
		if cfg.SMTP.Host != "" {
			smtpRelay = cfg.SMTP.Address()
		}
		fmt.Fprintf(out, "SMTP relay:   %s\n", orUnset(smtpRelay))
		fmt.Fprintf(out, "Destination:  %s\n", orUnset(cfg.Destination()))
		if cfg.Contact.CCEmail != "" {
			fmt.Fprintf(out, "CC:           %s\n", cfg.Contact.CCEmail)
		}

		warnings := cfg.Warnings()
		if len(warnings) == 0 {
			fmt.Fprintln(out, "\nConfiguration is complete.")
			return
		}

		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
		os.Exit(2)
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func initConfigCommands() {
	configCmd.AddCommand(configCheckCmd)
}
