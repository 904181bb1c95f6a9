package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/osa911/landing/internal/contactform"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var errRejected = errors.New("submission rejected")

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a contact request",
	Long: `Fill the contact form from flags and post it to the API.

The form is validated locally first, exactly like the web form: nothing is
sent while a field is missing, the email is malformed or no captcha token is given.

Example:
  landing submit --api http://localhost:3000 --first-name Ana --last-name García \
    --email ana@example.com --phone "+34 600 000 000" --message "Hola" --captcha-token TOKEN`,
	Run: func(cmd *cobra.Command, args []string) {
		apiURL, _ := cmd.Flags().GetString("api")
		token, _ := cmd.Flags().GetString("captcha-token")

		values := make(map[string]string, len(contactform.Fields))
		for _, field := range contactform.Fields {
			values[field], _ = cmd.Flags().GetString(flagName(field))
		}

		if err := runSubmit(cmd.Context(), cmd.OutOrStdout(), apiURL, values, token, true); err != nil {
			logger.Error("Submit failed: %v", err)
			os.Exit(1)
		}
	},
}

// flagName maps a form field onto its kebab-case flag
func flagName(field string) string {
	switch field {
	case contactform.FieldFirstName:
		return "first-name"
	case contactform.FieldLastName:
		return "last-name"
	default:
		return field
	}
}

func initSubmitFlags() {
	submitCmd.Flags().String("api", "http://localhost:3000", "Base URL of the landing API")
	submitCmd.Flags().String("first-name", "", "First name")
	submitCmd.Flags().String("last-name", "", "Last name")
	submitCmd.Flags().String("email", "", "Email address")
	submitCmd.Flags().String("phone", "", "Phone number")
	submitCmd.Flags().String("message", "", "Message body")
	submitCmd.Flags().String("captcha-token", "", "reCAPTCHA response token")
}

// runSubmit fills a form, prints inline errors and posts it when submittable
func runSubmit(ctx context.Context, out io.Writer, apiURL string, values map[string]string, token string, showSpinner bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	form := contactform.New()
	for _, field := range contactform.Fields {
		if err := form.SetField(field, values[field]); err != nil {
			return err
		}
	}
	form.SetCaptchaToken(token)

	if errs := form.Errors(); len(errs) > 0 {
		for _, field := range contactform.Fields {
			if msg := errs[field]; msg != "" {
				fmt.Fprintf(out, "  %-10s %s\n", field+":", msg)
			}
		}
	}
	if !form.IsSubmittable() {
		if token == "" {
			fmt.Fprintln(out, "  captcha:   Required")
		}
		return contactform.ErrNotSubmittable
	}

	logger.Debug("Posting contact request to %s", apiURL)

	var s *spinner.Spinner
	if showSpinner {
		s = spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Sending message..."
		s.Start()
	}
	result, err := contactform.NewClient(apiURL).Submit(ctx, form)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	if !result.Success {
		fmt.Fprintf(out, "✗ %s (%d %s)\n", result.Message, result.StatusCode, result.Code)
		if result.Detail != "" {
			fmt.Fprintf(out, "  detail: %s\n", result.Detail)
		}
		return errRejected
	}

	fmt.Fprintf(out, "✓ %s\n", result.Message)
	return nil
}
