package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/osa911/portfolio/internal/api/validation"
	"github.com/osa911/portfolio/internal/client"
	"github.com/osa911/portfolio/internal/contactform"
)

// staticWidget hands out a token obtained elsewhere, e.g. a Turnstile test key.
type staticWidget struct {
	token string
}

func (w staticWidget) Render(context.Context) (string, error) {
	if w.token == "" {
		return "", errors.New("no CAPTCHA token supplied")
	}
	return w.token, nil
}

func (w staticWidget) Reset(context.Context) error {
	return nil
}

// printFocuser reports the field the form would focus.
type printFocuser struct{}

func (printFocuser) Focus(field string) {
	logger.Debug("Focus moved to %s", field)
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a contact submission to a running API",
	Long: `Fill in the contact form field by field and submit it, running the same
validation and CAPTCHA flow as the website.

Example:
  portfolio send --name "Jo" --email jo@example.com --message "Hello there"
  portfolio send --url https://example.com --turnstile-token XXXX.DUMMY.TOKEN.XXXX ...`,
	Run: func(cmd *cobra.Command, args []string) {
		baseURL, _ := cmd.Flags().GetString("url")
		token, _ := cmd.Flags().GetString("turnstile-token")
		captcha, _ := cmd.Flags().GetBool("captcha")

		values := map[string]string{}
		for flag, field := range map[string]string{
			"name":    validation.FieldName,
			"email":   validation.FieldEmail,
			"phone":   validation.FieldPhone,
			"message": validation.FieldDescription,
		} {
			values[field], _ = cmd.Flags().GetString(flag)
		}

		ctx := cmd.Context()
		form := contactform.NewController(
			contactform.NewState(captcha || token != ""),
			client.New(baseURL, nil),
			staticWidget{token: token},
			printFocuser{},
		)

		for _, field := range contactform.InputFields {
			form.Dispatch(ctx, contactform.Change{Field: field, Value: values[field]})
			form.Dispatch(ctx, contactform.Blur{Field: field})
		}

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " " + contactform.MessageSending
		s.Start()
		state := form.Dispatch(ctx, contactform.Submit{})
		s.Stop()

		for _, field := range validation.FieldOrder {
			if msg, shown := state.VisibleError(field); shown {
				fmt.Printf("  %-15s %s\n", field+":", msg)
			}
		}

		fmt.Println(state.Status.Message)
		if state.Status.Type != contactform.StatusSuccess {
			os.Exit(1)
		}
	},
}

func initSendCommand() {
	sendCmd.Flags().String("url", "http://localhost:8080", "Base URL of the portfolio API")
	sendCmd.Flags().String("name", "", "Your name")
	sendCmd.Flags().String("email", "", "Your e-mail address")
	sendCmd.Flags().String("phone", "", "Phone number (optional)")
	sendCmd.Flags().String("message", "", "Message body")
	sendCmd.Flags().String("turnstile-token", "", "CAPTCHA token to submit with the form")
	sendCmd.Flags().Bool("captcha", false, "Require a CAPTCHA token before submitting")
}
