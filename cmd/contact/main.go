package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kingzyphor/portfolio-api/pkg/contactform"
	"github.com/kingzyphor/portfolio-api/pkg/httpclient"
	"github.com/spf13/cobra"
)

// defaultEndpoint matches the API server's default PORT
const defaultEndpoint = "http://localhost:8081/api/contact"

type sendOptions struct {
	endpoint string
	name     string
	email    string
	message  string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "contact",
		Short:         "Contact form client for the portfolio API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newSendCmd())
	return rootCmd
}

func newSendCmd() *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit a message through the contact relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.endpoint, "endpoint", defaultEndpoint, "contact relay URL")
	cmd.Flags().StringVar(&opts.name, "name", "", "sender name")
	cmd.Flags().StringVar(&opts.email, "email", "", "sender email")
	cmd.Flags().StringVar(&opts.message, "message", "", "message body")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", httpclient.DefaultTimeout, "request timeout")

	return cmd
}

func runSend(ctx context.Context, out io.Writer, opts *sendOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	form := contactform.New(opts.endpoint, httpclient.NewClientWithTimeout(opts.timeout))
	defer form.Close()

	fields := map[contactform.Field]string{
		contactform.FieldName:    opts.name,
		contactform.FieldEmail:   opts.email,
		contactform.FieldMessage: opts.message,
	}
	for field, value := range fields {
		if err := form.UpdateField(field, value); err != nil {
			return err
		}
	}

	if form.Form().Complete() {
		fmt.Fprintln(out, contactform.StatusText(contactform.StatusSending))
	}

	if err := form.Submit(ctx); err != nil {
		if text := form.StatusText(); text != "" {
			fmt.Fprintln(out, text)
		}
		return err
	}

	fmt.Fprintln(out, form.StatusText())
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
