package main

import (
	"context"
	"fmt"

	"go-contact-relay/pkg/email"

	"github.com/spf13/cobra"
)

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email",
	Short: "Check the email transport without sending anything",
	Long: `Connects to the configured relay and authenticates, then disconnects.

Exits non-zero when credentials are missing or the relay rejects them.`,
	RunE: runVerifyEmail,
}

func runVerifyEmail(cmd *cobra.Command, args []string) error {
	sender, err := newSender()
	if err != nil {
		return err
	}
	if !sender.IsConfigured() {
		return email.ErrNotConfigured
	}

	v, ok := sender.(email.Verifier)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "provider %s has no connection check; credentials present\n", sender.Provider())
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SendTimeout)
	defer cancel()
	if err := v.Verify(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "provider %s verified\n", sender.Provider())
	return nil
}
