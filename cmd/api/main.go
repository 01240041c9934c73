package main

import (
	"fmt"
	"os"
	_ "time/tzdata" // TIMEZONE must resolve on minimal images

	"go-contact-relay/config"
	_ "go-contact-relay/docs" // Important for Swagger
	"go-contact-relay/pkg/email"
	"go-contact-relay/pkg/logger"

	"github.com/spf13/cobra"
)

var cfg *config.Config

// @title           Contact Relay API
// @version         1.0
// @description     Validates website contact form submissions and relays them by email.
// @host            localhost:3000
// @BasePath        /api
var rootCmd = &cobra.Command{
	Use:   "contact-relay",
	Short: "Contact form validation and email relay",
	Long: `contact-relay receives contact form submissions, validates them and
emails them to the business operator, optionally acknowledging the submitter.

Without a subcommand it starts the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Init(cfg.LogLevel)
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(verifyEmailCmd)
	rootCmd.AddCommand(sendTestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newSender builds the configured transport and warns when it lacks credentials
func newSender() (email.Sender, error) {
	sender, err := email.NewSender(cfg)
	if err != nil {
		return nil, err
	}
	if !sender.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable",
			"provider", sender.Provider())
	}
	return sender, nil
}
