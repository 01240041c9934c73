package main

import (
	"fmt"

	"go-contact-relay/internal/usecase"
	"go-contact-relay/pkg/logger"
	"go-contact-relay/pkg/validation"

	"github.com/spf13/cobra"
)

var sendTestCmd = &cobra.Command{
	Use:   "send-test [submitter-email]",
	Short: "Run a sample submission through the full pipeline",
	Long: `Validates, formats and dispatches a sample inquiry exactly as POST /api/contact
would. The operator receives the notification; submitter-email receives the
acknowledgment when SEND_ACKNOWLEDGMENT is on.`,
	Args: cobra.ExactArgs(1),
	RunE: runSendTest,
}

var (
	sendTestName        string
	sendTestPhone       string
	sendTestInquiryType string
	sendTestMessage     string
)

func init() {
	sendTestCmd.Flags().StringVar(&sendTestName, "name", "Test Submitter", "submitter name")
	sendTestCmd.Flags().StringVar(&sendTestPhone, "phone", "98765 43210", "submitter phone")
	sendTestCmd.Flags().StringVar(&sendTestInquiryType, "inquiry-type", "test", "inquiry category")
	sendTestCmd.Flags().StringVar(&sendTestMessage, "message", "This is a test submission.", "message body")
}

func runSendTest(cmd *cobra.Command, args []string) error {
	sender, err := newSender()
	if err != nil {
		return err
	}

	opts, err := usecase.ContactOptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Logger = logger.Log
	contactUC := usecase.NewContactUsecase(sender, validation.New(), opts)

	result, err := contactUC.SubmitContact(cmd.Context(), map[string]any{
		"name":        sendTestName,
		"email":       args[0],
		"phone":       sendTestPhone,
		"inquiryType": sendTestInquiryType,
		"message":     sendTestMessage,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "operator notified: %t\n", result.OperatorNotified)
	fmt.Fprintf(out, "acknowledgment sent: %t\n", result.AcknowledgmentSent)
	if result.AcknowledgmentErr != nil {
		fmt.Fprintf(out, "acknowledgment error: %v\n", result.AcknowledgmentErr)
	}
	return nil
}
