package email_test

import (
	"testing"

	"go-contact-relay/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOperatorEmail(t *testing.T) {
	html, text, err := email.RenderOperatorEmail(email.OperatorEmailData{
		SiteName:    "Guruji Foils Website",
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Phone:       "98765 43210",
		PhoneDigits: "9876543210",
		InquiryType: "quote",
		Message:     "Please send pricing.",
		ReceivedAt:  "Sunday, October 18, 2026 at 10:30 AM",
	})
	require.NoError(t, err)

	for _, body := range []string{html, text} {
		assert.Contains(t, body, "Asha Rao")
		assert.Contains(t, body, "asha@example.com")
		assert.Contains(t, body, "98765 43210")
		assert.Contains(t, body, "quote")
		assert.Contains(t, body, "Please send pricing.")
		assert.Contains(t, body, "Sunday, October 18, 2026 at 10:30 AM")
	}
	assert.Contains(t, html, `href="tel:9876543210"`)
}

func TestRenderOperatorEmailEscapesMarkup(t *testing.T) {
	html, text, err := email.RenderOperatorEmail(email.OperatorEmailData{
		Name:    "<script>alert(1)</script>",
		Message: "<b>bold</b>",
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt;")
	// the plain-text alternative is not markup and keeps the input as typed
	assert.Contains(t, text, "<b>bold</b>")
}

func TestRenderAcknowledgmentEmail(t *testing.T) {
	html, text, err := email.RenderAcknowledgmentEmail(email.AcknowledgmentEmailData{
		Name:           "Asha Rao",
		InquiryType:    "product",
		SubmittedAt:    "Sunday, October 18, 2026 at 10:30 AM",
		BusinessName:   "Guruji Foils",
		Address:        "New Delhi, 110077",
		Phones:         []string{"+91-9999-55-1918", "+91-8477-83-4579"},
		BusinessEmail:  "gurujifoils@gmail.com",
		Website:        "https://www.gurujifoils.com",
		ResponseWindow: "24-48 hours",
	})
	require.NoError(t, err)

	for _, body := range []string{html, text} {
		assert.Contains(t, body, "Asha Rao")
		assert.Contains(t, body, "product")
		assert.Contains(t, body, "Sunday, October 18, 2026 at 10:30 AM")
		assert.Contains(t, body, "24-48 hours")
		assert.Contains(t, body, "9999-55-1918")
		assert.Contains(t, body, "8477-83-4579")
		assert.Contains(t, body, "gurujifoils@gmail.com")
	}
}
