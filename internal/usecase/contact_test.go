package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go-contact-relay/config"
	"go-contact-relay/internal/domain"
	"go-contact-relay/internal/usecase"
	"go-contact-relay/pkg/email"
	"go-contact-relay/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const operatorAddr = "owner@gurujifoils.example"

// MockSender is a testify mock of email.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockSender) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockSender) Provider() string { return "mock" }

func ashaPayload() map[string]any {
	return map[string]any{
		"name":        "Asha Rao",
		"email":       "asha@example.com",
		"phone":       "98765 43210",
		"inquiryType": "quote",
		"message":     "Please send pricing.",
	}
}

var fixedNow = time.Date(2026, time.October, 18, 5, 0, 0, 0, time.UTC)

func newContactUC(sender email.Sender, acknowledge bool) domain.ContactUsecase {
	return usecase.NewContactUsecase(sender, validation.New(), usecase.ContactOptions{
		SiteName:           "Guruji Foils Website",
		FromEmail:          "site@gurujifoils.example",
		OperatorEmail:      operatorAddr,
		SendAcknowledgment: acknowledge,
		Location:           time.FixedZone("IST", 5*3600+1800),
		Business:           config.BusinessProfile{Name: "Guruji Foils", ResponseWindow: "24-48 hours"},
		SendTimeout:        time.Second,
		Now:                func() time.Time { return fixedNow },
	})
}

func contactError(t *testing.T, err error) *domain.ContactError {
	t.Helper()
	var cerr *domain.ContactError
	require.True(t, errors.As(err, &cerr), "expected *domain.ContactError, got %T", err)
	return cerr
}

func TestSubmitContact_OperatorOnly(t *testing.T) {
	sender := new(MockSender)
	sender.On("IsConfigured").Return(true)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg email.Message) bool {
		return msg.To == operatorAddr
	})).Return(nil).Once()

	uc := newContactUC(sender, false)
	result, err := uc.SubmitContact(context.Background(), ashaPayload())
	require.NoError(t, err)

	assert.Equal(t, domain.StateSucceeded, result.State)
	assert.True(t, result.OperatorNotified)
	assert.False(t, result.AcknowledgmentSent)
	assert.Empty(t, result.CustomerEmail)
	sender.AssertNumberOfCalls(t, "Send", 1)

	msg := sender.Calls[len(sender.Calls)-1].Arguments.Get(1).(email.Message)
	assert.Contains(t, msg.Subject, "quote")
	assert.Contains(t, msg.Subject, "Asha Rao")
	assert.Contains(t, msg.HTML, "Asha Rao")
	assert.Contains(t, msg.HTML, "Please send pricing.")
	assert.Contains(t, msg.HTML, "tel:9876543210")
	assert.Contains(t, msg.Text, "Sunday, October 18, 2026 at 10:30 AM")
	assert.Equal(t, "asha@example.com", msg.ReplyTo)
	assert.Equal(t, `"Guruji Foils Website" <site@gurujifoils.example>`, msg.From)
}

func TestSubmitContact_WithAcknowledgment(t *testing.T) {
	var sent []email.Message
	sender := new(MockSender)
	sender.On("IsConfigured").Return(true)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		sent = append(sent, args.Get(1).(email.Message))
	})

	uc := newContactUC(sender, true)
	result, err := uc.SubmitContact(context.Background(), ashaPayload())
	require.NoError(t, err)

	require.Len(t, sent, 2)
	assert.Equal(t, operatorAddr, sent[0].To, "operator notification goes first")
	assert.Equal(t, "asha@example.com", sent[1].To)
	assert.NotEmpty(t, sent[1].HTML)
	assert.NotEmpty(t, sent[1].Text)
	assert.Contains(t, sent[1].Text, "quote")
	assert.Contains(t, sent[1].Text, "Sunday, October 18, 2026 at 10:30 AM")

	assert.True(t, result.AcknowledgmentSent)
	assert.Equal(t, "asha@example.com", result.CustomerEmail)
	assert.Equal(t, fixedNow, result.SubmittedAt)
}

func TestSubmitContact_AcknowledgmentFailureStillSucceeds(t *testing.T) {
	ackErr := errors.New("550 mailbox unavailable")
	sender := new(MockSender)
	sender.On("IsConfigured").Return(true)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg email.Message) bool { return msg.To == operatorAddr })).Return(nil)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg email.Message) bool { return msg.To != operatorAddr })).Return(ackErr)

	uc := newContactUC(sender, true)
	result, err := uc.SubmitContact(context.Background(), ashaPayload())
	require.NoError(t, err)

	assert.True(t, result.OperatorNotified)
	assert.False(t, result.AcknowledgmentSent)
	assert.ErrorIs(t, result.AcknowledgmentErr, ackErr)
	assert.Empty(t, result.CustomerEmail)
	sender.AssertNumberOfCalls(t, "Send", 2)
}

func TestSubmitContact_OperatorFailure(t *testing.T) {
	t.Run("relay error is a delivery failure and skips the acknowledgment", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(true)
		sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("dial tcp: i/o timeout"))

		_, err := newContactUC(sender, true).SubmitContact(context.Background(), ashaPayload())
		cerr := contactError(t, err)
		assert.Equal(t, domain.FailureDelivery, cerr.Kind)
		assert.Contains(t, cerr.Err.Error(), "i/o timeout")
		sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("handshake error is a configuration failure", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(true)
		sender.On("Send", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: 535 bad credentials", email.ErrHandshake))

		_, err := newContactUC(sender, true).SubmitContact(context.Background(), ashaPayload())
		assert.Equal(t, domain.FailureConfiguration, contactError(t, err).Kind)
	})

	t.Run("send timeout is a delivery failure", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(true)
		sender.On("Send", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).Once()
		sender.On("Send", mock.Anything, mock.Anything).Return(context.DeadlineExceeded)

		uc := usecase.NewContactUsecase(sender, nil, usecase.ContactOptions{
			FromEmail:     "site@gurujifoils.example",
			OperatorEmail: operatorAddr,
			SendTimeout:   20 * time.Millisecond,
		})
		// first call blocks until the per-message deadline, then reports success
		_, err := uc.SubmitContact(context.Background(), ashaPayload())
		require.NoError(t, err)

		_, err = uc.SubmitContact(context.Background(), ashaPayload())
		cerr := contactError(t, err)
		assert.Equal(t, domain.FailureDelivery, cerr.Kind)
		assert.ErrorIs(t, cerr, context.DeadlineExceeded)
	})
}

func TestSubmitContact_NotConfigured(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(false)

		_, err := newContactUC(sender, true).SubmitContact(context.Background(), ashaPayload())
		cerr := contactError(t, err)
		assert.Equal(t, domain.FailureConfiguration, cerr.Kind)
		assert.ErrorIs(t, err, email.ErrNotConfigured)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("missing operator address", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(true)

		uc := usecase.NewContactUsecase(sender, nil, usecase.ContactOptions{FromEmail: "site@example.com"})
		_, err := uc.SubmitContact(context.Background(), ashaPayload())
		assert.Equal(t, domain.FailureConfiguration, contactError(t, err).Kind)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("validation still wins over configuration", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(false)

		payload := ashaPayload()
		delete(payload, "name")
		_, err := newContactUC(sender, true).SubmitContact(context.Background(), payload)
		assert.Equal(t, domain.FailureValidation, contactError(t, err).Kind)
	})
}

func TestSubmitContact_ValidationShortCircuits(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{"missing name", func(p map[string]any) { delete(p, "name") }, "name"},
		{"blank email", func(p map[string]any) { p["email"] = "   " }, "email"},
		{"null inquiry type", func(p map[string]any) { p["inquiryType"] = nil }, "inquiryType"},
		{"empty message", func(p map[string]any) { p["message"] = "" }, "message"},
		{"short phone", func(p map[string]any) { p["phone"] = "555-1234" }, "phone"},
		{"email without at sign", func(p map[string]any) { p["email"] = "asha.example.com" }, "email"},
		{"numeric phone", func(p map[string]any) { p["phone"] = float64(9876543210) }, "phone"},
		{"email unusable as reply-to", func(p map[string]any) { p["email"] = "foo,bar@example.com" }, "email"},
		{"email with angle bracket", func(p map[string]any) { p["email"] = "a<b@c.de" }, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sender := new(MockSender)
			sender.On("IsConfigured").Return(true)

			payload := ashaPayload()
			tc.mutate(payload)

			_, err := newContactUC(sender, true).SubmitContact(context.Background(), payload)
			cerr := contactError(t, err)
			assert.Equal(t, domain.FailureValidation, cerr.Kind)
			require.NotEmpty(t, cerr.Fields)
			assert.Equal(t, tc.field, cerr.Fields[0].Field)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

// recordingSender is safe for concurrent use
type recordingSender struct {
	mu   sync.Mutex
	sent []email.Message
}

func (s *recordingSender) Send(_ context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) IsConfigured() bool { return true }
func (s *recordingSender) Provider() string   { return "recording" }

func TestSubmitContact_ConcurrentSubmissions(t *testing.T) {
	sender := &recordingSender{}
	uc := newContactUC(sender, true)

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := ashaPayload()
			payload["name"] = fmt.Sprintf("Customer %d", i)
			_, err := uc.SubmitContact(context.Background(), payload)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, sender.sent, 2*n)
}

func TestContactOptionsFromConfig(t *testing.T) {
	opts, err := usecase.ContactOptionsFromConfig(&config.Config{Timezone: "UTC", OperatorEmail: operatorAddr, SendAcknowledgment: true})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, opts.Location)
	assert.Equal(t, operatorAddr, opts.OperatorEmail)
	assert.True(t, opts.SendAcknowledgment)

	_, err = usecase.ContactOptionsFromConfig(&config.Config{Timezone: "Mars/Olympus_Mons"})
	assert.Error(t, err)
}
