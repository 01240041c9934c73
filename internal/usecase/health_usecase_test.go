package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-contact-relay/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	sender := new(MockSender)
	sender.On("IsConfigured").Return(false)

	status := usecase.NewHealthUsecase(sender, "release", func() string { return "redis" }).Check(context.Background())

	assert.Equal(t, "ok", status.Status)
	_, err := time.Parse(time.RFC3339, status.Timestamp)
	assert.NoError(t, err)
	assert.Equal(t, "release", status.Environment.Mode)
	assert.False(t, status.Environment.HasEmailConfig)
	assert.Equal(t, "mock", status.Environment.EmailProvider)
	assert.Equal(t, "redis", status.Environment.RateLimitStore)
}
