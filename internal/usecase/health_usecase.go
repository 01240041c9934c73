package usecase

import (
	"context"
	"time"

	"go-contact-relay/internal/domain"
	"go-contact-relay/pkg/email"
)

type healthUsecase struct {
	sender         email.Sender
	mode           string
	rateLimitStore func() string
	now            func() time.Time
}

// NewHealthUsecase reports liveness plus whether the transport has credentials.
// rateLimitStore names the active limiter backend at call time.
func NewHealthUsecase(sender email.Sender, mode string, rateLimitStore func() string) domain.HealthUsecase {
	if rateLimitStore == nil {
		rateLimitStore = func() string { return "memory" }
	}
	return &healthUsecase{
		sender:         sender,
		mode:           mode,
		rateLimitStore: rateLimitStore,
		now:            time.Now,
	}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	return domain.HealthStatus{
		Status:    "ok",
		Timestamp: u.now().UTC().Format(time.RFC3339),
		Environment: domain.HealthEnvironment{
			Mode:           u.mode,
			HasEmailConfig: u.sender.IsConfigured(),
			EmailProvider:  u.sender.Provider(),
			RateLimitStore: u.rateLimitStore(),
		},
	}
}
