package domain

import "context"

// HealthStatus is the GET /api/health body
type HealthStatus struct {
	Status      string            `json:"status" example:"ok"`
	Timestamp   string            `json:"timestamp" example:"2026-10-18T05:00:00Z"`
	Environment HealthEnvironment `json:"environment"`
}

type HealthEnvironment struct {
	Mode           string `json:"mode" example:"release"`
	HasEmailConfig bool   `json:"hasEmailConfig"`
	EmailProvider  string `json:"emailProvider" example:"smtp"`
	RateLimitStore string `json:"rateLimitStore" example:"redis"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}
