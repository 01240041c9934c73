package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Email providers understood by the transport factory
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderLog    = "log"
)

type Config struct {
	Port     string
	Mode     string // gin mode: debug, release, test
	LogLevel string
	// Outbound mail transport
	EmailProvider      string
	EmailUser          string // account identity for the relay
	EmailPassword      string // account secret (SMTP password or Resend API key)
	SMTPHost           string
	SMTPPort           int
	SMTPFromEmail      string
	SenderName         string
	SendTimeout        time.Duration
	VerifyEmailOnStart bool
	// Contact pipeline
	OperatorEmail      string // where operator notifications are delivered
	SendAcknowledgment bool
	Timezone           string
	ExposeErrorDetails bool
	Business           BusinessProfile
	// HTTP
	CORSAllowedOrigins []string
	// Redis (optional, rate limit counters)
	RedisURL      string
	RedisPassword string
	// Rate Limiting
	ContactRateLimit  int
	ContactRateWindow time.Duration
}

// BusinessProfile is rendered into the acknowledgment sent back to the submitter
type BusinessProfile struct {
	Name           string
	Address        string
	Phones         []string
	Email          string
	Website        string
	ResponseWindow string
}

func LoadConfig() (*Config, error) {
	// .env is optional; hosted deployments inject the environment directly
	_ = godotenv.Load()

	emailUser := strings.TrimSpace(getEnv("EMAIL_USER", ""))

	cfg := &Config{
		Port:     getEnv("PORT", "3000"),
		Mode:     getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		// Transport
		EmailProvider:      strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderSMTP)),
		EmailUser:          emailUser,
		EmailPassword:      getEnv("EMAIL_PASSWORD", ""),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPFromEmail:      getEnv("SMTP_FROM_EMAIL", emailUser),
		SenderName:         getEnv("SENDER_NAME", "Guruji Foils Website"),
		SendTimeout:        time.Duration(getEnvInt("SMTP_SEND_TIMEOUT_SECONDS", 10)) * time.Second,
		VerifyEmailOnStart: getEnvBool("SMTP_VERIFY_ON_START", true),
		// Pipeline
		OperatorEmail:      getEnv("CONTACT_EMAIL_TO", emailUser),
		SendAcknowledgment: getEnvBool("SEND_ACKNOWLEDGMENT", true),
		Timezone:           getEnv("TIMEZONE", "Asia/Kolkata"),
		ExposeErrorDetails: getEnvBool("EXPOSE_ERROR_DETAILS", true),
		Business: BusinessProfile{
			Name:           getEnv("BUSINESS_NAME", "Guruji Foils"),
			Address:        getEnv("BUSINESS_ADDRESS", "Choudhary Mohalla, Village DhulSiras, Near Bus stand, New Delhi, South West Delhi, Delhi, 110077"),
			Phones:         getEnvList("BUSINESS_PHONES", []string{"+91-9999-55-1918", "+91-8477-83-4579"}),
			Email:          getEnv("BUSINESS_EMAIL", "gurujifoils@gmail.com"),
			Website:        getEnv("BUSINESS_WEBSITE", "https://www.gurujifoils.com"),
			ResponseWindow: getEnv("BUSINESS_RESPONSE_WINDOW", "24-48 hours"),
		},
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"https://www.gurujifoils.com",
			"https://gurujifoils.com",
		}),
		RedisURL:          getEnv("REDIS_URL", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		ContactRateLimit:  getEnvInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: time.Duration(getEnvInt("CONTACT_RATE_WINDOW_SECONDS", 300)) * time.Second,
	}

	if !cfg.HasEmailCredentials() {
		log.Println("WARNING: EMAIL_USER or EMAIL_PASSWORD is missing. Contact submissions will be rejected with a configuration error.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// HasEmailCredentials reports whether both relay credentials are present.
// The log provider needs none.
func (c *Config) HasEmailCredentials() bool {
	if c.EmailProvider == ProviderLog {
		return true
	}
	return c.EmailUser != "" && c.EmailPassword != ""
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.Mode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
