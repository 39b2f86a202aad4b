// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// defaultSenderEmail is Resend's shared onboarding sender, usable without a
// verified domain.
const defaultSenderEmail = "onboarding@resend.dev"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr   string
	DBPath       string
	ManagerEmail string
	ResendAPIKey string
	SenderEmail  string
	SeedUsers    bool
}

// HasNotificationConfig returns true when both the manager address and the
// provider credential are present. Used by the composition root for a
// startup log line only; the request path re-checks the manager address on
// every call.
func (c *Config) HasNotificationConfig() bool {
	return c.ManagerEmail != "" && c.ResendAPIKey != ""
}

// Load reads configuration from environment variables and returns a
// validated Config. The notification settings (LICENSEPANEL_MANAGER_EMAIL,
// LICENSEPANEL_RESEND_API_KEY) are optional; if absent, developer-access
// requests fail with the documented configuration error. Optional variables
// with defaults: LICENSEPANEL_LISTEN_ADDR (127.0.0.1:8080),
// LICENSEPANEL_DB_PATH (licensepanel.db), LICENSEPANEL_SENDER_EMAIL,
// LICENSEPANEL_SEED_USERS (true).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("LICENSEPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "licensepanel.db"
	if v, ok := os.LookupEnv("LICENSEPANEL_DB_PATH"); ok {
		dbPath = v
	}

	senderEmail := defaultSenderEmail
	if v, ok := os.LookupEnv("LICENSEPANEL_SENDER_EMAIL"); ok {
		senderEmail = v
	}

	seedUsers := true
	if v, ok := os.LookupEnv("LICENSEPANEL_SEED_USERS"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("LICENSEPANEL_SEED_USERS has invalid boolean %q: %w", v, err)
		}
		seedUsers = parsed
	}

	return &Config{
		ListenAddr:   listenAddr,
		DBPath:       dbPath,
		ManagerEmail: os.Getenv("LICENSEPANEL_MANAGER_EMAIL"),
		ResendAPIKey: os.Getenv("LICENSEPANEL_RESEND_API_KEY"),
		SenderEmail:  senderEmail,
		SeedUsers:    seedUsers,
	}, nil
}
