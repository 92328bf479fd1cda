package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every knob the service reads from the environment.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	CORSHosts string `env:"CORS_HOSTS" envDefault:"http://localhost:3000"`
	DataDir   string `env:"DATA_DIR" envDefault:"./data"`
	HostURL   string `env:"HOST_URL" envDefault:"http://localhost:8080"`

	// Shared static password for the admin role. Advisory access control,
	// not a security boundary.
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"gabriel111"`

	// Remote updates backend. When project ID or credentials are missing the
	// updates feature degrades to an inert mock.
	FirestoreProjectID string `env:"FIRESTORE_PROJECT_ID"`
	FirestoreCredsJSON string `env:"FIRESTORE_CREDENTIALS_JSON"`

	// Optional mail notification on published updates.
	ResendKey    string   `env:"RESEND_KEY"`
	TeamMailList []string `env:"TEAM_MAIL_LIST" envSeparator:","`

	SaveDebounce    time.Duration `env:"SAVE_DEBOUNCE" envDefault:"500ms"`
	PollInterval    time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
	FreshnessWindow time.Duration `env:"FRESHNESS_WINDOW" envDefault:"5s"`
}

// ParseEnv loads the configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
