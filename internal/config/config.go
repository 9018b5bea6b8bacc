// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Config holds the application's configuration, loaded from .env and
// the process environment.
type Config struct {
	APIHost string `validate:"required"`
	Port    int    `validate:"required,min=1,max=65535"`
	// APIToken enables bearer auth when set; empty disables auth.
	APIToken string
	// DBPath is the sqlite database file ("file::memory:?cache=shared"
	// works for throwaway instances).
	DBPath string `validate:"required"`
	// AllowEmptyBulk permits empty lists in bulk requests instead of
	// rejecting them as a shape error.
	AllowEmptyBulk bool
	// WebhookURL, when set, receives a summary after each bulk mutation.
	WebhookURL string `validate:"omitempty,url"`
}

// Load loads and validates the full application configuration.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile("config/.env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetDefault("API_HOST", "127.0.0.1")
	v.SetDefault("PORT", 5000)
	v.SetDefault("DB_PATH", "bulkrest.db")
	v.SetDefault("ALLOW_EMPTY_BULK", false)

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; the environment still applies.
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	appConfig := &Config{
		APIHost:        v.GetString("API_HOST"),
		Port:           v.GetInt("PORT"),
		APIToken:       v.GetString("API_TOKEN"),
		DBPath:         v.GetString("DB_PATH"),
		AllowEmptyBulk: v.GetBool("ALLOW_EMPTY_BULK"),
		WebhookURL:     v.GetString("WEBHOOK_URL"),
	}

	if err := validate.Struct(appConfig); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return appConfig, nil
}
