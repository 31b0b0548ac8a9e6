// Package config loads runtime configuration from the environment. A .env
// file in the working directory is merged in first; real environment
// variables always win.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"CHORECHART_PORT" envDefault:"8080"`
	DBPath   string `env:"CHORECHART_DB_PATH" envDefault:"chorechart.db"`
	LogLevel string `env:"CHORECHART_LOG_LEVEL" envDefault:"info"`

	Mail MailConfig
}

// MailConfig selects the delivery channel: an API key enables the HTTP
// channel, full SMTP credentials enable SMTP, neither means mock delivery.
type MailConfig struct {
	APIKey        string `env:"MAIL_API_KEY"`
	APIURL        string `env:"MAIL_API_URL"`
	Server        string `env:"MAIL_SERVER"`
	Port          int    `env:"MAIL_PORT" envDefault:"587"`
	Username      string `env:"MAIL_USERNAME"`
	Password      string `env:"MAIL_PASSWORD"`
	UseTLS        bool   `env:"MAIL_USE_TLS" envDefault:"true"`
	DefaultSender string `env:"MAIL_DEFAULT_SENDER" envDefault:"noreply@chorechart.local"`
	SenderName    string `env:"MAIL_SENDER_NAME" envDefault:"Chore Chart"`
}

// Load reads an optional .env file and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env is not an error

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
