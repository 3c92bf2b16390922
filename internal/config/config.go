package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	PracticumToken string `envconfig:"PRACTICUM_TOKEN" required:"true"`
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	TelegramChatID int64  `envconfig:"TELEGRAM_CHAT_ID" required:"true"`

	Endpoint       string        `envconfig:"ENDPOINT" default:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
	PollInterval   time.Duration `envconfig:"POLL_INTERVAL" default:"10m"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	Lookback       time.Duration `envconfig:"LOOKBACK" default:"720h"` // initial polling window

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"` // healthz
}

// Load reads environment variables into Config. A required variable that is
// set but empty is treated the same as a missing one.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	for name, val := range map[string]string{
		"PRACTICUM_TOKEN": cfg.PracticumToken,
		"TELEGRAM_TOKEN":  cfg.TelegramToken,
	} {
		if val == "" {
			return cfg, fmt.Errorf("required environment variable %s is empty", name)
		}
	}
	return cfg, nil
}
