package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"9090"`
	Secret     string `env:"SECRET,required,notEmpty"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	RabbitmqURL                string `env:"RABBITMQ_URL,required"`
	RabbitmqPasswordResetQueue string `env:"RABBITMQ_PASSWORD_RESET_QUEUE" envDefault:"password-reset-notifications"`

	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	BcryptHasherCost int      `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PasswordMinLength        int           `env:"PASSWORD_MIN_LENGTH" envDefault:"8"`
	PasswordMaxLength        int           `env:"PASSWORD_MAX_LENGTH" envDefault:"256"`
	PasswordResetTimeLimit   time.Duration `env:"PASSWORD_RESET_TIME_LIMIT" envDefault:"15m"`
	PasswordResetRedirectURL url.URL       `env:"PASSWORD_RESET_REDIRECT_URL" envDefault:"/"`
	PasswordResetUserIDParam string        `env:"PASSWORD_RESET_USER_ID_PARAM" envDefault:"user_id"`
	PasswordResetRateLimit   uint16        `env:"PASSWORD_RESET_RATE_LIMIT" envDefault:"3"`

	AwsRegion                     string  `env:"AWS_REGION" envDefault:"eu-central-1"`
	AwsAccessKey                  string  `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string  `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string  `env:"AWS_EMAIL_SENDER" envDefault:"no-reply@example.com"`
	AwsEmailPasswordResetTemplate string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"password-reset"`
	AwsEmailPasswordResetBaseUrl  url.URL `env:"AWS_EMAIL_PASSWORD_RESET_BASE_URL,required"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PasswordResetTimeLimit <= 0 {
		return fmt.Errorf("PASSWORD_RESET_TIME_LIMIT must be positive, got %s", c.PasswordResetTimeLimit)
	}
	if c.PasswordMinLength < 1 {
		return fmt.Errorf("PASSWORD_MIN_LENGTH must be positive, got %d", c.PasswordMinLength)
	}
	if c.PasswordMaxLength < c.PasswordMinLength {
		return fmt.Errorf("PASSWORD_MAX_LENGTH must not be less than PASSWORD_MIN_LENGTH")
	}
	if c.PasswordResetRateLimit == 0 {
		return fmt.Errorf("PASSWORD_RESET_RATE_LIMIT must be positive")
	}
	return nil
}
