package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "password",
	"your-secret-key-change-in-production",
}

type Config struct {
	Port         int    `env:"PORT" envDefault:"5000"`
	JWTSecret    string `env:"JWT_SECRET,required"`
	DataDir      string `env:"DATA_DIR" envDefault:"data"`
	FrontendURL  string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	DisableEmail bool   `env:"DISABLE_EMAIL" envDefault:"false"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	EmailUser    string `env:"EMAIL_USER"`
	EmailPass    string `env:"EMAIL_PASS"`
	EmailFrom    string `env:"EMAIL_FROM"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// From returns the sender address for outbound mail, falling back to
// the SMTP username the way the original deployment did.
func (c *Config) From() string {
	if c.EmailFrom != "" {
		return c.EmailFrom
	}
	return c.EmailUser
}

func (c *Config) Validate(isProduction bool) error {
	if isProduction {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters in production (generate with: openssl rand -base64 32)")
		}
		for _, weak := range knownWeakSecrets {
			if c.JWTSecret == weak {
				return fmt.Errorf("JWT_SECRET is a known weak default; set a strong secret in production")
			}
		}
	}

	if !c.DisableEmail {
		if c.SMTPHost == "" || c.EmailUser == "" || c.EmailPass == "" {
			log.Warn().Msg("email is enabled but SMTP_HOST/EMAIL_USER/EMAIL_PASS are incomplete: signups will fail to deliver confirmation emails")
		}
	} else {
		log.Info().Msg("email is disabled: confirmation links will be returned to callers and logged")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
