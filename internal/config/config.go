package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// InsecureDevSecret is substituted for a missing signing secret outside of
// strict mode. It must never survive into a production deployment; Validate
// refuses to start with it when strict mode is on.
const InsecureDevSecret = "your-secret-key"

const minSecretLength = 32

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN            string `env:"DSN,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Auth struct {
		Secret string `env:"SECRET"`
		// StrictSecret turns the weak-secret warning into a startup failure.
		// Production always behaves strictly.
		StrictSecret    bool `env:"STRICT_SECRET" envDefault:"false"`
		TokenExpiration int  `env:"TOKEN_EXPIRATION" envDefault:"86400"` // 1 day
		CookieMaxAge    int  `env:"COOKIE_MAX_AGE" envDefault:"604800"`  // 7 days
	} `envPrefix:"AUTH_"`
	InitialAdmin struct {
		Name     string `env:"NAME" envDefault:"Administrator"`
		Email    string `env:"EMAIL,required"`
		Password string `env:"PASSWORD,required"`
	} `envPrefix:"INITIAL_ADMIN_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD" envDefault:""`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	OTP struct {
		Expiration int `env:"EXPIRATION" envDefault:"900"` // 15 minutes
	} `envPrefix:"OTP_"`
	NewUser struct {
		PasswordLength int `env:"PASSWORD_LENGTH" envDefault:"12"`
	} `envPrefix:"NEW_USER_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Seed struct {
		Password string `env:"PASSWORD" envDefault:"changeme123"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Return only the first error to keep the log readable.
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

// Validate applies the signing-secret policy. In strict mode (explicit flag or
// production environment) a missing or short secret is a startup failure; in
// development the process keeps running on an insecure default so that local
// setups work, but the weakness is logged loudly.
func (cfg *Config) Validate() error {
	if len(cfg.Auth.Secret) >= minSecretLength {
		return nil
	}

	if cfg.Auth.StrictSecret || cfg.Environment == "production" {
		return fmt.Errorf("AUTH_SECRET must be at least %d characters (got %d)", minSecretLength, len(cfg.Auth.Secret))
	}

	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = InsecureDevSecret
	}
	slog.Warn("AUTH_SECRET is missing or shorter than the minimum length; tokens are easy to forge. Do not run this configuration outside development.",
		"length", len(cfg.Auth.Secret),
		"minimum", minSecretLength,
	)

	return nil
}
