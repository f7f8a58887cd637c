package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Host         string   `env:"HOST" envDefault:"127.0.0.1"`
	Port         int      `env:"PORT" envDefault:"8082"`
	AllowOrigins []string `env:"ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
	MaxUploadMB  int      `env:"MAX_UPLOAD_MB" envDefault:"16"`
	LogFile      string   `env:"LOG_FILE" envDefault:"logs/lensfit-service.log"`

	// дефолты сметы, если клиент их не прислал
	StoreName    string        `env:"STORE_NAME" envDefault:"アオイノメガネ / AOINOMEGANE"`
	SafetyMargin float64       `env:"DEFAULT_SAFETY_MARGIN_MM" envDefault:"0.2"`
	Allowance    float64       `env:"DEFAULT_ALLOWANCE_MM" envDefault:"2"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	SeedDemo     bool          `env:"SEED_DEMO_FRAMES" envDefault:"true"`
}

// Load читает .env (если есть) и переменные окружения.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.SafetyMargin < 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_SAFETY_MARGIN_MM must be >= 0, got %v", c.SafetyMargin))
	}
	if c.Allowance < 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_ALLOWANCE_MM must be >= 0, got %v", c.Allowance))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_MB must be > 0, got %d", c.MaxUploadMB))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }
