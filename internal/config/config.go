package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	API     APIConfig
	Payment PaymentConfig
	State   StateConfig
	Debug   bool `env:"STOREFRONT_DEBUG" envDefault:"false"`
}

type APIConfig struct {
	BaseURL string        `env:"STOREFRONT_API_URL" envDefault:"https://api.greenroots.example/api"`
	Timeout time.Duration `env:"STOREFRONT_HTTP_TIMEOUT" envDefault:"30s"`
}

// PaymentConfig points at the payment service, which runs on a host of its
// own, separate from the main API.
type PaymentConfig struct {
	BaseURL string `env:"STOREFRONT_PAYMENT_URL" envDefault:"http://localhost:3003"`
}

type StateConfig struct {
	// Dir holds the session file and logs. Empty means a "storefront"
	// directory under the user config dir.
	Dir string `env:"STOREFRONT_STATE_DIR"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.State.Dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		cfg.State.Dir = filepath.Join(base, "storefront")
	}
	return cfg, nil
}
