package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:5000"`
	Env        string `env:"ENV,          default=development"`
	LogLevel   string `env:"LOG_LEVEL,    default=info"`

	// StatePath is where the durable session snapshot lives. Empty means
	// $HOME/.svcdesk/state.json.
	StatePath string `env:"STATE_PATH"`

	// RequestTimeout bounds every backend call made through the gateway.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=30s"`
	// LoginTimeout bounds the login verification round-trip; on expiry the
	// session transitions to failed instead of hanging in verifying.
	LoginTimeout time.Duration `env:"LOGIN_TIMEOUT, default=10s"`

	Stub StubConfig
}

// StubConfig configures the local development backend.
type StubConfig struct {
	Addr      string        `env:"STUB_ADDR,       default=:5000"`
	JWTSecret string        `env:"STUB_JWT_SECRET, default=dev-secret"`
	TokenTTL  time.Duration `env:"STUB_TOKEN_TTL,  default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
