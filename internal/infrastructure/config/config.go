package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

type Config struct {
	Port         string `env:"PORT,          default=8080"`
	Env          string `env:"ENV,           default=development"`
	LogLevel     string `env:"LOG_LEVEL,     default=info"`
	StoreBackend string `env:"STORE_BACKEND, default=memory"`
	CORSOrigins  string `env:"CORS_ORIGINS,  default=*"`

	ActivityWorkers int `env:"ACTIVITY_WORKERS, default=4"`

	Mongo    MongoConfig
	Redis    RedisConfig
	ImageGen ImageGenConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=image_studio"`
}

// RedisConfig enables the shared idempotency store. IdempotencyTTL also
// bounds the in-memory fallback.
type RedisConfig struct {
	Enabled        bool          `env:"REDIS_ENABLED,         default=false"`
	Addr           string        `env:"REDIS_ADDR,            default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,              default=0"`
	CommandTimeout time.Duration `env:"REDIS_COMMAND_TIMEOUT, default=500ms"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL,       default=24h"`
}

// ImageGenConfig points at the hosted chat-completions endpoint. A zero
// Timeout leaves the upstream call unbounded.
type ImageGenConfig struct {
	URL        string        `env:"IMAGEGEN_URL,         default=https://oi-server.onrender.com/chat/completions"`
	APIKey     string        `env:"IMAGEGEN_API_KEY"`
	CustomerID string        `env:"IMAGEGEN_CUSTOMER_ID"`
	Model      string        `env:"IMAGEGEN_MODEL,       default=replicate/black-forest-labs/flux-1.1-pro"`
	Timeout    time.Duration `env:"IMAGEGEN_TIMEOUT,     default=0s"`
}

// IsDevelopment reports whether human-friendly logs should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Origins splits CORSOrigins on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendMemory, BackendMongo, c.StoreBackend)
	}
	if c.ImageGen.Timeout < 0 {
		return fmt.Errorf("IMAGEGEN_TIMEOUT must not be negative")
	}
	return nil
}

// Load reads an optional .env file, then the environment via go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
