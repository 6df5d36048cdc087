package config

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Common holds settings shared by every service.
type Common struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
}

// Pretty reports whether logs should be human readable.
func (c Common) Pretty() bool {
	return c.Env == "development"
}

// Backend configures cmd/backend.
type Backend struct {
	Port string `env:"BACKEND_PORT, default=8080"`
	Common

	APIKeyHeader string   `env:"BACKEND_API_KEY_HEADER, default=X-ApiKey-Backend"`
	APIKeys      []string `env:"BACKEND_API_KEYS"`

	Mongo       MongoConfig
	AuthService AuthServiceConfig
}

// Frontend configures cmd/frontend.
type Frontend struct {
	Port string `env:"FRONTEND_PORT, default=8000"`
	Common

	SessionTTL   time.Duration `env:"SESSION_TTL,   default=12h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`

	Redis          RedisConfig
	AuthService    AuthServiceConfig
	BackendService BackendServiceConfig
}

// Auth configures cmd/auth.
type Auth struct {
	Port string `env:"AUTH_PORT, default=8081"`
	Common

	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"JWT_TTL,    default=24h"`

	APIKeyHeader string   `env:"AUTH_API_KEY_HEADER, default=X-ApiKey-Auth"`
	APIKeys      []string `env:"AUTH_API_KEYS"`

	AdminUsername string `env:"AUTH_ADMIN_USERNAME"`
	AdminPassword string `env:"AUTH_ADMIN_PASSWORD"`

	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=forum"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// AuthServiceConfig locates the authentication service.
type AuthServiceConfig struct {
	Host         string        `env:"AUTH_SERVICE_HOST,           default=localhost"`
	Port         string        `env:"AUTH_SERVICE_PORT,           default=8081"`
	BasePath     string        `env:"AUTH_SERVICE_BASE_PATH,      default=/api/v1"`
	APIKeyHeader string        `env:"AUTH_SERVICE_API_KEY_HEADER, default=X-ApiKey-Auth"`
	APIKey       string        `env:"AUTH_SERVICE_API_KEY"`
	Timeout      time.Duration `env:"AUTH_SERVICE_TIMEOUT,        default=60s"`
	Retries      uint          `env:"AUTH_SERVICE_RETRIES,        default=0"`
}

func (c AuthServiceConfig) BaseURL() string {
	return baseURL(c.Host, c.Port, c.BasePath)
}

// BackendServiceConfig locates the backend REST API.
type BackendServiceConfig struct {
	Host         string        `env:"BACKEND_SERVICE_HOST,           default=localhost"`
	Port         string        `env:"BACKEND_SERVICE_PORT,           default=8080"`
	BasePath     string        `env:"BACKEND_SERVICE_BASE_PATH,      default=/api/v1"`
	APIKeyHeader string        `env:"BACKEND_SERVICE_API_KEY_HEADER, default=X-ApiKey-Backend"`
	APIKey       string        `env:"BACKEND_SERVICE_API_KEY"`
	Timeout      time.Duration `env:"BACKEND_SERVICE_TIMEOUT,        default=30s"`
	Retries      uint          `env:"BACKEND_SERVICE_RETRIES,        default=1"`
}

func (c BackendServiceConfig) BaseURL() string {
	return baseURL(c.Host, c.Port, c.BasePath)
}

func baseURL(host, port, path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "http://" + net.JoinHostPort(host, port) + strings.TrimSuffix(path, "/")
}

func LoadBackend() *Backend   { return mustLoad(&Backend{}, nil) }
func LoadFrontend() *Frontend { return mustLoad(&Frontend{}, nil) }
func LoadAuth() *Auth         { return mustLoad(&Auth{}, nil) }

// mustLoad reads configuration from environment variables using
// go-envconfig, or from l when it is non-nil.
func mustLoad[T any](cfg *T, l envconfig.Lookuper) *T {
	if err := load(context.Background(), cfg, l); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, target any, l envconfig.Lookuper) error {
	if l == nil {
		return envconfig.Process(ctx, target)
	}
	return envconfig.ProcessWith(ctx, &envconfig.Config{Target: target, Lookuper: l})
}
