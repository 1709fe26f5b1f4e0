package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

const (
	EnvPrefix = ""

	EnvAppEnv     = "CRAFT_APP_ENV"
	EnvPort       = "CRAFT_APP_PORT"
	EnvLogLevel   = "CRAFT_LOG_LEVEL"
	EnvDataDir    = "CRAFT_DATA_DIR"
	EnvJWTSecret  = "CRAFT_JWT_SECRET"
	EnvJWTIssuer  = "CRAFT_JWT_ISSUER"
	EnvJWTExpMins = "CRAFT_JWT_EXPIRATION_MINUTES"
	EnvRedisURL   = "CRAFT_REDIS_URL"
	EnvRedisAddr  = "CRAFT_REDIS_ADDR"

	AppEnvDev         = "dev"
	AppEnvDevelopment = "development"
	AppEnvProd        = "prod"
	AppEnvProduction  = "production"

	// DefaultJWTSecret matches the secret the storefront used before it was configurable.
	DefaultJWTSecret = "craft-market-secret"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	Store         StoreConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Redis         RedisConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error
	if strings.TrimSpace(c.App.Port) == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s is required", EnvPort))
	}
	if strings.TrimSpace(c.Store.DataDir) == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s is required", EnvDataDir))
	}
	if c.JWT.Secret == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s is required", EnvJWTSecret))
	}
	if c.App.IsProd() && c.JWT.Secret == DefaultJWTSecret {
		errs = multierr.Append(errs, fmt.Errorf("%s must be overridden in production", EnvJWTSecret))
	}
	if c.JWT.ExpirationMinutes <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvJWTExpMins))
	}
	return errs
}

type AppConfig struct {
	Env          string `envconfig:"CRAFT_APP_ENV" default:"development"`
	Port         string `envconfig:"CRAFT_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"CRAFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CRAFT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, AppEnvDevelopment)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, AppEnvProduction)
}

type ServerConfig struct {
	ReadTimeout     time.Duration `envconfig:"CRAFT_SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"CRAFT_SERVER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"CRAFT_SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type StoreConfig struct {
	DataDir string `envconfig:"CRAFT_DATA_DIR" default:"./data"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CRAFT_JWT_SECRET" default:"craft-market-secret"`
	Issuer            string `envconfig:"CRAFT_JWT_ISSUER" default:"craft-collective"`
	ExpirationMinutes int    `envconfig:"CRAFT_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TTL returns the configured token lifetime.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CRAFT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CRAFT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CRAFT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CRAFT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CRAFT_ARGON_KEY_LEN" default:"32"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CRAFT_REDIS_URL"`
	Address      string        `envconfig:"CRAFT_REDIS_ADDR"`
	Password     string        `envconfig:"CRAFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"CRAFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CRAFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CRAFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CRAFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CRAFT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"CRAFT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CRAFT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"CRAFT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CRAFT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"CRAFT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"CRAFT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"CRAFT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CRAFT_CORS_ALLOWED_ORIGINS" default:"*"`
}
