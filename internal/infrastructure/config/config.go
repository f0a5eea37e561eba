package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=30m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	DefaultLanguage    string `env:"DEFAULT_LANGUAGE,     default=en"`
	DefaultHouseSystem string `env:"DEFAULT_HOUSE_SYSTEM, default=placidus"`
	TranslationsDir    string `env:"TRANSLATIONS_DIR,     default=translations"`

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Ephemeris EphemerisConfig
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=astro_platform"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=20"`
}

type RedisConfig struct {
	Addr         string `env:"REDIS_ADDR,           default=localhost:6379"`
	DB           int    `env:"REDIS_DB,             default=0"`
	PoolSize     int    `env:"REDIS_POOL_SIZE,      default=10"`
	MinIdleConns int    `env:"REDIS_MIN_IDLE_CONNS, default=2"`
}

type EphemerisConfig struct {
	BaseURL string        `env:"EPHEMERIS_URL,     default=http://localhost:8100"`
	Timeout time.Duration `env:"EPHEMERIS_TIMEOUT, default=15s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
