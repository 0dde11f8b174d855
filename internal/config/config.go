package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	AppEnv string `env:"APP_ENV" envDefault:"production"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"` // mysql, postgres or sqlite
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBPath     string `env:"DB_PATH" envDefault:"banksampah.db"`

	// Prefer the Cloud SQL unix socket for mysql when set.
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// TrustCallerPricing lets admins enter per-item price and points on manual
	// transactions. When false those values are recomputed from the catalog.
	TrustCallerPricing bool `env:"TRUST_CALLER_PRICING" envDefault:"true"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	GitSHA    string `env:"GIT_SHA" envDefault:"dev"`
	BuildTime string `env:"BUILD_TIME"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
