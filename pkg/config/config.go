package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cart         CartConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"BULKMART_APP_ENV" required:"true"`
	Port         string   `envconfig:"BULKMART_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"BULKMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"BULKMART_LOG_WARN_STACK" default:"false"`
	LogFormat    string   `envconfig:"BULKMART_LOG_FORMAT" default:"json"`
	CORSOrigins  []string `envconfig:"BULKMART_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BULKMART_DB_DSN"`
	Driver string `envconfig:"BULKMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BULKMART_DB_HOST"`
	LegacyPort     int    `envconfig:"BULKMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BULKMART_DB_USER"`
	LegacyPassword string `envconfig:"BULKMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"BULKMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"BULKMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BULKMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BULKMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BULKMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BULKMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"BULKMART_DB_SLOW_QUERY_THRESHOLD" default:"250ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BULKMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BULKMART_REDIS_ADDR"`
	Password     string        `envconfig:"BULKMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"BULKMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BULKMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BULKMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BULKMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BULKMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BULKMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig holds the verification settings for tokens minted by the auth service.
type JWTConfig struct {
	Secret string `envconfig:"BULKMART_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"BULKMART_JWT_ISSUER" required:"true"`
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"BULKMART_CART_SESSION_TTL" default:"72h"`
}

// RateLimitConfig throttles the anonymous pricing endpoints per client IP.
type RateLimitConfig struct {
	Window time.Duration `envconfig:"BULKMART_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"BULKMART_RATE_LIMIT_LIMIT" default:"120"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BULKMART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
