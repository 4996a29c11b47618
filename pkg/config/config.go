package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "shopwave"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SHOPWAVE_DB_DSN"
	EnvDBHost = "SHOPWAVE_DB_HOST"
	EnvDBUser = "SHOPWAVE_DB_USER"
	EnvDBName = "SHOPWAVE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Identity     IdentityConfig
	Checkout     CheckoutConfig
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
	Env          string `envconfig:"SHOPWAVE_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPWAVE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOPWAVE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPWAVE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPWAVE_DB_DSN"`
	Driver string `envconfig:"SHOPWAVE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPWAVE_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPWAVE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPWAVE_DB_USER"`
	LegacyPassword string `envconfig:"SHOPWAVE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPWAVE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPWAVE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPWAVE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPWAVE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPWAVE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPWAVE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPWAVE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHOPWAVE_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPWAVE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPWAVE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPWAVE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPWAVE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPWAVE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPWAVE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPWAVE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	Secret     string `envconfig:"SHOPWAVE_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"SHOPWAVE_SESSION_ISSUER" required:"true"`
	TTLMinutes int    `envconfig:"SHOPWAVE_SESSION_TTL_MINUTES" default:"86400"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type IdentityConfig struct {
	APIURL  string        `envconfig:"SHOPWAVE_IDENTITY_API_URL" required:"true"`
	APIKey  string        `envconfig:"SHOPWAVE_IDENTITY_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"SHOPWAVE_IDENTITY_TIMEOUT" default:"10s"`
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration `envconfig:"SHOPWAVE_CHECKOUT_PROCESSING_DELAY" default:"1500ms"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"SHOPWAVE_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"SHOPWAVE_SQLITE_PATH" default:"shopwave.db"`
	AutoMigrate bool   `envconfig:"SHOPWAVE_AUTO_MIGRATE" default:"false"`
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
