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
	FeatureFlags FeatureFlagsConfig
	SalesHistory SalesHistoryConfig
	Checkout     CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if cfg.Checkout.MaxOrderIDAttempts <= 0 {
		cfg.Checkout.MaxOrderIDAttempts = 1
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"POS_APP_ENV" required:"true"`
	Port         string   `envconfig:"POS_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"POS_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"POS_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"POS_CORS_ALLOWED_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"POS_DB_DSN"`

	Host     string `envconfig:"POS_DB_HOST"`
	Port     int    `envconfig:"POS_DB_PORT" default:"5432"`
	User     string `envconfig:"POS_DB_USER"`
	Password string `envconfig:"POS_DB_PASSWORD"`
	Name     string `envconfig:"POS_DB_NAME"`
	SSLMode  string `envconfig:"POS_DB_SSLMODE" default:"disable"`

	MaxOpenConns       int           `envconfig:"POS_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns       int           `envconfig:"POS_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime    time.Duration `envconfig:"POS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime    time.Duration `envconfig:"POS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQueryThreshold time.Duration `envconfig:"POS_DB_SLOW_QUERY_THRESHOLD" default:"500ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"POS_REDIS_URL"`
	Address      string        `envconfig:"POS_REDIS_ADDR"`
	Password     string        `envconfig:"POS_REDIS_PASSWORD"`
	DB           int           `envconfig:"POS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POS_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"POS_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether any Redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"POS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"POS_JWT_ISSUER" default:"sandwich-pos"`
	ExpirationMinutes int    `envconfig:"POS_JWT_EXPIRATION_MINUTES" default:"720"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"POS_AUTO_MIGRATE" default:"false"`
}

// SalesHistoryConfig points checkout at a remote sales-history backend.
// When BaseURL is empty the local store is used.
type SalesHistoryConfig struct {
	BaseURL string        `envconfig:"POS_SALES_HISTORY_BASE_URL"`
	Token   string        `envconfig:"POS_SALES_HISTORY_TOKEN"`
	Timeout time.Duration `envconfig:"POS_SALES_HISTORY_TIMEOUT" default:"10s"`
}

// Remote reports whether a remote backend is configured.
func (s SalesHistoryConfig) Remote() bool {
	return strings.TrimSpace(s.BaseURL) != ""
}

type CheckoutConfig struct {
	MaxOrderIDAttempts int `envconfig:"POS_CHECKOUT_MAX_ID_ATTEMPTS" default:"3"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
