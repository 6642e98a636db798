package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Checkout      CheckoutConfig
	Media         MediaConfig
	Seed          SeedConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
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
	Env          string `envconfig:"ZELENA_APP_ENV" required:"true"`
	Port         string `envconfig:"ZELENA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ZELENA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ZELENA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ZELENA_DB_DSN"`
	Driver string `envconfig:"ZELENA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ZELENA_DB_HOST"`
	LegacyPort     int    `envconfig:"ZELENA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ZELENA_DB_USER"`
	LegacyPassword string `envconfig:"ZELENA_DB_PASSWORD"`
	LegacyName     string `envconfig:"ZELENA_DB_NAME"`
	LegacySSLMode  string `envconfig:"ZELENA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ZELENA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ZELENA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ZELENA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ZELENA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ZELENA_REDIS_URL"`
	Address      string        `envconfig:"ZELENA_REDIS_ADDR"`
	Password     string        `envconfig:"ZELENA_REDIS_PASSWORD"`
	DB           int           `envconfig:"ZELENA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ZELENA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ZELENA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ZELENA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ZELENA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ZELENA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured at all. The API can
// run without redis; rate limiting and checkout locking degrade gracefully.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"ZELENA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ZELENA_JWT_ISSUER" default:"zelena-api"`
	ExpirationMinutes int    `envconfig:"ZELENA_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ZELENA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ZELENA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ZELENA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ZELENA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ZELENA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ZELENA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"ZELENA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ZELENA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"ZELENA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"ZELENA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"ZELENA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CheckoutConfig struct {
	// StrictItems makes checkout fail with NOT_FOUND when a cart row points
	// at a product that no longer exists. Default mirrors the storefront's
	// historical behavior: such rows are silently skipped.
	StrictItems bool          `envconfig:"ZELENA_CHECKOUT_STRICT_ITEMS" default:"false"`
	LockTTL     time.Duration `envconfig:"ZELENA_CHECKOUT_LOCK_TTL" default:"10s"`
}

type MediaConfig struct {
	PublicURLPrefix string `envconfig:"ZELENA_MEDIA_PUBLIC_URL_PREFIX" default:"/static/products"`
}

type SeedConfig struct {
	ProductsFile string `envconfig:"ZELENA_SEED_PRODUCTS_FILE" default:"data/products.json"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ZELENA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ZELENA_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"ZELENA_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"ZELENA_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"ZELENA_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrderEventsTopic        string `envconfig:"ZELENA_PUBSUB_ORDER_EVENTS_TOPIC" default:"zg-order-events"`
	OrderEventsSubscription string `envconfig:"ZELENA_PUBSUB_ORDER_EVENTS_SUBSCRIPTION" default:"zg-order-events-sub"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"ZELENA_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"ZELENA_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"ZELENA_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
