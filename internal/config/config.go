package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageProviderLocal      = "local"
	StorageProviderCloudflare = "cloudflare"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration. Events are not published when URL is empty.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	SigningSecret  string        `mapstructure:"signing_secret"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host             string   `mapstructure:"host"`
	Port             int      `mapstructure:"port"`
	ReadTimeout      int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout     int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout      int      `mapstructure:"idle_timeout"`  // in seconds
	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
}

// AuthConfig holds session authentication configuration
type AuthConfig struct {
	SessionSecret string        `mapstructure:"session_secret"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	ExpiryMargin  time.Duration `mapstructure:"expiry_margin"`
}

// ClaimConfig holds the ownership claim signing configuration
type ClaimConfig struct {
	SigningSecret string `mapstructure:"signing_secret"`
}

// StegoConfig holds the image policies applied at mint
type StegoConfig struct {
	MinDimension  int   `mapstructure:"min_dimension"`
	MaxPixels     int64 `mapstructure:"max_pixels"`
	MaxUploadSize int64 `mapstructure:"max_upload_size"`
}

// CloudflareConfig holds Cloudflare Images configuration
type CloudflareConfig struct {
	AccountID string `mapstructure:"account_id"`
	APIToken  string `mapstructure:"api_token"`
	// Variant must not transform the image or the embedded claim is lost
	Variant string `mapstructure:"variant"`
}

// StorageConfig holds media storage configuration
type StorageConfig struct {
	Provider      string           `mapstructure:"provider"`
	LocalDir      string           `mapstructure:"local_dir"`
	PublicBaseURL string           `mapstructure:"public_base_url"`
	FetchTimeout  time.Duration    `mapstructure:"fetch_timeout"`
	MaxFetchSize  int64            `mapstructure:"max_fetch_size"`
	Cloudflare    CloudflareConfig `mapstructure:"cloudflare"`
}

// VerifierConfig holds ownership verification configuration
type VerifierConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize int `mapstructure:"pool_size"`
}

// ClaimSweeperConfig holds configuration for the claim sweeper
type ClaimSweeperConfig struct {
	BatchSize int           `mapstructure:"batch_size"`
	Interval  time.Duration `mapstructure:"interval"`
	Worker    WorkerConfig  `mapstructure:"worker"`
}

// RouteLimitConfig limits one class of API routes per caller
type RouteLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

// RateLimitConfig holds API rate limiting configuration.
// Limits are kept in process when RedisAddr is empty.
type RateLimitConfig struct {
	Enabled                 bool                        `mapstructure:"enabled"`
	RedisAddr               string                      `mapstructure:"redis_addr"`
	RedisPassword           string                      `mapstructure:"redis_password"`
	RedisDB                 int                         `mapstructure:"redis_db"`
	KeyPrefix               string                      `mapstructure:"key_prefix"`
	EnableLocalFallback     bool                        `mapstructure:"enable_local_fallback"`
	LocalFallbackMultiplier float64                     `mapstructure:"local_fallback_multiplier"` // Share of the distributed rate each instance allows while Redis is down
	Routes                  map[string]RouteLimitConfig `mapstructure:"routes"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Claim      ClaimConfig     `mapstructure:"claim"`
	Stego      StegoConfig     `mapstructure:"stego"`
	Storage    StorageConfig   `mapstructure:"storage"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Verifier   VerifierConfig  `mapstructure:"verifier"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Claim        ClaimConfig        `mapstructure:"claim"`
	Stego        StegoConfig        `mapstructure:"stego"`
	Storage      StorageConfig      `mapstructure:"storage"`
	NATS         NATSConfig         `mapstructure:"nats"`
	Verifier     VerifierConfig     `mapstructure:"verifier"`
	ClaimSweeper ClaimSweeperConfig `mapstructure:"claim_sweeper"`
}

// LedgerCtlConfig holds configuration for the operator CLI.
// Secrets are checked by the commands that need them.
type LedgerCtlConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Claim      ClaimConfig    `mapstructure:"claim"`
	Stego      StegoConfig    `mapstructure:"stego"`
	Storage    StorageConfig  `mapstructure:"storage"`
	NATS       NATSConfig     `mapstructure:"nats"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("auth.session_ttl", "24h")
	v.SetDefault("auth.expiry_margin", "10m")
	setDatabaseDefaults(v)
	setMediaDefaults(v)
	setNATSDefaults(v, "stegavault-api")
	setRateLimitDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := errors.Join(
		cfg.Database.Validate(),
		cfg.Storage.Validate(),
		validateSecrets(cfg.Auth.SessionSecret, cfg.Claim.SigningSecret),
	); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	setMediaDefaults(v)
	setNATSDefaults(v, "stegavault-sweeper")
	v.SetDefault("claim_sweeper.batch_size", 100)
	v.SetDefault("claim_sweeper.interval", "15m")
	v.SetDefault("claim_sweeper.worker.pool_size", 4)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var secretErr error
	if cfg.Claim.SigningSecret == "" {
		secretErr = errors.New("claim.signing_secret is required")
	}
	if err := errors.Join(cfg.Database.Validate(), cfg.Storage.Validate(), secretErr); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadLedgerCtlConfig loads configuration for the operator CLI
func LoadLedgerCtlConfig(configFile string, envPath string) (*LedgerCtlConfig, error) {
	v := configureViper("ledgerctl", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 2)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("auth.session_ttl", "24h")
	v.SetDefault("auth.expiry_margin", "10m")
	setMediaDefaults(v)
	setNATSDefaults(v, "stegavault-ledgerctl")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg LedgerCtlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the required database settings
func (c *DatabaseConfig) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	return errors.Join(errs...)
}

// Validate checks the settings of the selected storage provider
func (c *StorageConfig) Validate() error {
	switch c.Provider {
	case StorageProviderLocal:
		if c.LocalDir == "" {
			return errors.New("storage.local_dir is required for the local provider")
		}
		if c.PublicBaseURL == "" {
			return errors.New("storage.public_base_url is required for the local provider")
		}
	case StorageProviderCloudflare:
		if c.Cloudflare.AccountID == "" || c.Cloudflare.APIToken == "" {
			return errors.New("storage.cloudflare.account_id and storage.cloudflare.api_token are required for the cloudflare provider")
		}
	default:
		return fmt.Errorf("storage.provider must be %q or %q, got %q", StorageProviderLocal, StorageProviderCloudflare, c.Provider)
	}
	return nil
}

// validateSecrets checks the session and claim secrets are set and distinct
func validateSecrets(sessionSecret, claimSecret string) error {
	var errs []error
	if sessionSecret == "" {
		errs = append(errs, errors.New("auth.session_secret is required"))
	}
	if claimSecret == "" {
		errs = append(errs, errors.New("claim.signing_secret is required"))
	}
	if sessionSecret != "" && sessionSecret == claimSecret {
		errs = append(errs, errors.New("auth.session_secret and claim.signing_secret must differ"))
	}
	return errors.Join(errs...)
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setMediaDefaults(v *viper.Viper) {
	v.SetDefault("stego.min_dimension", 64)
	v.SetDefault("stego.max_pixels", 25_000_000)
	v.SetDefault("stego.max_upload_size", 10*1024*1024) // 10MB
	v.SetDefault("storage.provider", StorageProviderLocal)
	v.SetDefault("storage.local_dir", "data/media")
	v.SetDefault("storage.public_base_url", "http://localhost:8080")
	v.SetDefault("storage.fetch_timeout", "10s")
	v.SetDefault("storage.max_fetch_size", 32*1024*1024) // 32MB
	v.SetDefault("storage.cloudflare.variant", "public")
	v.SetDefault("verifier.fetch_timeout", "10s")
}

func setRateLimitDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.key_prefix", "stegavault:limiter:")
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.local_fallback_multiplier", 0.5)
	v.SetDefault("rate_limit.routes.mint.requests_per_minute", 10)
	v.SetDefault("rate_limit.routes.mint.burst", 5)
	v.SetDefault("rate_limit.routes.purchase.requests_per_minute", 30)
	v.SetDefault("rate_limit.routes.purchase.burst", 10)
	v.SetDefault("rate_limit.routes.verify.requests_per_minute", 120)
	v.SetDefault("rate_limit.routes.verify.burst", 30)
}

func setNATSDefaults(v *viper.Viper, connectionName string) {
	v.SetDefault("nats.stream_name", "STEGAVAULT_EVENTS")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", connectionName)
	v.SetDefault("nats.publish_timeout", "5s")
}

// readConfig reads the config file, falling back to environment variables when there is none
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("STEGAVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.signing_secret",
		"nats.publish_timeout",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allow_origins",
		// Auth
		"auth.session_secret",
		"auth.session_ttl",
		"auth.expiry_margin",
		// Claim
		"claim.signing_secret",
		// Stego
		"stego.min_dimension",
		"stego.max_pixels",
		"stego.max_upload_size",
		// Storage
		"storage.provider",
		"storage.local_dir",
		"storage.public_base_url",
		"storage.fetch_timeout",
		"storage.max_fetch_size",
		"storage.cloudflare.account_id",
		"storage.cloudflare.api_token",
		"storage.cloudflare.variant",
		// Verifier
		"verifier.fetch_timeout",
		// Rate limit
		"rate_limit.enabled",
		"rate_limit.redis_addr",
		"rate_limit.redis_password",
		"rate_limit.redis_db",
		"rate_limit.key_prefix",
		"rate_limit.enable_local_fallback",
		"rate_limit.local_fallback_multiplier",
		"rate_limit.routes.mint.requests_per_minute",
		"rate_limit.routes.mint.burst",
		"rate_limit.routes.purchase.requests_per_minute",
		"rate_limit.routes.purchase.burst",
		"rate_limit.routes.verify.requests_per_minute",
		"rate_limit.routes.verify.burst",
		// Claim sweeper
		"claim_sweeper.batch_size",
		"claim_sweeper.interval",
		"claim_sweeper.worker.pool_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
