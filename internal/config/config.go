package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config holds all application settings.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Email        EmailConfig
	Storage      StorageConfig
	Google       GoogleConfig
	RateLimit    RateLimitConfig
	Verification VerificationConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds unified Redis connection settings.
// Supported modes: single, sentinel, cluster.
type RedisConfig struct {
	// Mode selects the client topology ("single", "sentinel", "cluster").
	// Defaults to "single".
	Mode string `mapstructure:"mode"`

	// Addrs lists Redis addresses (host:port), used by all modes. In
	// single mode the first address wins when both Addrs and Addr are set.
	Addrs []string `mapstructure:"addrs"`

	// Addr is the single-mode address kept for backward compatibility.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName is the sentinel master set name (sentinel mode only).
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // milliseconds
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // milliseconds
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// EmailConfig holds the Resend delivery settings. When Enabled is false the
// application logs codes instead of sending mail.
type EmailConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	From    string `mapstructure:"from"`
}

// StorageConfig holds Cloudinary blob storage settings. When Enabled is
// false uploads are rejected, which suits local development without
// credentials.
type StorageConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	CloudName  string `mapstructure:"cloud_name"`
	APIKey     string `mapstructure:"api_key"`
	APISecret  string `mapstructure:"api_secret"`
	RootFolder string `mapstructure:"root_folder"`
}

// GoogleConfig holds Google sign-in settings. An empty ClientID disables
// the endpoint.
type GoogleConfig struct {
	ClientID string `mapstructure:"client_id"`
}

// RateLimitConfig toggles the Redis-backed limiter on auth endpoints.
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// VerificationConfig tunes the email verification codes. CodePepper is a
// server-side secret mixed into code hashes so a database leak alone cannot
// be brute-forced offline.
type VerificationConfig struct {
	CodePepper        string `mapstructure:"code_pepper"`
	CodeTTLMin        int    `mapstructure:"code_ttl_min"`
	ResendCooldownSec int    `mapstructure:"resend_cooldown_sec"`
}

// PostgresConnectionString builds the PostgreSQL DSN.
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from the optional file and bound environment
// variables. Environment variables are bound explicitly so the mapping is
// greppable.
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 15)
	vip.SetDefault("server.writetimeout", 15)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("jwt.expirationHrs", 168)
	vip.SetDefault("storage.root_folder", "choir")
	vip.SetDefault("ratelimit.enabled", true)
	vip.SetDefault("verification.code_ttl_min", 15)
	vip.SetDefault("verification.resend_cooldown_sec", 60)

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("email.enabled", "EMAIL_ENABLED")
	vip.BindEnv("email.api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")

	vip.BindEnv("storage.enabled", "STORAGE_ENABLED")
	vip.BindEnv("storage.cloud_name", "CLOUDINARY_CLOUD_NAME")
	vip.BindEnv("storage.api_key", "CLOUDINARY_API_KEY")
	vip.BindEnv("storage.api_secret", "CLOUDINARY_API_SECRET")
	vip.BindEnv("storage.root_folder", "CLOUDINARY_ROOT_FOLDER")

	vip.BindEnv("google.client_id", "GOOGLE_CLIENT_ID")

	vip.BindEnv("ratelimit.enabled", "RATELIMIT_ENABLED")

	vip.BindEnv("verification.code_pepper", "VERIFICATION_CODE_PEPPER")
	vip.BindEnv("verification.code_ttl_min", "VERIFICATION_CODE_TTL_MIN")
	vip.BindEnv("verification.resend_cooldown_sec", "VERIFICATION_RESEND_COOLDOWN_SEC")

	vip.BindEnv("server.port", "SERVER_PORT")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Config file '%s' not found, relying on environment variables and defaults.", configPath)
			} else {
				log.Printf("Warning: failed to read config file '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Loaded configuration ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("JWT Secret Set: %t", cfg.JWT.Secret != "")
		log.Printf("JWT Expiration Hours: %d", cfg.JWT.ExpirationHrs)
		log.Printf("Email Enabled: %t", cfg.Email.Enabled)
		log.Printf("Storage Enabled: %t", cfg.Storage.Enabled)
		log.Printf("Google Sign-In Enabled: %t", cfg.Google.ClientID != "")
		log.Printf("Rate Limiting Enabled: %t", cfg.RateLimit.Enabled)
		log.Printf("----------------------------")
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required in config (check JWT_SECRET env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if os.Getenv("GIN_MODE") == "release" {
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
		}
		if cfg.Email.Enabled && cfg.Email.APIKey == "" {
			return nil, fmt.Errorf("email is enabled but RESEND_API_KEY is not set")
		}
		if cfg.Storage.Enabled && (cfg.Storage.CloudName == "" || cfg.Storage.APIKey == "" || cfg.Storage.APISecret == "") {
			return nil, fmt.Errorf("storage is enabled but Cloudinary credentials are incomplete (check CLOUDINARY_* env vars)")
		}
	}

	return &cfg, nil
}
