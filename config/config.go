package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port           string        `yaml:"port"`
	Environment    string        `yaml:"environment"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	TokenRateLimit int           `yaml:"token_rate_limit"`
	TokenRateWin   time.Duration `yaml:"token_rate_window"`
	TrustedProxies []string      `yaml:"trusted_proxies"`
	AutoMigrate    bool          `yaml:"auto_migrate"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	Params          string        `yaml:"params"`
	SSLMode         string        `yaml:"ssl_mode"`
	TLSVerify       bool          `yaml:"tls_verify"`
	TLSCAPath       string        `yaml:"tls_ca_path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectRetries  int           `yaml:"connect_retries"`
}

type JWTConfig struct {
	Secret              string        `yaml:"secret"`
	Algorithm           string        `yaml:"algorithm"`
	AccessTokenDuration time.Duration `yaml:"access_token_duration"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StorageConfig points at an S3-compatible bucket used for user images.
// Uploads are disabled when Bucket is empty.
type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:           "7000",
			Environment:    "development",
			AllowedOrigins: []string{"*"},
			RequestTimeout: 10 * time.Second,
			MaxBodyBytes:   5 << 20,
			TokenRateLimit: 60,
			TokenRateWin:   5 * time.Minute,
			AutoMigrate:    true,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "leveluplife.db",
			Host:            "127.0.0.1",
			Port:            3306,
			User:            "root",
			Name:            "leveluplife",
			Params:          "charset=utf8mb4&parseTime=True&loc=Local",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: time.Hour,
			ConnectRetries:  5,
		},
		JWT: JWTConfig{
			Algorithm:           "HS256",
			AccessTokenDuration: 30 * time.Minute,
		},
		Storage: StorageConfig{
			Region: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and the environment (a local .env is read first and never
// overrides variables that are already set).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	s := &cfg.Server
	s.Port = getEnv("PORT", s.Port)
	s.Environment = strings.ToLower(getEnv("ENV", s.Environment))
	s.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", s.AllowedOrigins)
	s.RequestTimeout = getEnvAsDuration("REQ_TIMEOUT", s.RequestTimeout)
	s.MaxBodyBytes = int64(getEnvAsInt("MAX_BODY_BYTES", int(s.MaxBodyBytes)))
	s.TokenRateLimit = getEnvAsInt("RATE_TOKEN_LIMIT", s.TokenRateLimit)
	s.TokenRateWin = getEnvAsDuration("RATE_TOKEN_WINDOW", s.TokenRateWin)
	s.TrustedProxies = getEnvAsList("TRUSTED_PROXIES", s.TrustedProxies)
	s.AutoMigrate = getEnvAsBool("AUTO_MIGRATE", s.AutoMigrate)

	d := &cfg.Database
	d.Driver = strings.ToLower(getEnv("DB_DRIVER", d.Driver))
	d.DSN = getEnv("DB_DSN", d.DSN)
	d.Host = getEnv("DB_HOST", d.Host)
	d.Port = getEnvAsInt("DB_PORT", d.Port)
	d.User = getEnv("DB_USER", d.User)
	d.Password = getEnv("DB_PASS", d.Password)
	d.Name = getEnv("DB_NAME", d.Name)
	d.Params = getEnv("DB_PARAMS", d.Params)
	d.SSLMode = getEnv("DB_SSL_MODE", d.SSLMode)
	d.TLSVerify = getEnvAsBool("DB_TLS_VERIFY", d.TLSVerify)
	d.TLSCAPath = getEnv("DB_TLS_CA_PATH", d.TLSCAPath)
	d.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", d.MaxOpenConns)
	d.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", d.MaxIdleConns)
	d.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", d.ConnMaxLifetime)
	d.ConnectRetries = getEnvAsInt("DB_CONNECT_RETRIES", d.ConnectRetries)

	j := &cfg.JWT
	j.Secret = getEnv("JWT_SECRET_KEY", getEnv("JWT_SECRET", j.Secret))
	j.Algorithm = getEnv("JWT_ALGORITHM", j.Algorithm)
	if minutes := getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 0); minutes > 0 {
		j.AccessTokenDuration = time.Duration(minutes) * time.Minute
	}

	r := &cfg.Redis
	r.Addr = strings.ReplaceAll(getEnv("REDIS_ADDR", r.Addr), " ", "")
	r.Password = getEnv("REDIS_PASS", r.Password)
	r.DB = getEnvAsInt("REDIS_DB", r.DB)

	st := &cfg.Storage
	st.Bucket = getEnv("S3_BUCKET", st.Bucket)
	st.Region = getEnv("S3_REGION", st.Region)
	st.Endpoint = getEnv("S3_ENDPOINT", st.Endpoint)
	st.AccessKeyID = getEnv("S3_ACCESS_KEY_ID", st.AccessKeyID)
	st.SecretAccessKey = getEnv("S3_SECRET_ACCESS_KEY", st.SecretAccessKey)
	st.PublicBaseURL = getEnv("S3_PUBLIC_BASE_URL", st.PublicBaseURL)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET_KEY is required outside development")
		}
		c.JWT.Secret = "dev-secret-change-in-production"
	}
	if c.JWT.AccessTokenDuration <= 0 {
		return errors.New("JWT access token duration must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// bare integers are seconds
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, p := range strings.Split(valueStr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
