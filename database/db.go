package database

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"leveluplife/config"
)

// Connect opens the configured database with pooling and retry.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger:         NewLogger(log, cfg.IsDevelopment()),
		TranslateError: true,
	}

	// Retry connection with exponential backoff
	retries := cfg.Database.ConnectRetries
	if retries <= 0 {
		retries = 1
	}
	var db *gorm.DB
	backoff := time.Second
	for attempt := 1; attempt <= retries; attempt++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		log.Warn("database connect failed", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < retries {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

func dialectorFor(c config.DatabaseConfig, log *zap.Logger) (gorm.Dialector, error) {
	switch c.Driver {
	case "mysql":
		dsn, err := mysqlDSN(c)
		if err != nil {
			return nil, err
		}
		log.Info("using mysql", zap.String("dsn", redact(dsn, c.Password)))
		return gormmysql.Open(dsn), nil
	case "postgres":
		dsn := c.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
		}
		log.Info("using postgres", zap.String("dsn", redact(dsn, c.Password)))
		return postgres.Open(dsn), nil
	case "sqlite":
		log.Info("using sqlite", zap.String("path", c.DSN))
		return sqlite.Open(c.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// mysqlDSN builds a DSN with timeouts and, when TLSVerify is set, a
// registered "custom" TLS config. An explicit DSN wins.
func mysqlDSN(c config.DatabaseConfig) (string, error) {
	if c.DSN != "" && strings.Contains(c.DSN, "@") {
		return c.DSN, nil
	}

	params := c.Params
	if c.TLSVerify && !strings.Contains(params, "tls=") {
		tlsCfg, err := loadTLSConfig(c.TLSCAPath)
		if err != nil {
			return "", err
		}
		if err := mysqldriver.RegisterTLSConfig("custom", tlsCfg); err != nil {
			return "", fmt.Errorf("register mysql tls config: %w", err)
		}
		params = appendParam(params, "tls=custom")
	}
	if !strings.Contains(params, "timeout=") {
		params = appendParam(params, "timeout=10s")
	}
	if !strings.Contains(params, "readTimeout=") {
		params = appendParam(params, "readTimeout=10s")
	}
	if !strings.Contains(params, "writeTimeout=") {
		params = appendParam(params, "writeTimeout=10s")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", c.User, c.Password, c.Host, c.Port, c.Name, params), nil
}

func loadTLSConfig(caPath string) (*tls.Config, error) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caPath == "" {
		return tlsCfg, nil
	}
	caCert, err := os.ReadFile(caPath)
	if err != nil {
		return nil, fmt.Errorf("failed reading DB TLS CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to append CA certs")
	}
	tlsCfg.RootCAs = pool
	return tlsCfg, nil
}

func appendParam(params, kv string) string {
	if params == "" {
		return kv
	}
	return params + "&" + kv
}

func redact(dsn, password string) string {
	if password == "" {
		return dsn
	}
	return strings.Replace(dsn, password, "******", 1)
}

// NewLogger routes gorm's logger through zap: verbose in development,
// warnings only otherwise.
func NewLogger(log *zap.Logger, development bool) logger.Interface {
	level := logger.Warn
	if development {
		level = logger.Info
	}
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
