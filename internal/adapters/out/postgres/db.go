package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"tms/internal/adapters/out/postgres/transportorderrepo"

	// registers the "postgres" database/sql driver used when Config.Driver is "postgres"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config describes the PostgreSQL connection.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	// Driver selects the database/sql driver: "pgx" (default) or "postgres" (lib/pq).
	Driver string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// LogLevel is one of silent, error, warn or info.
	LogLevel string
}

// DSN returns the connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Open connects to PostgreSQL and configures the connection pool. GORM's own
// logging is written through zapLogger.
func Open(ctx context.Context, cfg Config, zapLogger *zap.Logger) (*gorm.DB, error) {
	dialector := gormpostgres.New(gormpostgres.Config{
		DriverName: cfg.Driver,
		DSN:        cfg.DSN(),
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(zapLogger, cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema of all tables owned by the service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&transportorderrepo.TransportOrderDTO{}); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// NewGormLogger adapts zap to GORM's logger interface at the given level.
func NewGormLogger(zapLogger *zap.Logger, level string) logger.Interface {
	writer := zap.NewStdLog(zapLogger.With(zap.String("component", "gorm")))
	return logger.New(writer, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  parseLogLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
