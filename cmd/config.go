package cmd

import (
	"io/fs"
	"strings"
	"time"

	httpadapter "tms/internal/adapters/in/http"
	"tms/internal/adapters/out/postgres"
	"tms/internal/adapters/out/redis"
	"tms/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TMS_DATABASE_HOST.
const EnvPrefix = "TMS"

// Config is the complete service configuration. Keys map to TMS_ prefixed environment variables.
type Config struct {
	Environment string        `mapstructure:"environment"`
	HTTP        HTTPConfig    `mapstructure:"http"`
	Database    DBConfig      `mapstructure:"database"`
	Redis       RedisConfig   `mapstructure:"redis"`
	Jobs        JobsConfig    `mapstructure:"jobs"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

// HTTPConfig configures the API listener and its request limits.
type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	IdempotencyTTL  time.Duration `mapstructure:"idempotency_ttl"`
}

// DBConfig configures the Postgres connection pool.
type DBConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	Driver          string        `mapstructure:"driver"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig configures the event publisher.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// JobsConfig configures the background jobs.
type JobsConfig struct {
	StartEnabled  bool   `mapstructure:"start_enabled"`
	StartSchedule string `mapstructure:"start_schedule"`
}

// LoggingConfig selects the zap level and encoding.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "production")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.rate_limit", 50.0)
	v.SetDefault("http.rate_burst", 100)
	v.SetDefault("http.idempotency_ttl", 24*time.Hour)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "tms")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", redis.DefaultChannel)

	v.SetDefault("jobs.start_enabled", true)
	v.SetDefault("jobs.start_schedule", jobs.DefaultStartSchedule)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// LoadConfig reads the configuration. Values come, in increasing precedence,
// from defaults, the config file, a .env file in the working directory and
// TMS_ prefixed environment variables. configFile may be empty; then
// config.yaml is looked up in the working directory and ./configs, and its
// absence is not an error.
func LoadConfig(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrap(err, "failed to load .env file")
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch {
	case c.HTTP.Port <= 0 || c.HTTP.Port > 65535:
		return errors.Errorf("http.port %d is out of range", c.HTTP.Port)
	case c.Database.Driver != "pgx" && c.Database.Driver != "postgres":
		return errors.Errorf("database.driver must be pgx or postgres, got %q", c.Database.Driver)
	case c.Logging.Format != "json" && c.Logging.Format != "console":
		return errors.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// IsDevelopment reports the development environment.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c DBConfig) toPostgres() postgres.Config {
	return postgres.Config{
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		Password:        c.Password,
		Name:            c.Name,
		SSLMode:         c.SSLMode,
		Driver:          c.Driver,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		LogLevel:        c.LogLevel,
	}
}

func (c RedisConfig) toRedis() redis.Config {
	return redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		Channel:  c.Channel,
		Enabled:  c.Enabled,
	}
}

func (c HTTPConfig) toRouter() httpadapter.RouterConfig {
	return httpadapter.RouterConfig{
		RateLimit:      c.RateLimit,
		RateBurst:      c.RateBurst,
		IdempotencyTTL: c.IdempotencyTTL,
	}
}
