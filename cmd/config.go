package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"warehouse/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "WAREHOUSE"

type Config struct {
	HTTPPort  string
	JWTSecret string

	DBHost            string
	DBPort            int
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBLogLevel        string
	DBSlowQuery       time.Duration

	Log logger.Config
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.DBSslMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// LoadConfig reads envFiles (missing files are skipped) and then the
// environment. Variables are prefixed, e.g. WAREHOUSE_DB_HOST.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		HTTPPort:          v.GetString("http.port"),
		JWTSecret:         v.GetString("jwt.secret"),
		DBHost:            v.GetString("db.host"),
		DBPort:            v.GetInt("db.port"),
		DBUser:            v.GetString("db.user"),
		DBPassword:        v.GetString("db.password"),
		DBName:            v.GetString("db.name"),
		DBSslMode:         v.GetString("db.sslmode"),
		DBMaxOpenConns:    v.GetInt("db.max_open_conns"),
		DBMaxIdleConns:    v.GetInt("db.max_idle_conns"),
		DBConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		DBLogLevel:        v.GetString("db.log_level"),
		DBSlowQuery:       v.GetDuration("db.slow_query"),
		Log: logger.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.name", "warehouse")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", time.Hour)
	v.SetDefault("db.log_level", "warn")
	v.SetDefault("db.slow_query", 200*time.Millisecond)

	defaults := logger.DefaultConfig()
	v.SetDefault("log.level", defaults.Level)
	v.SetDefault("log.format", defaults.Format)
	v.SetDefault("log.output", defaults.Output)
}

func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("WAREHOUSE_JWT_SECRET is required"))
	} else if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("WAREHOUSE_JWT_SECRET must be at least 32 characters"))
	}
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("WAREHOUSE_HTTP_PORT is required"))
	}
	if c.DBPort <= 0 || c.DBPort > 65535 {
		errs = append(errs, fmt.Errorf("WAREHOUSE_DB_PORT %d is out of range", c.DBPort))
	}
	if c.DBMaxIdleConns > c.DBMaxOpenConns {
		errs = append(errs, errors.New("WAREHOUSE_DB_MAX_IDLE_CONNS cannot exceed WAREHOUSE_DB_MAX_OPEN_CONNS"))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
