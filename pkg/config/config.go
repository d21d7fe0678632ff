package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

const (
	defaultAddr        = "0.0.0.0:8080"
	defaultStatic      = "./static"
	defaultLogLevel    = "info"
	defaultStore       = "memory"
	defaultSQLiteDSN   = "file::memory:"
	defaultTableCache  = 64
	defaultMaxUploadMB = 64
)

type Config struct {
	Addr        string
	StaticDir   string
	LogLevel    string
	Store       string
	SQLiteDSN   string
	TableCache  int
	MaxUploadMB int
}

// LoadDotenv reads .env files into the process environment. A missing file
// is reported but callers usually only warn about it.
func LoadDotenv(files ...string) error {
	return godotenv.Load(files...)
}

// FromEnv builds a Config from MBDASH_* variables, falling back to defaults
// for unset ones. Malformed integers are kept as -1 so Validate reports them.
func FromEnv() *Config {
	return &Config{
		Addr:        getenv("MBDASH_ADDR", defaultAddr),
		StaticDir:   getenv("MBDASH_STATIC", defaultStatic),
		LogLevel:    getenv("MBDASH_LOG_LEVEL", defaultLogLevel),
		Store:       getenv("MBDASH_STORE", defaultStore),
		SQLiteDSN:   getenv("MBDASH_SQLITE_DSN", defaultSQLiteDSN),
		TableCache:  getenvInt("MBDASH_TABLE_CACHE", defaultTableCache),
		MaxUploadMB: getenvInt("MBDASH_MAX_UPLOAD_MB", defaultMaxUploadMB),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// MaxUploadBytes is the request body limit for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("listen address is empty"))
	}
	if _, lerr := c.Level(); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("log level: %w", lerr))
	}
	if c.Store != "memory" && c.Store != "sqlite" {
		err = multierr.Append(err, fmt.Errorf("store must be memory or sqlite, got %q", c.Store))
	}
	if c.TableCache <= 0 {
		err = multierr.Append(err, fmt.Errorf("MBDASH_TABLE_CACHE must be a positive integer"))
	}
	if c.MaxUploadMB <= 0 {
		err = multierr.Append(err, fmt.Errorf("MBDASH_MAX_UPLOAD_MB must be a positive integer"))
	}
	return err
}
