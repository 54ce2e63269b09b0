// Package config reads process configuration from HOSTEL_ prefixed
// environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "HOSTEL_"

// Config is the full runtime configuration.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	StorageDriver string
	SQLitePath    string
	PostgresDSN   string
	MySQLDSN      string
	IDStrategy    string
	SeedFixtures  bool

	Blob BlobConfig

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	LogLevel    string
	LogFormat   string
	OTelEnabled bool
	ServiceName string
}

// BlobConfig selects the snapshot archive backend.
type BlobConfig struct {
	Driver            string
	FSRoot            string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PathStyle       bool
	// Retain caps the number of kept snapshot archives; zero keeps all.
	Retain int
}

// Load reads the given .env files (default ".env") when they exist and then
// the process environment. Variables already set in the process win.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, which resolves unprefixed names
// after Prefix is applied.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	e := &env{lookup: lookup}
	cfg := Config{
		HTTPAddr:        e.str("HTTP_ADDR", ":8080"),
		ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		StorageDriver:   e.oneOf("STORAGE_DRIVER", "memory", "memory", "sqlite", "postgres", "mysql"),
		SQLitePath:      e.str("SQLITE_PATH", "hostelcore.db"),
		PostgresDSN:     e.str("POSTGRES_DSN", ""),
		MySQLDSN:        e.str("MYSQL_DSN", ""),
		IDStrategy:      e.oneOf("ID_STRATEGY", "uuid", "uuid", "sequence"),
		SeedFixtures:    e.boolean("SEED_FIXTURES", false),
		Blob: BlobConfig{
			Driver:            e.oneOf("BLOB_DRIVER", "fs", "fs", "memory", "s3"),
			FSRoot:            e.str("BLOB_FS_ROOT", "./blobdata"),
			S3Bucket:          e.str("BLOB_S3_BUCKET", ""),
			S3Region:          e.str("BLOB_S3_REGION", "us-east-1"),
			S3Endpoint:        e.str("BLOB_S3_ENDPOINT", ""),
			S3AccessKeyID:     e.str("BLOB_S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: e.str("BLOB_S3_SECRET_ACCESS_KEY", ""),
			S3PathStyle:       e.boolean("BLOB_S3_PATH_STYLE", false),
			Retain:            e.integer("SNAPSHOT_RETAIN", 0),
		},
		RedisAddr:     e.str("REDIS_ADDR", ""),
		RedisPassword: e.str("REDIS_PASSWORD", ""),
		RedisDB:       e.integer("REDIS_DB", 0),
		CacheTTL:      e.duration("CACHE_TTL", 30*time.Second),
		LogLevel:      e.oneOf("LOG_LEVEL", "info", "debug", "info", "warn", "error"),
		LogFormat:     e.oneOf("LOG_FORMAT", "text", "text", "json"),
		OTelEnabled:   e.boolean("OTEL_ENABLED", false),
		ServiceName:   e.str("SERVICE_NAME", "hostelcore"),
	}
	if cfg.StorageDriver == "postgres" && cfg.PostgresDSN == "" {
		e.fail("POSTGRES_DSN", "required when STORAGE_DRIVER=postgres")
	}
	if cfg.StorageDriver == "mysql" && cfg.MySQLDSN == "" {
		e.fail("MYSQL_DSN", "required when STORAGE_DRIVER=mysql")
	}
	if cfg.Blob.Driver == "s3" && cfg.Blob.S3Bucket == "" {
		e.fail("BLOB_S3_BUCKET", "required when BLOB_DRIVER=s3")
	}
	if cfg.Blob.Retain < 0 {
		e.fail("SNAPSHOT_RETAIN", "must not be negative")
	}
	if err := errors.Join(e.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) fail(key, reason string) {
	e.errs = append(e.errs, fmt.Errorf("%s%s: %s", Prefix, key, reason))
}

func (e *env) raw(key string) (string, bool) {
	value, ok := e.lookup(Prefix + key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (e *env) str(key, def string) string {
	if value, ok := e.raw(key); ok {
		return value
	}
	return def
}

func (e *env) integer(key string, def int) int {
	value, ok := e.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		e.fail(key, fmt.Sprintf("invalid integer %q", value))
		return def
	}
	return n
}

func (e *env) boolean(key string, def bool) bool {
	value, ok := e.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		e.fail(key, fmt.Sprintf("invalid boolean %q", value))
		return def
	}
	return b
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	value, ok := e.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		e.fail(key, fmt.Sprintf("invalid duration %q", value))
		return def
	}
	return d
}

func (e *env) oneOf(key, def string, allowed ...string) string {
	value, ok := e.raw(key)
	if !ok {
		return def
	}
	value = strings.ToLower(value)
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	e.fail(key, fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, "|"), value))
	return def
}
