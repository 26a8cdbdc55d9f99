package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	blobTokenEnv         = "BLOB_READ_WRITE_TOKEN"
	blobTokenFallbackEnv = "BLOB_STORAGE_TOKEN"
	vimeoTokenEnv        = "VIMEO_ACCESS_TOKEN"
	adminPasswordEnv     = "ADMIN_PASSWORD"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Blob      BlobConfig      `yaml:"blob"`
	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Vimeo     VimeoConfig     `yaml:"vimeo"`
	Admin     AdminConfig     `yaml:"admin"`
	Redis     RedisConfig     `yaml:"redis"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	Host         string `yaml:"host"`
	BodyLimit    int64  `yaml:"body_limit"` // bytes
	AllowOrigins string `yaml:"allow_origins"`
}

type DatabaseConfig struct {
	Driver      string `yaml:"driver"` // postgres | sqlite
	URL         string `yaml:"url"`
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	DBName      string `yaml:"db_name"`
	SSLMode     string `yaml:"ssl_mode"`
	SQLitePath  string `yaml:"sqlite_path"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type BlobConfig struct {
	Driver        string `yaml:"driver"` // s3 | local
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	Endpoint      string `yaml:"endpoint"`
	PublicBaseURL string `yaml:"public_base_url"`
	LocalDir      string `yaml:"local_dir"`
	LocalBaseURL  string `yaml:"local_base_url"`
}

type ThumbnailConfig struct {
	MaxBytes  int64 `yaml:"max_bytes"`
	MaxWidth  int   `yaml:"max_width"`
	MaxHeight int   `yaml:"max_height"`
	Quality   int   `yaml:"quality"`
}

type VimeoConfig struct {
	APIBaseURL     string `yaml:"api_base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	PerPage        int    `yaml:"per_page"`
	MaxPages       int    `yaml:"max_pages"`
}

type AdminConfig struct {
	CookieName   string `yaml:"cookie_name"`
	CookieSecure bool   `yaml:"cookie_secure"`
	CookieKey    string `yaml:"-"`
}

type RedisConfig struct {
	Addr                string `yaml:"addr"`
	Password            string `yaml:"-"`
	DB                  int    `yaml:"db"`
	ThumbnailTTLSeconds int    `yaml:"thumbnail_ttl_seconds"`
}

type CleanupConfig struct {
	Schedule    string `yaml:"schedule"`
	MaxAttempts int    `yaml:"max_attempts"`
	Workers     int    `yaml:"workers"`
	BatchSize   int    `yaml:"batch_size"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "3000",
			Host:         "0.0.0.0",
			BodyLimit:    512 * 1024 * 1024, // 512MB
			AllowOrigins: "*",
		},
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			DBName:     "portfolio",
			SSLMode:    "disable",
			SQLitePath: "portfolio.db",
		},
		Blob: BlobConfig{
			Driver:       "s3",
			Region:       "us-east-1",
			LocalDir:     "uploads",
			LocalBaseURL: "/blobs",
		},
		Thumbnail: ThumbnailConfig{
			MaxBytes:  10 * 1024 * 1024, // 10MiB
			MaxWidth:  1920,
			MaxHeight: 1080,
			Quality:   85,
		},
		Vimeo: VimeoConfig{
			APIBaseURL:     "https://api.vimeo.com",
			TimeoutSeconds: 15,
			PerPage:        100,
			MaxPages:       10,
		},
		Admin: AdminConfig{
			CookieName: "admin",
		},
		Redis: RedisConfig{
			ThumbnailTTLSeconds: 6 * 60 * 60,
		},
		Cleanup: CleanupConfig{
			Schedule:    "0 */5 * * * *",
			MaxAttempts: 5,
			Workers:     4,
			BatchSize:   100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads defaults, then the optional YAML file named by CONFIG_FILE,
// then environment variables. Later sources win.
func LoadConfig() (*Config, error) {
	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	s := &config.Server
	s.Port = getEnv("SERVER_PORT", s.Port)
	s.Host = getEnv("SERVER_HOST", s.Host)
	s.BodyLimit = getEnvAsInt64("SERVER_BODY_LIMIT", s.BodyLimit)
	s.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", s.AllowOrigins)

	d := &config.Database
	d.Driver = strings.ToLower(getEnv("DB_DRIVER", d.Driver))
	d.URL = getEnv("DATABASE_URL", d.URL)
	d.Host = getEnv("DB_HOST", d.Host)
	d.Port = getEnv("DB_PORT", d.Port)
	d.User = getEnv("DB_USER", d.User)
	d.Password = getEnv("DB_PASSWORD", d.Password)
	d.DBName = getEnv("DB_NAME", d.DBName)
	d.SSLMode = getEnv("DB_SSLMODE", d.SSLMode)
	d.SQLitePath = getEnv("SQLITE_PATH", d.SQLitePath)
	d.AutoMigrate = getEnvAsBool("RUN_AUTO_MIGRATION", d.AutoMigrate)

	b := &config.Blob
	b.Driver = strings.ToLower(getEnv("BLOB_DRIVER", b.Driver))
	b.Bucket = getEnv("BLOB_BUCKET", b.Bucket)
	b.Region = getEnv("BLOB_REGION", b.Region)
	b.Endpoint = getEnv("BLOB_ENDPOINT", b.Endpoint)
	b.PublicBaseURL = strings.TrimRight(getEnv("BLOB_PUBLIC_BASE_URL", b.PublicBaseURL), "/")
	b.LocalDir = getEnv("BLOB_LOCAL_DIR", b.LocalDir)
	b.LocalBaseURL = strings.TrimRight(getEnv("BLOB_LOCAL_BASE_URL", b.LocalBaseURL), "/")

	th := &config.Thumbnail
	th.MaxBytes = getEnvAsInt64("THUMBNAIL_MAX_BYTES", th.MaxBytes)
	th.MaxWidth = getEnvAsInt("THUMBNAIL_MAX_WIDTH", th.MaxWidth)
	th.MaxHeight = getEnvAsInt("THUMBNAIL_MAX_HEIGHT", th.MaxHeight)
	th.Quality = getEnvAsInt("THUMBNAIL_QUALITY", th.Quality)

	v := &config.Vimeo
	v.APIBaseURL = strings.TrimRight(getEnv("VIMEO_API_BASE_URL", v.APIBaseURL), "/")
	v.TimeoutSeconds = getEnvAsInt("VIMEO_TIMEOUT_SECONDS", v.TimeoutSeconds)
	v.PerPage = getEnvAsInt("VIMEO_PER_PAGE", v.PerPage)
	v.MaxPages = getEnvAsInt("VIMEO_MAX_PAGES", v.MaxPages)

	a := &config.Admin
	a.CookieName = getEnv("ADMIN_COOKIE_NAME", a.CookieName)
	a.CookieSecure = getEnvAsBool("ADMIN_COOKIE_SECURE", a.CookieSecure)
	a.CookieKey = getEnv("ADMIN_COOKIE_KEY", a.CookieKey)

	r := &config.Redis
	r.Addr = getEnv("REDIS_ADDR", r.Addr)
	if r.Addr == "" && os.Getenv("REDIS_HOST") != "" {
		r.Addr = fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), getEnv("REDIS_PORT", "6379"))
	}
	r.Password = getEnv("REDIS_PASSWORD", r.Password)
	r.DB = getEnvAsInt("REDIS_DB", r.DB)
	r.ThumbnailTTLSeconds = getEnvAsInt("VIMEO_THUMBNAIL_TTL_SECONDS", r.ThumbnailTTLSeconds)

	cl := &config.Cleanup
	cl.Schedule = getEnv("CLEANUP_SCHEDULE", cl.Schedule)
	cl.MaxAttempts = getEnvAsInt("CLEANUP_MAX_ATTEMPTS", cl.MaxAttempts)
	cl.Workers = getEnvAsInt("CLEANUP_WORKERS", cl.Workers)
	cl.BatchSize = getEnvAsInt("CLEANUP_BATCH_SIZE", cl.BatchSize)

	config.Log.Level = getEnv("LOG_LEVEL", config.Log.Level)
	config.Log.Development = getEnvAsBool("LOG_DEVELOPMENT", config.Log.Development)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (postgres or sqlite)", c.Database.Driver)
	}
	switch c.Blob.Driver {
	case "s3", "local":
	default:
		return fmt.Errorf("unsupported BLOB_DRIVER %q (s3 or local)", c.Blob.Driver)
	}
	if c.Thumbnail.MaxBytes <= 0 {
		return fmt.Errorf("THUMBNAIL_MAX_BYTES must be positive")
	}
	if c.Admin.CookieKey != "" {
		key, err := base64.StdEncoding.DecodeString(c.Admin.CookieKey)
		if err != nil || (len(key) != 16 && len(key) != 24 && len(key) != 32) {
			return fmt.Errorf("ADMIN_COOKIE_KEY must be a base64 encoded 16, 24 or 32 byte key")
		}
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres keyword/value DSN.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// BlobCredential is looked up on every call so the credential can be
// rotated or supplied per environment without a restart.
func (c *Config) BlobCredential() string {
	return firstNonEmpty(os.Getenv(blobTokenEnv), os.Getenv(blobTokenFallbackEnv))
}

func (c *Config) VimeoToken() string {
	return strings.TrimSpace(os.Getenv(vimeoTokenEnv))
}

func (c *Config) AdminPassword() string {
	return os.Getenv(adminPasswordEnv)
}

// EnsureDirs creates the local blob directory when the local driver is used.
func EnsureDirs(cfg *Config) error {
	if cfg.Blob.Driver != "local" {
		return nil
	}
	if !filepath.IsAbs(cfg.Blob.LocalDir) {
		projectRoot, err := findProjectRoot()
		if err != nil {
			return err
		}
		cfg.Blob.LocalDir = filepath.Join(projectRoot, cfg.Blob.LocalDir)
	}
	return os.MkdirAll(cfg.Blob.LocalDir, 0755)
}

func findProjectRoot() (string, error) {
	current, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// no go.mod above us, deployed binary
			return os.Getwd()
		}
		current = parent
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	return int(getEnvAsInt64(key, int64(defaultValue)))
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
