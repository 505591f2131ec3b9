package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Хранилища сессий
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса виджета записи
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Backend   BackendConfig   `toml:"backend"`
	Widget    WidgetConfig    `toml:"widget"`
	Sessions  SessionsConfig  `toml:"sessions"`
	Redis     RedisConfig     `toml:"redis"`
	Database  DatabaseConfig  `toml:"database"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BackendConfig бэкенд расписания, из которого берется доступность и куда пишутся записи
type BackendConfig struct {
	URL       string `toml:"url"`
	Timeout   int    `toml:"timeout"` // секунды
	CompanyID string `toml:"company_id"`
}

type WidgetConfig struct {
	DefaultTimezone string `toml:"default_timezone"`
}

type SessionsConfig struct {
	Storage         string `toml:"storage"`          // memory | redis | postgres
	TTL             int    `toml:"ttl"`              // минуты
	CleanupInterval int    `toml:"cleanup_interval"` // секунды
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды

	// dsn задается целиком через WIDGET_DATABASE_DSN и имеет приоритет
	dsn string
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	// адреса или подсети прокси, которым доверяется X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// DSN строка подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	if c.dsn != "" {
		return c.dsn
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// BackendTimeout таймаут запросов к бэкенду
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.Timeout) * time.Second
}

// SessionTTL время жизни неактивной сессии
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Sessions.TTL) * time.Minute
}

// CleanupInterval период удаления истекших сессий
func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.Sessions.CleanupInterval) * time.Second
}

// Load читает конфигурацию из TOML файла, .env и переменных окружения WIDGET_*.
// Отсутствующий файл не является ошибкой: используются значения по умолчанию.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-booking-widget",
		},
		Backend:  BackendConfig{Timeout: 10},
		Widget:   WidgetConfig{DefaultTimezone: "UTC"},
		Sessions: SessionsConfig{Storage: StorageMemory, TTL: 120, CleanupInterval: 300},
		Redis:    RedisConfig{Addr: "localhost:6379", KeyPrefix: "widget:session:"},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "booking_widget",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 2, Burst: 10},
	}
}

// Validate проверяет обязательные поля и допустимые значения
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.URL) == "" {
		return fmt.Errorf("%w: backend.url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: backend.url %q is not an absolute URL", ErrInvalidConfig, c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend.timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d is out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if _, err := time.LoadLocation(c.Widget.DefaultTimezone); err != nil {
		return fmt.Errorf("%w: widget.default_timezone %q: %v", ErrInvalidConfig, c.Widget.DefaultTimezone, err)
	}
	switch c.Sessions.Storage {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("%w: sessions.storage %q, expected memory, redis or postgres", ErrInvalidConfig, c.Sessions.Storage)
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("%w: sessions.ttl must be positive", ErrInvalidConfig)
	}
	if c.Sessions.CleanupInterval <= 0 {
		return fmt.Errorf("%w: sessions.cleanup_interval must be positive", ErrInvalidConfig)
	}
	if c.Sessions.Storage == StorageRedis && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required for redis storage", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup("WIDGET_BACKEND_URL"); ok {
		cfg.Backend.URL = v
	}
	if v, ok := lookup("WIDGET_COMPANY_ID"); ok {
		cfg.Backend.CompanyID = v
	}
	if v, ok := lookup("WIDGET_HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: WIDGET_HTTP_PORT=%q", ErrInvalidConfig, v)
		}
		cfg.Server.HTTPPort = port
	}
	if v, ok := lookup("WIDGET_SESSIONS_STORAGE"); ok {
		cfg.Sessions.Storage = strings.ToLower(v)
	}
	if v, ok := lookup("WIDGET_REDIS_ADDR"); ok {
		cfg.Redis.Addr = v
	}
	if v, ok := lookup("WIDGET_REDIS_PASSWORD"); ok {
		cfg.Redis.Password = v
	}
	if v, ok := lookup("WIDGET_DATABASE_DSN"); ok {
		cfg.Database.dsn = v
	}
	if v, ok := lookup("WIDGET_LOG_LEVEL"); ok {
		cfg.Logs.Level = v
	}
	if v, ok := lookup("WIDGET_DEFAULT_TIMEZONE"); ok {
		cfg.Widget.DefaultTimezone = v
	}
	if v, ok := lookup("WIDGET_CORS_ORIGINS"); ok {
		cfg.CORS.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("WIDGET_TRUSTED_PROXIES"); ok {
		cfg.RateLimit.TrustedProxies = splitList(v)
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
