package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/pkg/psqlbuilder"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "SCHEDULER_"

// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Cache     CacheConfig     `toml:"cache"`
	Events    EventsConfig    `toml:"events"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver" env:"DB_DRIVER"` // postgres | sqlite
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	Path            string `toml:"path" env:"DB_PATH"` // файл sqlite
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	AutoMigrate     bool   `toml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
}

// DSN возвращает строку подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == psqlbuilder.DriverSQLite {
		// Внешние ключи в sqlite включаются на каждое соединение
		return "file:" + d.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOGS_FILE"`
	Level string `toml:"level" env:"LOGS_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

type ScheduleConfig struct {
	Timezone      string          `toml:"timezone" env:"SCHEDULE_TIMEZONE"`
	SlotMinutes   int             `toml:"slot_minutes" env:"SCHEDULE_SLOT_MINUTES"`
	BusinessHours WeekHours       `toml:"business_hours"`
	Overrides     []LocationHours `toml:"location_overrides"`
}

// WeekHours часы работы по дням недели: "9-20" или "closed"
type WeekHours struct {
	Sunday    string `toml:"sunday"`
	Monday    string `toml:"monday"`
	Tuesday   string `toml:"tuesday"`
	Wednesday string `toml:"wednesday"`
	Thursday  string `toml:"thursday"`
	Friday    string `toml:"friday"`
	Saturday  string `toml:"saturday"`
}

// LocationHours переопределение часов работы для конкретной локации
type LocationHours struct {
	LocationID int64     `toml:"location_id"`
	Hours      WeekHours `toml:"hours"`
}

type AuthConfig struct {
	Enabled   bool   `toml:"enabled" env:"AUTH_ENABLED"`
	JWTSecret string `toml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	Issuer    string `toml:"issuer" env:"AUTH_ISSUER"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `toml:"burst" env:"RATE_LIMIT_BURST"`
}

type CacheConfig struct {
	Enabled  bool   `toml:"enabled" env:"CACHE_ENABLED"`
	Addr     string `toml:"addr" env:"CACHE_ADDR"`
	Password string `toml:"password" env:"CACHE_PASSWORD"`
	DB       int    `toml:"db" env:"CACHE_DB"`
	TTL      int    `toml:"ttl" env:"CACHE_TTL"` // секунды
}

type EventsConfig struct {
	Enabled bool     `toml:"enabled" env:"EVENTS_ENABLED"`
	Brokers []string `toml:"brokers" env:"EVENTS_BROKERS" envSeparator:","`
	Topic   string   `toml:"topic" env:"EVENTS_TOPIC"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:          psqlbuilder.DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "room_scheduler",
			SSLMode:         "disable",
			Path:            "room_scheduler.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "room_scheduler",
		},
		Schedule: ScheduleConfig{
			Timezone:    domain.DefaultTimezone,
			SlotMinutes: domain.DefaultSlotMinutes,
		},
		RateLimit: RateLimitConfig{RequestsPerSecond: 20, Burst: 40},
		Cache:     CacheConfig{Addr: "localhost:6379", TTL: 300},
		Events:    EventsConfig{Topic: "room-scheduler.bookings"},
	}
}

// Load читает TOML файл (если он существует), затем применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Database.Driver != psqlbuilder.DriverPostgres && c.Database.Driver != psqlbuilder.DriverSQLite {
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.Schedule.SlotMinutes < domain.MinSlotMinutes || c.Schedule.SlotMinutes > domain.MaxSlotMinutes {
		return fmt.Errorf("%w: slot_minutes must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Schedule.BusinessHours.Parse(); err != nil {
		return fmt.Errorf("%w: business_hours: %v", ErrInvalidConfig, err)
	}
	for _, override := range c.Schedule.Overrides {
		if override.LocationID <= 0 {
			return fmt.Errorf("%w: location_overrides: location_id must be positive", ErrInvalidConfig)
		}
		if _, err := override.Hours.Parse(); err != nil {
			return fmt.Errorf("%w: location %d: %v", ErrInvalidConfig, override.LocationID, err)
		}
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth enabled without jwt_secret", ErrInvalidConfig)
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("%w: events enabled without brokers", ErrInvalidConfig)
	}
	return nil
}

// Location возвращает часовой пояс, в котором интерпретируются даты и часы работы
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// OverrideHours возвращает разобранные переопределения по локациям
func (s ScheduleConfig) OverrideHours() (map[int64]domain.BusinessHours, error) {
	result := make(map[int64]domain.BusinessHours, len(s.Overrides))
	for _, override := range s.Overrides {
		hours, err := override.Hours.Parse()
		if err != nil {
			return nil, fmt.Errorf("location %d: %w", override.LocationID, err)
		}
		result[override.LocationID] = hours
	}
	return result, nil
}

// IsZero возвращает true, если ни один день не задан
func (w WeekHours) IsZero() bool {
	return w == WeekHours{}
}

// Parse разбирает таблицу часов. Пустая таблица - часы по умолчанию,
// пустой день внутри заданной таблицы - выходной
func (w WeekHours) Parse() (domain.BusinessHours, error) {
	if w.IsZero() {
		return domain.DefaultBusinessHours(), nil
	}

	days := [7]string{w.Sunday, w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday}

	var hours domain.BusinessHours
	for day, value := range days {
		parsed, err := parseDayHours(value)
		if err != nil {
			return hours, fmt.Errorf("%s: %w", time.Weekday(day), err)
		}
		hours[day] = parsed
	}
	return hours, nil
}

// parseDayHours разбирает "9-20"; "", "closed" и "-" означают выходной
func parseDayHours(value string) (*domain.OpeningHours, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == "closed" || value == "-" {
		return nil, nil
	}

	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid hours %q, expected OPEN-CLOSE", value)
	}

	open, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid open hour %q", parts[0])
	}
	closing, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid close hour %q", parts[1])
	}

	hours := domain.OpeningHours{Open: open, Close: closing}
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	return &hours, nil
}
