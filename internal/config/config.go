package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig ошибка чтения/парсинга файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig конфигурация содержит недопустимые значения
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	TeamService TeamServiceConfig `toml:"team_service"`
	Booking     BookingConfig     `toml:"booking"`
	Events      EventsConfig      `toml:"events"`
	Catalog     CatalogConfig     `toml:"catalog"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	// LockTimeoutMs ограничивает ожидание блокировки слота (0 - без ограничения)
	LockTimeoutMs int `toml:"lock_timeout_ms"`
}

// DSN собирает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	if c.LockTimeoutMs > 0 {
		dsn += fmt.Sprintf(" options='-c lock_timeout=%d'", c.LockTimeoutMs)
	}
	return dsn
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TeamServiceConfig настройки клиента внешнего сервиса команд
type TeamServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig настройки движка бронирования
type BookingConfig struct {
	// TxMaxRetries сколько раз повторять транзакцию бронирования при конфликте сериализации
	TxMaxRetries       int `toml:"tx_max_retries"`
	TxInitialBackoffMs int `toml:"tx_initial_backoff_ms"`
	TxMaxBackoffMs     int `toml:"tx_max_backoff_ms"`
}

// EventsConfig настройки публикации событий в Kafka
type EventsConfig struct {
	Enabled        bool     `toml:"enabled"`
	Brokers        []string `toml:"brokers"`
	Topic          string   `toml:"topic"`
	WriteTimeoutMs int      `toml:"write_timeout_ms"`
}

// CatalogConfig настройки каталога комнат
type CatalogConfig struct {
	// AdminUserIDs пользователи, которым разрешено создавать комнаты
	AdminUserIDs []int64 `toml:"admin_user_ids"`
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
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "workspace",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			LockTimeoutMs:   2000,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_workspace_service",
		},
		TeamService: TeamServiceConfig{
			URL:     "http://localhost:8081",
			Timeout: 5,
		},
		Booking: BookingConfig{
			TxMaxRetries:       3,
			TxInitialBackoffMs: 10,
			TxMaxBackoffMs:     200,
		},
		Events: EventsConfig{
			Topic:          "workspace.bookings",
			WriteTimeoutMs: 1000,
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию,
// затем применяет переопределения из переменных окружения SMC_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyEnv(cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет чувствительные и окружение-зависимые параметры
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("SMC_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := getenv("SMC_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := getenv("SMC_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := getenv("SMC_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := getenv("SMC_DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := getenv("SMC_TEAM_SERVICE_URL"); v != "" {
		cfg.TeamService.URL = v
	}
	if v := getenv("SMC_KAFKA_BROKERS"); v != "" {
		cfg.Events.Brokers = strings.Split(v, ",")
	}
	if v := getenv("SMC_LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Booking.TxMaxRetries < 0 {
		return fmt.Errorf("%w: booking.tx_max_retries must not be negative", ErrInvalidConfig)
	}
	if c.Booking.TxInitialBackoffMs < 0 || c.Booking.TxMaxBackoffMs < c.Booking.TxInitialBackoffMs {
		return fmt.Errorf("%w: booking backoff must satisfy 0 <= initial <= max", ErrInvalidConfig)
	}
	if c.TeamService.URL == "" {
		return fmt.Errorf("%w: team_service.url is required", ErrInvalidConfig)
	}
	if c.Events.Enabled && (len(c.Events.Brokers) == 0 || c.Events.Topic == "") {
		return fmt.Errorf("%w: events.brokers and events.topic are required when events are enabled", ErrInvalidConfig)
	}
	return nil
}
