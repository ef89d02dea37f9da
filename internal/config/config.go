package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	CartService CartServiceConfig `toml:"cart_service"`
	Slots       SlotsConfig       `toml:"slots"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN возвращает строку подключения к базе данных
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CartServiceConfig настройки клиента CartService
type CartServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// SlotsConfig настройки генерации слотов и протокола выбора
type SlotsConfig struct {
	StartHour         int  `toml:"start_hour"`
	EndHour           int  `toml:"end_hour"`
	SlotWidthMinutes  int  `toml:"slot_width_minutes"`
	FullSlotRatio     int  `toml:"full_slot_ratio"`
	ExcludeWeekends   bool `toml:"exclude_weekends"`
	MinLeadTimeHours  int  `toml:"min_lead_time_hours"`
	MaxSelectedRanges int  `toml:"max_selected_ranges"`
}

// ToGenerationConfig конвертирует настройки в доменную конфигурацию генератора
func (c SlotsConfig) ToGenerationConfig() domain.SlotGenerationConfig {
	return domain.SlotGenerationConfig{
		StartHour:        c.StartHour,
		EndHour:          c.EndHour,
		SlotWidthMinutes: c.SlotWidthMinutes,
		FullSlotRatio:    c.FullSlotRatio,
		ExcludeWeekends:  c.ExcludeWeekends,
		MinLeadTimeHours: c.MinLeadTimeHours,
	}
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8082,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/slot-service.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-slot-service",
		},
		CartService: CartServiceConfig{
			Timeout: 5,
		},
		Slots: SlotsConfig{
			StartHour:         domain.DefaultStartHour,
			EndHour:           domain.DefaultEndHour,
			SlotWidthMinutes:  domain.DefaultSlotWidthMinutes,
			FullSlotRatio:     domain.DefaultFullSlotRatio,
			ExcludeWeekends:   true,
			MinLeadTimeHours:  domain.DefaultMinLeadTimeHours,
			MaxSelectedRanges: domain.DefaultMaxSelectedRanges,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database host and dbname are required")
	}
	if c.Slots.MaxSelectedRanges <= 0 {
		return fmt.Errorf("max_selected_ranges must be positive: %d", c.Slots.MaxSelectedRanges)
	}
	if err := c.Slots.ToGenerationConfig().Validate(); err != nil {
		return fmt.Errorf("invalid slots config: %w", err)
	}
	return nil
}
