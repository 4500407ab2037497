package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Hotel    HotelConfig    `yaml:"hotel"`
	Session  SessionConfig  `yaml:"session"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	ReservationsTopic  string   `yaml:"reservations_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// HotelConfig carries hotel policy: the room type set, default tax rate and
// stay limit are injected into the services from here rather than hardcoded.
type HotelConfig struct {
	RoomTypes            []string `yaml:"room_types"`
	TaxRatePercent       float64  `yaml:"tax_rate_percent"`
	MaxStayNights        int      `yaml:"max_stay_nights"`
	RoomHoldTTLSeconds   int      `yaml:"room_hold_ttl_seconds"`
	RoomsCacheTTLSeconds int      `yaml:"rooms_cache_ttl_seconds"`
	AuditLogPath         string   `yaml:"audit_log_path"`
}

type SessionConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Hotel.RoomTypes) == 0 {
		c.Hotel.RoomTypes = []string{"Single", "Double", "Deluxe", "Suite"}
	}
	if c.Hotel.TaxRatePercent == 0 {
		c.Hotel.TaxRatePercent = 10
	}
	if c.Hotel.MaxStayNights == 0 {
		c.Hotel.MaxStayNights = 365
	}
	if c.Hotel.RoomHoldTTLSeconds == 0 {
		c.Hotel.RoomHoldTTLSeconds = 30
	}
	if c.Hotel.RoomsCacheTTLSeconds == 0 {
		c.Hotel.RoomsCacheTTLSeconds = 60
	}
	if c.Hotel.AuditLogPath == "" {
		c.Hotel.AuditLogPath = "reservation_audit.log"
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = 30
	}
}
