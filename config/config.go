package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Cart     CartConfig     `yaml:"cart"`
	Booking  BookingConfig  `yaml:"booking"`
	Payment  PaymentConfig  `yaml:"payment"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	SwaggerDir     string   `yaml:"swagger_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StorageConfig selects the key-value backend behind the session store.
// Backend is one of "memory", "redis" or "postgres".
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	KeyPrefix string `yaml:"key_prefix"`

	// MaxCachedProfiles bounds the per-profile state kept in memory.
	MaxCachedProfiles int `yaml:"max_cached_profiles"`
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
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type CartConfig struct {
	// Scope is "shared" (one cart per browser profile) or "session" (one cart per logged-in user).
	Scope string `yaml:"scope"`
}

type BookingConfig struct {
	StrictTransitions bool `yaml:"strict_transitions"`
}

type PaymentConfig struct {
	DelayMillis int     `yaml:"delay_ms"`
	SuccessRate float64 `yaml:"success_rate"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used for any field the yaml file leaves out.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Storage: StorageConfig{
			Backend:           "memory",
			KeyPrefix:         "eventra_",
			MaxCachedProfiles: 10000,
		},
		Kafka: KafkaConfig{
			BookingTopic: "eventra.bookings",
			GroupID:      "eventra-worker",
		},
		Auth:    AuthConfig{BcryptCost: 10},
		Cart:    CartConfig{Scope: "shared"},
		Payment: PaymentConfig{DelayMillis: 2000, SuccessRate: 0.95},
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Cart.Scope {
	case "shared", "session":
	default:
		return fmt.Errorf("unknown cart scope %q", c.Cart.Scope)
	}
	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		return fmt.Errorf("payment success_rate must be within [0, 1], got %v", c.Payment.SuccessRate)
	}
	if c.Storage.MaxCachedProfiles <= 0 {
		return fmt.Errorf("storage max_cached_profiles must be positive")
	}
	if c.Payment.DelayMillis < 0 {
		return fmt.Errorf("payment delay_ms must not be negative")
	}
	return nil
}
