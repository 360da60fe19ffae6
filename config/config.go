package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Flights  FlightsConfig  `yaml:"flights"`
	Upload   UploadConfig   `yaml:"upload"`
}

type HTTPConfig struct {
	Address         string        `yaml:"address" validate:"required"`
	SwaggerDir      string        `yaml:"swagger_dir"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	// AuthRatePerMinute limits /login/ and /register/ per client IP.
	AuthRatePerMinute int `yaml:"auth_rate_per_minute" validate:"min=1"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

type DatabaseConfig struct {
	Host          string `yaml:"host" validate:"required"`
	Port          int    `yaml:"port" validate:"min=1,max=65535"`
	User          string `yaml:"user" validate:"required"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name" validate:"required"`
	SSLMode       string `yaml:"ssl_mode" validate:"oneof=disable require verify-ca verify-full"`
	MaxConns      int32  `yaml:"max_conns" validate:"min=1"`
	RunMigrations bool   `yaml:"run_migrations"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.MaxConns)
}

type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"required"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string      `yaml:"brokers" validate:"required,min=1"`
	BookingTopic       string        `yaml:"booking_topic"`
	NotificationsTopic string        `yaml:"notifications_topic"`
	GroupID            string        `yaml:"group_id"`
	PublishTimeout     time.Duration `yaml:"publish_timeout" validate:"gt=0"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" validate:"required,min=16"`
	AccessTTL  time.Duration `yaml:"access_ttl" validate:"gt=0"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" validate:"gt=0"`
	BcryptCost int           `yaml:"bcrypt_cost" validate:"min=4,max=31"`
}

type FlightsConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl" validate:"gte=0"`
}

type UploadConfig struct {
	MaxImageBytes  int64 `yaml:"max_image_bytes" validate:"min=1"`
	MaxImagePixels int64 `yaml:"max_image_pixels" validate:"min=1"`
}

func defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Address:           ":8080",
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			AuthRatePerMinute: 30,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Database: DatabaseConfig{
			Port:     5432,
			SSLMode:  "disable",
			MaxConns: 10,
		},
		Kafka: KafkaConfig{
			BookingTopic:       "space.bookings",
			NotificationsTopic: "space.notifications",
			GroupID:            "space-notifier",
			PublishTimeout:     2 * time.Second,
		},
		Auth: AuthConfig{
			AccessTTL:  5 * time.Minute,
			RefreshTTL: 24 * time.Hour,
			BcryptCost: 12,
		},
		Flights: FlightsConfig{CacheTTL: 30 * time.Second},
		Upload:  UploadConfig{MaxImageBytes: 10 << 20, MaxImagePixels: 16 << 20},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyEnv(&cfg)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyEnv lets deployments keep secrets out of the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
}
