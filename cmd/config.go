package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EstimationModeFake = "fake"
	EstimationModeHTTP = "http"
)

// Config holds the configuration of the service.
// Tags used:
// - mapstructure: environment variable name
// - default: value used when the variable is missing
// - required: if "true", loading fails when the value is empty
type Config struct {
	Environment string `mapstructure:"APP_ENV" default:"development"`
	LogLevel    string `mapstructure:"LOG_LEVEL" default:"info"`
	HTTPPort    int    `mapstructure:"HTTP_PORT" default:"8082"`

	Database   DatabaseConfig   `mapstructure:",squash"`
	CourierAPI CourierAPIConfig `mapstructure:",squash"`
	Estimation EstimationConfig `mapstructure:",squash"`
	Kafka      KafkaConfig      `mapstructure:",squash"`

	OutboxBatchSize int `mapstructure:"OUTBOX_BATCH_SIZE" default:"100"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"DB_HOST" default:"localhost"`
	Port     int    `mapstructure:"DB_PORT" default:"5432"`
	User     string `mapstructure:"DB_USER" required:"true"`
	Password string `mapstructure:"DB_PASSWORD"`
	Name     string `mapstructure:"DB_NAME" required:"true"`
	SslMode  string `mapstructure:"DB_SSLMODE" default:"disable"`
}

// DSN renders the connection string understood by the postgres driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode,
	)
}

// CourierAPIConfig configures the payout calculation client.
type CourierAPIConfig struct {
	URL              string        `mapstructure:"COURIER_API_URL" required:"true"`
	Timeout          time.Duration `mapstructure:"COURIER_API_TIMEOUT" default:"2s"`
	FailureThreshold int           `mapstructure:"COURIER_API_FAILURE_THRESHOLD" default:"5"`
	Cooldown         time.Duration `mapstructure:"COURIER_API_COOLDOWN" default:"30s"`
}

// EstimationConfig selects and configures the delivery estimation adapter.
type EstimationConfig struct {
	Mode             string        `mapstructure:"ESTIMATION_MODE" default:"fake"`
	URL              string        `mapstructure:"ESTIMATION_URL"`
	Timeout          time.Duration `mapstructure:"ESTIMATION_TIMEOUT" default:"2s"`
	FailureThreshold int           `mapstructure:"ESTIMATION_FAILURE_THRESHOLD" default:"5"`
	Cooldown         time.Duration `mapstructure:"ESTIMATION_COOLDOWN" default:"30s"`
	RedisURL         string        `mapstructure:"REDIS_URL"`
	CacheTTL         time.Duration `mapstructure:"ESTIMATION_CACHE_TTL" default:"10m"`
}

type KafkaConfig struct {
	Brokers             string `mapstructure:"KAFKA_BROKERS" default:"localhost:9092"`
	DeliveryEventsTopic string `mapstructure:"KAFKA_DELIVERY_EVENTS_TOPIC" default:"delivery.events"`
}

// LoadConfig reads path/.env when present, then the environment. Variables
// already set in the environment win over the file.
func LoadConfig(path string) (Config, error) {
	envFile := filepath.Join(path, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error reading %s: %w", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()

	var config Config

	if err := processTags(v, &config); err != nil {
		return Config{}, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return Config{}, err
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	var problems []error

	switch c.Estimation.Mode {
	case EstimationModeFake:
	case EstimationModeHTTP:
		if c.Estimation.URL == "" {
			problems = append(problems, errors.New("missing required configuration: ESTIMATION_URL"))
		}
	default:
		problems = append(problems, fmt.Errorf("ESTIMATION_MODE must be %q or %q, got %q",
			EstimationModeFake, EstimationModeHTTP, c.Estimation.Mode))
	}

	if c.OutboxBatchSize <= 0 {
		problems = append(problems, errors.New("OUTBOX_BATCH_SIZE must be greater than 0"))
	}

	return errors.Join(problems...)
}

// processTags binds every tagged field to its environment variable and sets
// its default.
func processTags(v *viper.Viper, config any) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config any) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
