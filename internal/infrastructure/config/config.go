package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// ServiceName identifies the service in logs, traces and metrics.
const ServiceName = "prediction-service"

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration for the prediction service.
type Config struct {
	HTTPHost       string
	HTTPPort       int
	AdminPort      string // empty disables the admin listener
	Environment    string
	LogLevel       string
	LogFormat      string
	KafkaBrokers   []string
	KafkaTopic     string
	KafkaTLS       bool
	KafkaCAFile    string
	KafkaSASL      string // "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512" or empty
	KafkaUsername  string
	KafkaPassword  string
	TracesExporter string
	OTLPEndpoint   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		HTTPHost:       getEnv("HTTP_HOST", "0.0.0.0"),
		HTTPPort:       getEnvInt("HTTP_PORT", 5000),
		AdminPort:      getEnv("ADMIN_PORT", "9100"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "prediction.events"),
		KafkaTLS:       getEnvBool("KAFKA_TLS", false),
		KafkaCAFile:    getEnv("KAFKA_TLS_CA_FILE", ""),
		KafkaSASL:      getEnv("KAFKA_SASL_MECHANISM", ""),
		KafkaUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
		KafkaPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		TracesExporter: getEnv("OTEL_TRACES_EXPORTER", "none"),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

// Validate reports the first unusable setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("%w: HTTP_PORT %d out of range", ErrInvalidConfig, c.HTTPPort)
	}
	if c.AdminPort != "" {
		port, err := strconv.Atoi(c.AdminPort)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("%w: ADMIN_PORT %q is not a port", ErrInvalidConfig, c.AdminPort)
		}
		if port == c.HTTPPort {
			return fmt.Errorf("%w: ADMIN_PORT must differ from HTTP_PORT", ErrInvalidConfig)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("%w: LOG_FORMAT %q", ErrInvalidConfig, c.LogFormat)
	}
	switch c.TracesExporter {
	case "", "none", "otlp", "stdout":
	default:
		return fmt.Errorf("%w: OTEL_TRACES_EXPORTER %q", ErrInvalidConfig, c.TracesExporter)
	}
	if c.KafkaEnabled() && c.KafkaTopic == "" {
		return fmt.Errorf("%w: KAFKA_TOPIC is required with KAFKA_BROKERS", ErrInvalidConfig)
	}
	switch c.KafkaSASL {
	case "", "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512":
	default:
		return fmt.Errorf("%w: KAFKA_SASL_MECHANISM %q", ErrInvalidConfig, c.KafkaSASL)
	}
	return nil
}

// HTTPAddress returns the public listen address.
func (c Config) HTTPAddress() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(c.HTTPPort))
}

// AdminAddress returns the admin listen address, or "" when disabled.
func (c Config) AdminAddress() string {
	if c.AdminPort == "" {
		return ""
	}
	return fmt.Sprintf(":%s", c.AdminPort)
}

// KafkaEnabled reports whether prediction events go to Kafka.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvBool returns the boolean value of an environment variable or a default.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
