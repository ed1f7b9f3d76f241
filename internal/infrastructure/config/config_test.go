package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Fallbacks(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("KAFKA_BROKERS", " , ")
	t.Setenv("KAFKA_TLS", "maybe")

	cfg := Load()

	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.KafkaTLS)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_HOST", "127.0.0.1")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("ADMIN_PORT", "9200")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("KAFKA_TOPIC", "audit.predictions")
	t.Setenv("OTEL_TRACES_EXPORTER", "stdout")
	t.Setenv("KAFKA_TLS", "true")
	t.Setenv("KAFKA_SASL_MECHANISM", "SCRAM-SHA-512")

	cfg := Load()

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddress())
	assert.Equal(t, ":9200", cfg.AdminAddress())
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "audit.predictions", cfg.KafkaTopic)
	assert.Equal(t, "stdout", cfg.TracesExporter)
	assert.True(t, cfg.KafkaTLS)
	assert.Equal(t, "SCRAM-SHA-512", cfg.KafkaSASL)
	require.NoError(t, cfg.Validate())
}

func TestConfig_AdminDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.AdminPort = ""

	assert.Equal(t, "", cfg.AdminAddress())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"http port zero", func(c *Config) { c.HTTPPort = 0 }},
		{"http port too large", func(c *Config) { c.HTTPPort = 70000 }},
		{"admin port not numeric", func(c *Config) { c.AdminPort = "admin" }},
		{"admin port equals http port", func(c *Config) { c.AdminPort = "5000" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
		{"unknown exporter", func(c *Config) { c.TracesExporter = "zipkin" }},
		{"unknown sasl mechanism", func(c *Config) { c.KafkaSASL = "GSSAPI" }},
		{"kafka without topic", func(c *Config) {
			c.KafkaBrokers = []string{"localhost:9092"}
			c.KafkaTopic = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_HTTPAddressIPv6(t *testing.T) {
	cfg := validConfig()
	cfg.HTTPHost = "::1"

	assert.Equal(t, "[::1]:5000", cfg.HTTPAddress())
}

func validConfig() Config {
	return Config{
		HTTPHost:       "0.0.0.0",
		HTTPPort:       5000,
		AdminPort:      "9100",
		LogFormat:      "json",
		KafkaTopic:     "prediction.events",
		TracesExporter: "none",
	}
}
