package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers  []string
	ClientID string

	// SASL configuration for authentication. An empty mechanism disables SASL.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	// TLS enables TLS for Kafka connections. CAFile optionally replaces the
	// system root CAs.
	TLS    bool
	CAFile string

	// Async makes Publish return as soon as messages are queued. Delivery
	// failures are then only logged.
	Async bool
}

// SASLEnabled reports whether a SASL mechanism is configured.
func (c Config) SASLEnabled() bool {
	return c.SASLMechanism != ""
}
