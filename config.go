package petrel

import (
	"time"

	"github.com/rcrowley/go-metrics"
)

const defaultAutoCreateTimeout = 10 * time.Second

// Config is used to pass multiple configuration options to NewMetadataHandler.
type Config struct {
	// ClusterID is the cluster identifier reported to v2+ clients, or nil if
	// the cluster does not have one configured.
	ClusterID *string

	// AutoCreate is the namespace for on-demand topic creation configuration.
	AutoCreate struct {
		// Enabled controls whether topics named in a Metadata request that do
		// not exist may be created on the fly (default true). Even when
		// enabled, v4+ clients can opt out per request.
		Enabled bool
		// NumPartitions each auto-created topic gets (default 1).
		NumPartitions int32
		// ReplicationFactor each auto-created topic gets (default 1).
		ReplicationFactor int16
		// Timeout bounds a single creation attempt, covering admission past
		// MaxInFlight plus the control-plane call itself (default 10s).
		Timeout time.Duration
		// MaxInFlight caps how many creation attempts may run at once across
		// all requests. <= 0 means no cap (default 0).
		MaxInFlight int
	}

	// MetricRegistry defines the metrics registry the handler's metrics are
	// registered in. Defaults to a local registry; set it to
	// metrics.NewPrefixedChildRegistry or similar to fold the handler's
	// metrics into a wider one.
	MetricRegistry metrics.Registry
}

// NewConfig returns a new configuration instance with sane defaults.
func NewConfig() *Config {
	c := &Config{}

	c.AutoCreate.Enabled = true
	c.AutoCreate.NumPartitions = 1
	c.AutoCreate.ReplicationFactor = 1
	c.AutoCreate.Timeout = defaultAutoCreateTimeout

	c.MetricRegistry = metrics.NewRegistry()

	return c
}

// Validate checks a Config instance. It will return a
// ConfigurationError if the specified values don't make sense.
func (c *Config) Validate() error {
	switch {
	case c.AutoCreate.NumPartitions <= 0:
		return ConfigurationError("AutoCreate.NumPartitions must be > 0")
	case c.AutoCreate.ReplicationFactor <= 0:
		return ConfigurationError("AutoCreate.ReplicationFactor must be > 0")
	case c.AutoCreate.Timeout <= 0:
		return ConfigurationError("AutoCreate.Timeout must be > 0")
	case c.MetricRegistry == nil:
		return ConfigurationError("Metrics.Registry must not be nil")
	}

	return nil
}
