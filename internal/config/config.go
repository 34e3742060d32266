package config

import (
	"errors"
	"time"

	"github.com/screa/hash160-miner/internal/crypto"
	"github.com/screa/hash160-miner/pkg/keyspace"
)

const (
	// NumWorkers is the fixed number of search goroutines.
	NumWorkers = 12

	// MonitorInterval is how often throughput is sampled.
	MonitorInterval = time.Second
)

// Errors
var (
	ErrInvalidWorkers  = errors.New("worker count must be positive")
	ErrInvalidInterval = errors.New("monitor interval must be positive")
)

// Config holds the application configuration
type Config struct {
	Workers         int
	Target          crypto.Digest
	Marker          byte
	Monitor         bool
	MonitorInterval time.Duration
	Debug           bool
	LogFile         string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Workers:         NumWorkers,
		Target:          crypto.Target,
		Marker:          keyspace.BatchMarker,
		MonitorInterval: MonitorInterval,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.Monitor && c.MonitorInterval <= 0 {
		return ErrInvalidInterval
	}
	return nil
}

// TargetAddress returns the P2PKH address for the configured target, falling
// back to hex when it cannot be encoded.
func (c *Config) TargetAddress() string {
	addr, err := crypto.Address(c.Target)
	if err != nil {
		return c.Target.String()
	}
	return addr
}
