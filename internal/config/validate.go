package config

import (
	"fmt"
	"time"
)

// Validate checks the merged configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.StreamInterval <= 0 {
		return fmt.Errorf("stream interval must be positive, got %v", c.StreamInterval)
	}
	if c.StreamInterval < time.Millisecond {
		return fmt.Errorf("stream interval %v is below the 1ms floor", c.StreamInterval)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	}
	if c.DatabaseTimeout <= 0 {
		return fmt.Errorf("database timeout must be positive, got %v", c.DatabaseTimeout)
	}
	if c.LogMaxSizeMB < 0 || c.LogMaxBackups < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}
	return nil
}
