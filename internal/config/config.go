// Package config loads solver tunables, following the same
// load-once-from-JSON-with-safe-defaults shape as the teacher's bet
// configuration (Server/internal/config/config.go).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// SolverConfig holds the tunables the driver reads when a request does not
// override them.
type SolverConfig struct {
	DefaultDeadlineMS int `json:"default_deadline_ms"`
	MaxCrossCards     int `json:"max_cross_cards"`
}

// defaultDeadlineMS is the search budget used when a request omits deadline_ms.
const defaultDeadlineMS = 2000

// defaultMaxCrossCards mirrors the four empty "slots" on the physical table.
const defaultMaxCrossCards = 4

var (
	cfg      *SolverConfig
	loadOnce sync.Once
	loadErr  error
)

// Load reads the solver configuration from path, once per process. A path
// of "" skips the file read and leaves the hardcoded defaults in place.
func Load(path string) error {
	loadOnce.Do(func() {
		c := SolverConfig{
			DefaultDeadlineMS: defaultDeadlineMS,
			MaxCrossCards:     defaultMaxCrossCards,
		}
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				loadErr = fmt.Errorf("failed to read solver config: %w", err)
				return
			}
			if err := json.Unmarshal(data, &c); err != nil {
				loadErr = fmt.Errorf("failed to unmarshal solver config: %w", err)
				return
			}
		}
		cfg = &c
	})
	return loadErr
}

// Get returns the loaded configuration, falling back to hardcoded defaults
// if Load was never called.
func Get() SolverConfig {
	if cfg == nil {
		return SolverConfig{DefaultDeadlineMS: defaultDeadlineMS, MaxCrossCards: defaultMaxCrossCards}
	}
	return *cfg
}

// DefaultDeadline returns the configured default search deadline as a
// duration, for direct use with context.WithTimeout.
func (c SolverConfig) DefaultDeadline() time.Duration {
	return time.Duration(c.DefaultDeadlineMS) * time.Millisecond
}
