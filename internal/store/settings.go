package store

import (
	"fmt"
	"sync"
)

// Settings holds the runtime-mutable trading parameters. The decision
// loop reads them every cycle while the HTTP facade may update them at
// any time, so reads take an atomic snapshot under a read lock.
type Settings struct {
	mu          sync.RWMutex
	lotSize     float64
	mlThreshold float64
}

// SettingsSnapshot is an immutable view of the settings at one instant.
type SettingsSnapshot struct {
	LotSize     float64 `json:"lot_size"`
	MLThreshold float64 `json:"ml_threshold"`
}

// NewSettings seeds the runtime settings from the loaded config.
func NewSettings(cfg *Config) *Settings {
	return &Settings{lotSize: cfg.LotSize, mlThreshold: cfg.MLThreshold}
}

// Snapshot returns a consistent copy of both values.
func (s *Settings) Snapshot() SettingsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SettingsSnapshot{LotSize: s.lotSize, MLThreshold: s.mlThreshold}
}

// Update applies the non-nil fields, validating before any change so a
// partial update never half-applies.
func (s *Settings) Update(lotSize, mlThreshold *float64) error {
	if lotSize != nil && *lotSize <= 0 {
		return fmt.Errorf("lot_size must be positive, got %v", *lotSize)
	}
	if mlThreshold != nil && (*mlThreshold < 0 || *mlThreshold > 1) {
		return fmt.Errorf("ml_threshold must be in [0,1], got %v", *mlThreshold)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if lotSize != nil {
		s.lotSize = *lotSize
	}
	if mlThreshold != nil {
		s.mlThreshold = *mlThreshold
	}
	return nil
}
