package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds the hit times and the miss penalty used to compute the
// average access time of the hierarchy. All values are in cycles.
type TimingConfig struct {
	// L1HitTime is the L1 hit time. Default: 1 cycle.
	L1HitTime float64 `json:"l1_hit_time"`

	// VCHitTime is the victim cache hit time. Default: 1 cycle.
	VCHitTime float64 `json:"vc_hit_time"`

	// L2HitTime is the L2 hit time. Default: 8 cycles.
	L2HitTime float64 `json:"l2_hit_time"`

	// L2MissPenalty is the cost of going to memory after an L2 miss.
	// Default: 100 cycles.
	L2MissPenalty float64 `json:"l2_miss_penalty"`
}

// DefaultTimingConfig returns a TimingConfig with the default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		L1HitTime:     1,
		VCHitTime:     1,
		L2HitTime:     8,
		L2MissPenalty: 100,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that hit times are positive and the miss penalty is not
// negative.
func (c *TimingConfig) Validate() error {
	if c.L1HitTime <= 0 {
		return fmt.Errorf("l1_hit_time must be > 0")
	}
	if c.VCHitTime <= 0 {
		return fmt.Errorf("vc_hit_time must be > 0")
	}
	if c.L2HitTime <= 0 {
		return fmt.Errorf("l2_hit_time must be > 0")
	}
	if c.L2MissPenalty < 0 {
		return fmt.Errorf("l2_miss_penalty must be >= 0")
	}
	return nil
}

// Clone returns a copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
