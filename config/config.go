// Package config holds the gameplay tuning values. Defaults are embedded;
// an optional on-disk file overrides them and can be hot-reloaded.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Physics   PhysicsConfig  `yaml:"physics"`
	Movement  MovementConfig `yaml:"movement"`
	Combat    CombatConfig   `yaml:"combat"`
	Character CharacterSpec  `yaml:"character"`
	Match     MatchConfig    `yaml:"match"`
	Skins     []SkinConfig   `yaml:"skins"`
}

// PhysicsConfig tunes the simulation. Gravity is in pixels/second^2.
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"`
}

type MovementConfig struct {
	MaxSpeed           float64 `yaml:"max_speed"`
	Accel              float64 `yaml:"accel"`
	JumpSpeed          float64 `yaml:"jump_speed"`
	JumpCutSpeed       float64 `yaml:"jump_cut_speed"`
	ProbeDepth         float64 `yaml:"probe_depth"`
	FallThroughSeconds float64 `yaml:"fall_through_seconds"`
}

type CombatConfig struct {
	WindowSeconds float64 `yaml:"window_seconds"`
	Radius        float64 `yaml:"radius"`
	Reach         float64 `yaml:"reach"`
	KnockbackX    float64 `yaml:"knockback_x"`
	KnockbackY    float64 `yaml:"knockback_y"`
}

type CharacterSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Density  float64 `yaml:"density"`
	Friction float64 `yaml:"friction"`
}

type MatchConfig struct {
	WinnerDisplaySeconds float64 `yaml:"winner_display_seconds"`
	TimeLimitSeconds     float64 `yaml:"time_limit_seconds"`
	LowTimeSeconds       float64 `yaml:"low_time_seconds"`
	RespawnMargin        float64 `yaml:"respawn_margin"`
	MaxPlayers           int     `yaml:"max_players"`
}

// SkinConfig names a character skin by player slot order. Dir points at a
// directory of animation frames under the assets root.
type SkinConfig struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
}

// LoadDefault returns the embedded configuration.
func LoadDefault() (*Config, error) {
	return parse(defaultYAML)
}

// LoadFile reads configuration from disk. Values missing from the file keep
// their embedded defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := LoadDefault()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %v", c.Physics.Gravity)
	}
	if c.Movement.MaxSpeed <= 0 {
		return fmt.Errorf("max_speed must be positive, got %v", c.Movement.MaxSpeed)
	}
	if c.Character.Width <= 0 || c.Character.Height <= 0 {
		return fmt.Errorf("character size must be positive, got %vx%v", c.Character.Width, c.Character.Height)
	}
	if c.Match.MaxPlayers < 1 {
		return fmt.Errorf("max_players must be at least 1, got %d", c.Match.MaxPlayers)
	}
	return nil
}

// Skin returns the skin for a player slot, cycling when there are more
// players than skins.
func (c *Config) Skin(player int) SkinConfig {
	if c == nil || len(c.Skins) == 0 || player < 0 {
		return SkinConfig{}
	}
	return c.Skins[player%len(c.Skins)]
}
