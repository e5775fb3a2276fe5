// Package config provides Viper-based configuration loading for the tactics binary.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File receives log output instead of stderr when non-empty. The terminal
	// renderer owns the screen, so it needs one.
	File string `mapstructure:"file"`
}

// TurnConfig holds turn cycle timing.
type TurnConfig struct {
	// AnimationDuration is how long each running phase is animated before commit.
	AnimationDuration time.Duration `mapstructure:"animation_duration"`
	// TickInterval is the wall-clock period between machine ticks.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// MaxTurns ends the round as No Contest after this many turns; 0 is unlimited.
	MaxTurns int `mapstructure:"max_turns"`
}

// CombatConfig holds combatant stats and damage values.
type CombatConfig struct {
	PlayerAttackDamage float64 `mapstructure:"player_attack_damage"`
	EnemyAttackDamage  float64 `mapstructure:"enemy_attack_damage"`
	PlayerMaxHealth    float64 `mapstructure:"player_max_health"`
	PlayerMaxMagika    float64 `mapstructure:"player_max_magika"`
	PlayerMoveSpeed    int     `mapstructure:"player_move_speed"`
	EnemyMoveSpeed     int     `mapstructure:"enemy_move_speed"`
	EnemyMaxHealth     float64 `mapstructure:"enemy_max_health"`
	// RetreatHealthThreshold is the health below which attack_until_weak enemies flee.
	RetreatHealthThreshold float64 `mapstructure:"retreat_health_threshold"`
}

// LevelConfig locates level content.
type LevelConfig struct {
	// Path is the level YAML file.
	Path string `mapstructure:"path"`
	// TemplatesDir is the enemy template directory; empty means no templates.
	TemplatesDir string `mapstructure:"templates_dir"`
}

// RenderConfig controls the terminal front end.
type RenderConfig struct {
	// Enabled draws to the terminal; false runs headless under the autopilot.
	Enabled bool `mapstructure:"enabled"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Turn    TurnConfig    `mapstructure:"turn"`
	Combat  CombatConfig  `mapstructure:"combat"`
	Level   LevelConfig   `mapstructure:"level"`
	Render  RenderConfig  `mapstructure:"render"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTurn(c.Turn); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Level.Path == "" {
		errs = append(errs, "level.path must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateTurn(t TurnConfig) error {
	var errs []string
	if t.AnimationDuration <= 0 {
		errs = append(errs, fmt.Sprintf("turn.animation_duration must be > 0, got %s", t.AnimationDuration))
	}
	if t.TickInterval <= 0 {
		errs = append(errs, fmt.Sprintf("turn.tick_interval must be > 0, got %s", t.TickInterval))
	}
	if t.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("turn.max_turns must be >= 0, got %d", t.MaxTurns))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	if c.PlayerAttackDamage < 0 {
		errs = append(errs, "combat.player_attack_damage must not be negative")
	}
	if c.EnemyAttackDamage < 0 {
		errs = append(errs, "combat.enemy_attack_damage must not be negative")
	}
	if c.PlayerMaxHealth <= 0 {
		errs = append(errs, "combat.player_max_health must be > 0")
	}
	if c.EnemyMaxHealth <= 0 {
		errs = append(errs, "combat.enemy_max_health must be > 0")
	}
	if c.PlayerMaxMagika < 0 {
		errs = append(errs, "combat.player_max_magika must not be negative")
	}
	if c.PlayerMoveSpeed < 1 {
		errs = append(errs, fmt.Sprintf("combat.player_move_speed must be >= 1, got %d", c.PlayerMoveSpeed))
	}
	if c.EnemyMoveSpeed < 1 {
		errs = append(errs, fmt.Sprintf("combat.enemy_move_speed must be >= 1, got %d", c.EnemyMoveSpeed))
	}
	if c.RetreatHealthThreshold < 0 {
		errs = append(errs, "combat.retreat_health_threshold must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with TACTICS_ prefix
	v.SetEnvPrefix("TACTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	v.SetDefault("turn.animation_duration", "2s")
	v.SetDefault("turn.tick_interval", "16ms")
	v.SetDefault("turn.max_turns", 0)

	v.SetDefault("combat.player_attack_damage", 25)
	v.SetDefault("combat.enemy_attack_damage", 10)
	v.SetDefault("combat.player_max_health", 100)
	v.SetDefault("combat.player_max_magika", 100)
	v.SetDefault("combat.player_move_speed", 4)
	v.SetDefault("combat.enemy_move_speed", 3)
	v.SetDefault("combat.enemy_max_health", 100)
	v.SetDefault("combat.retreat_health_threshold", 20)

	v.SetDefault("level.path", "content/levels/courtyard.yaml")
	v.SetDefault("level.templates_dir", "content/enemies")

	v.SetDefault("render.enabled", false)
}
