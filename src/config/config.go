// Package config loads strategychart settings with Viper.
//
// Precedence (lowest to highest): defaults < config file < STRATEGYCHART_* env vars.
// Command-line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ProjectFile is looked up in the working directory when no explicit file is given.
const ProjectFile = "strategychart.toml"

// Config is the fully resolved configuration.
type Config struct {
	Table   TableConfig   `mapstructure:"table"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Output  OutputConfig  `mapstructure:"output"`
	Display DisplayConfig `mapstructure:"display"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Log     LogConfig     `mapstructure:"log"`
}

type TableConfig struct {
	// SkipRows is the number of physical lines before the CSV header.
	SkipRows int `mapstructure:"skip_rows"`
}

type ChartConfig struct {
	SaveDPI     float64 `mapstructure:"save_dpi"`
	DisplayDPI  float64 `mapstructure:"display_dpi"`
	Attribution string  `mapstructure:"attribution"`
	LegendTitle string  `mapstructure:"legend_title"`
}

type OutputConfig struct {
	DefaultName string `mapstructure:"default_name"`
}

type DisplayConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	MaxWidth  int  `mapstructure:"max_width"`
	MaxHeight int  `mapstructure:"max_height"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	// The generator writes one title comment plus six rule lines before the header.
	v.SetDefault("table.skip_rows", 7)

	v.SetDefault("chart.save_dpi", 600.0)
	v.SetDefault("chart.display_dpi", 100.0)
	v.SetDefault("chart.attribution", "github.com/fkuefler/blackjack-lab")
	v.SetDefault("chart.legend_title", "Optimal Action")

	v.SetDefault("output.default_name", "blackjack_strategy_chart.png")

	v.SetDefault("display.enabled", true)
	v.SetDefault("display.max_width", 1400)
	v.SetDefault("display.max_height", 1000)

	v.SetDefault("watch.debounce", 300*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// New returns a Viper instance with defaults and env binding, reading path when
// non-empty or ProjectFile when it exists in the working directory.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("STRATEGYCHART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path == "" {
		if _, err := os.Stat(ProjectFile); err == nil {
			path = ProjectFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return v, nil
}

// Load resolves the configuration from path (see New).
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals an already prepared Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Table.SkipRows < 0 {
		return nil, fmt.Errorf("table.skip_rows must be >= 0, got %d", cfg.Table.SkipRows)
	}
	if cfg.Chart.SaveDPI <= 0 || cfg.Chart.DisplayDPI <= 0 {
		return nil, fmt.Errorf("chart dpi must be positive (save=%v display=%v)", cfg.Chart.SaveDPI, cfg.Chart.DisplayDPI)
	}
	return &cfg, nil
}
