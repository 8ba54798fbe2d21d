package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/Bullke/DFL---HTL/internal/agent"
	"gopkg.in/yaml.v3"
)

// Config holds all simulation configuration values
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Agent      AgentConfig      `yaml:"agent"`
	Logging    LoggingConfig    `yaml:"logging"`
	TilesFile  string           `yaml:"tiles_file"`
	Levels     []string         `yaml:"levels"`

	// dir is where the file was loaded from; relative paths resolve
	// against it.
	dir string
}

type SimulationConfig struct {
	TickRate float64 `yaml:"tick_rate"`
	MaxTicks int     `yaml:"max_ticks"`
	Seed     uint64  `yaml:"seed"`
	Runs     int     `yaml:"runs"`
	Workers  int     `yaml:"workers"`
}

type AgentConfig struct {
	SecondsPerTile  float64 `yaml:"seconds_per_tile"`
	CenterThreshold float64 `yaml:"center_threshold"`
	SpeedFactor     float64 `yaml:"speed_factor"`
	MaxStamina      float64 `yaml:"max_stamina"`
	StaminaDrain    float64 `yaml:"stamina_drain"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	config.dir = filepath.Dir(filename)
	return &config, nil
}

// MustLoadConfig loads configuration and panics on failure
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

func (c *Config) GetTickRate() float64 {
	if c.Simulation.TickRate <= 0 {
		return 60
	}
	return c.Simulation.TickRate
}

func (c *Config) GetTickDelta() float64 {
	return 1 / c.GetTickRate()
}

// GetMaxTicks defaults to ten simulated minutes.
func (c *Config) GetMaxTicks() int {
	if c.Simulation.MaxTicks <= 0 {
		return int(600 * c.GetTickRate())
	}
	return c.Simulation.MaxTicks
}

func (c *Config) GetSeed() uint64 {
	return c.Simulation.Seed
}

func (c *Config) GetRuns() int {
	return max(c.Simulation.Runs, 1)
}

// GetWorkers returns 0 for "one per CPU".
func (c *Config) GetWorkers() int {
	return max(c.Simulation.Workers, 0)
}

// GetAgentParams fills unset agent values from agent.DefaultParams.
func (c *Config) GetAgentParams() agent.Params {
	p := agent.DefaultParams()
	a := c.Agent
	if a.SecondsPerTile > 0 {
		p.SecondsPerTile = a.SecondsPerTile
	}
	if a.CenterThreshold > 0 {
		p.CenterThreshold = a.CenterThreshold
	}
	if a.SpeedFactor > 0 {
		p.SpeedFactor = a.SpeedFactor
	}
	if a.MaxStamina > 0 {
		p.MaxStamina = a.MaxStamina
	}
	if a.StaminaDrain > 0 {
		p.StaminaDrain = a.StaminaDrain
	}
	return p
}

func (c *Config) GetLogLevel() string {
	if c.Logging.Level == "" {
		return "info"
	}
	return c.Logging.Level
}

func (c *Config) GetLogEncoding() string {
	if c.Logging.Encoding == "" {
		return "console"
	}
	return c.Logging.Encoding
}

// GetTilesFile returns the tile definitions path, or "" to use the built-in
// tiles.
func (c *Config) GetTilesFile() string {
	if c.TilesFile == "" {
		return ""
	}
	return c.resolve(c.TilesFile)
}

// GetLevelFiles expands the level globs, sorted and without duplicates.
func (c *Config) GetLevelFiles() ([]string, error) {
	var files []string
	for _, pattern := range c.Levels {
		matches, err := filepath.Glob(c.resolve(pattern))
		if err != nil {
			return nil, fmt.Errorf("bad level pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no level files match %q", pattern)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
