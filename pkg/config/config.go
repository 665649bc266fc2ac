package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yasi-python/propstat/pkg/stats"
)

type LoggingCfg struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console|json
}

// DefaultsCfg supplies values for CLI flags that are not set explicitly.
type DefaultsCfg struct {
	Gamma  float64 `yaml:"gamma"`
	N      int     `yaml:"n"`
	Method string  `yaml:"method"`
	Seed   uint64  `yaml:"seed"`
	Trials int     `yaml:"trials"`
}

type PowerCfg struct {
	GridPoints int     `yaml:"grid_points"`
	PMin       float64 `yaml:"p_min"`
	PMax       float64 `yaml:"p_max"`
	SigmaRange float64 `yaml:"sigma_range"`
	Alpha      float64 `yaml:"alpha"`
}

type MetricsCfg struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	Logging  LoggingCfg  `yaml:"logging"`
	Defaults DefaultsCfg `yaml:"defaults"`
	Power    PowerCfg    `yaml:"power"`
	Metrics  MetricsCfg  `yaml:"metrics"`
}

func Default() *Config {
	return &Config{
		Logging: LoggingCfg{Level: "info", Format: "console"},
		Defaults: DefaultsCfg{
			Gamma:  0.95,
			N:      50,
			Method: string(stats.MethodWilson),
			Seed:   1,
			Trials: 100,
		},
		Power: PowerCfg{GridPoints: 21, PMin: 0, PMax: 1, SigmaRange: 4, Alpha: 0.05},
	}
}

// Load reads a YAML file over Default(); keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Power.GridPoints <= 0 {
		c.Power.GridPoints = 21
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	d := c.Defaults
	if err := stats.CheckConfidence(d.Gamma); err != nil {
		return fmt.Errorf("defaults.gamma: %w", err)
	}
	if err := stats.CheckSize(d.N); err != nil {
		return fmt.Errorf("defaults.n: %w", err)
	}
	if d.Trials < 1 {
		return fmt.Errorf("defaults.trials: %w: %d must be positive", stats.ErrDomain, d.Trials)
	}
	if _, err := stats.ParseMethod(d.Method); err != nil {
		return fmt.Errorf("defaults.method: %w", err)
	}
	p := c.Power
	if err := stats.CheckProbability("power.p_min", p.PMin); err != nil {
		return err
	}
	if err := stats.CheckProbability("power.p_max", p.PMax); err != nil {
		return err
	}
	if p.PMax < p.PMin {
		return fmt.Errorf("power: %w: p_max %v below p_min %v", stats.ErrDomain, p.PMax, p.PMin)
	}
	if p.SigmaRange <= 0 {
		return fmt.Errorf("power.sigma_range: %w: %v must be positive", stats.ErrDomain, p.SigmaRange)
	}
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return fmt.Errorf("power.alpha: %w: %v not in (0,1)", stats.ErrDomain, p.Alpha)
	}
	return nil
}
