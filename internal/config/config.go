package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/path"
)

const (
	DefaultFrameRate = 30
)

type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Replay     ReplayConfig     `yaml:"replay"`
}

type ControllerConfig struct {
	Kp             float64 `yaml:"kp"`
	Ki             float64 `yaml:"ki"`
	Kd             float64 `yaml:"kd"`
	LookAhead      int     `yaml:"lookahead"`
	CrossTrackGain float64 `yaml:"crosstrack_gain"`
	MaxSteer       float64 `yaml:"max_steer"`
	SteerRangeDeg  float64 `yaml:"steer_range_deg"`
	IntegralLimit  float64 `yaml:"integral_limit"`
	ZeroSpeed      string  `yaml:"zero_speed"`
}

type ReplayConfig struct {
	StopOnError bool `yaml:"stop_on_error"`
	FrameRate   int  `yaml:"frame_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Controller: ControllerConfig{
			Kp:             control.DefaultKp,
			Ki:             control.DefaultKi,
			Kd:             control.DefaultKd,
			LookAhead:      path.DefaultLookAhead,
			CrossTrackGain: control.DefaultCrossTrackGain,
			MaxSteer:       control.DefaultMaxSteer,
			SteerRangeDeg:  control.DefaultSteerRangeDeg,
			ZeroSpeed:      string(control.ZeroSpeedNeutral),
		},
		Replay: ReplayConfig{
			FrameRate: DefaultFrameRate,
		},
	}
}

// Load reads a yaml config over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml config over base. Keys absent from the file keep
// base's values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Gains converts the controller section into control law constants.
func (c *Config) Gains() control.Gains {
	cc := c.Controller
	return control.Gains{
		Kp:             cc.Kp,
		Ki:             cc.Ki,
		Kd:             cc.Kd,
		LookAhead:      cc.LookAhead,
		CrossTrackGain: cc.CrossTrackGain,
		MaxSteer:       cc.MaxSteer,
		SteerRangeDeg:  cc.SteerRangeDeg,
		IntegralLimit:  cc.IntegralLimit,
		ZeroSpeed:      control.ZeroSpeedPolicy(cc.ZeroSpeed),
	}
}

func (c *Config) Validate() error {
	if err := c.Gains().Validate(); err != nil {
		return err
	}
	if c.Replay.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", c.Replay.FrameRate)
	}
	return nil
}
